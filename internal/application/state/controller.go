// Package state implementa el controlador de estado de la aplicación: la
// única autoridad que muta las colecciones en memoria de artículos y
// transacciones y abanica la persistencia. Cada mutación es en dos fases:
// commit síncrono en memoria + caché local (la UI refleja el cambio de
// inmediato, de forma optimista) y escritura remota best-effort cuyo fallo se
// registra en el log, nunca en la ruta del caller. Sin cola de reintentos:
// una transición a online no reenvía escrituras pendientes (limitación
// documentada en DESIGN.md).
package state

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/viyabaari-api/internal/application/dto"
	"github.com/jhoicas/viyabaari-api/internal/domain"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/history"
	"github.com/jhoicas/viyabaari-api/internal/domain/migrate"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Controller estado en memoria de un usuario. La colección es propiedad
// exclusiva del controlador y se reemplaza por copia en cada mutación; las
// lecturas devuelven clones.
type Controller struct {
	mu        sync.Mutex
	log       *logger.Logger
	cache     repository.CacheStore
	stockRepo repository.StockRepository
	txnRepo   repository.TransactionRepository
	online    *atomic.Bool

	user    entity.User
	stocks  []entity.StockItem
	txns    []entity.Transaction
	pending *pendingAction
}

// newController construye el controlador para una sesión. Usar Manager.ForUser.
func newController(
	user entity.User,
	cache repository.CacheStore,
	stockRepo repository.StockRepository,
	txnRepo repository.TransactionRepository,
	online *atomic.Bool,
	log *logger.Logger,
) *Controller {
	return &Controller{
		log:       log,
		cache:     cache,
		stockRepo: stockRepo,
		txnRepo:   txnRepo,
		online:    online,
		user:      user,
	}
}

// User identidad dueña de este estado.
func (c *Controller) User() entity.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// SetUser actualiza la identidad en memoria (edición de perfil; misma clave).
func (c *Controller) SetUser(user entity.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
}

// remoteEnabled la escritura remota solo se intenta con uid remoto Y
// conectividad conocida como online. El invitado la omite siempre: es un modo
// reconocido, no una ruta de error.
func (c *Controller) remoteEnabled() bool {
	return c.user.IsRemote() && c.stockRepo != nil && c.online.Load()
}

// LoadState carga las colecciones: del remoto si hay uid y conexión, si no de
// la caché local. Toda carga pasa por la migración de formas legacy y el
// resultado normalizado se reescribe en la caché.
func (c *Controller) LoadState(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.user.Key()
	var stocks []entity.StockItem
	var txns []entity.Transaction

	if c.remoteEnabled() {
		remoteStocks, err := c.stockRepo.FetchAll(ctx, c.user.ID)
		if err == nil {
			remoteTxns, terr := c.txnRepo.FetchAll(ctx, c.user.ID)
			if terr == nil {
				stocks, txns = remoteStocks, remoteTxns
			} else {
				err = terr
			}
		}
		if err != nil {
			if !errors.Is(err, domain.ErrRemoteUnavailable) {
				return err
			}
			// Degradación silenciosa: el modo solo-local sigue siendo funcional.
			c.log.Warn().Err(err).Str("user", key).Msg("remoto no disponible, cargando caché local")
			stocks, _ = c.cache.LoadStocks(key)
			txns, _ = c.cache.LoadTransactions(key)
		}
	} else {
		stocks, _ = c.cache.LoadStocks(key)
		txns, _ = c.cache.LoadTransactions(key)
	}

	c.stocks = migrate.NormalizeAll(stocks)
	c.txns = txns
	c.saveCache()
	return nil
}

// Stocks devuelve una copia de la colección de artículos.
func (c *Controller) Stocks() []entity.StockItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneStocks(c.stocks)
}

// Transactions devuelve las transacciones filtradas por tipo (""|"ALL",
// INCOME, EXPENSE) y por búsqueda plegada sobre categoría, descripción,
// contraparte y monto, ordenadas más reciente primero.
func (c *Controller) Transactions(typeFilter, query string) []entity.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]entity.Transaction, 0, len(c.txns))
	for _, t := range c.txns {
		if typeFilter != "" && typeFilter != "ALL" && t.Type != typeFilter {
			continue
		}
		if !matchesQuery(query, t.Category, t.Description, t.Counterparty, t.Amount.String()) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Summary agregados de solo lectura: ingresos, gastos, balance y conteos.
func (c *Controller) Summary() dto.SummaryResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	income, expense := decimal.Zero, decimal.Zero
	for _, t := range c.txns {
		switch t.Type {
		case entity.TransactionIncome:
			income = income.Add(t.Amount)
		case entity.TransactionExpense:
			expense = expense.Add(t.Amount)
		}
	}
	low := 0
	for _, s := range c.stocks {
		if s.IsLowStock() {
			low++
		}
	}
	return dto.SummaryResponse{
		Income:           income,
		Expense:          expense,
		Balance:          income.Sub(expense),
		StockCount:       len(c.stocks),
		LowStockCount:    low,
		TransactionCount: len(c.txns),
		Online:           c.online.Load(),
	}
}

// LowStockCount artículos con alguna entrada de talla bajo el umbral.
func (c *Controller) LowStockCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.stocks {
		if s.IsLowStock() {
			n++
		}
	}
	return n
}

// SaveStock alta (id vacío) o edición completa de un artículo. El historial se
// deriva comparando la versión anterior con la nueva y se antepone. La entidad
// actualizada queda en memoria aunque la persistencia local falle por cuota
// (en ese caso se devuelve ErrStorageFull junto con la respuesta válida).
func (c *Controller) SaveStock(ctx context.Context, in dto.SaveStockRequest) (dto.StockResponse, error) {
	if in.Name == "" || in.Category == "" || in.Price.IsNegative() {
		return dto.StockResponse{}, domain.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	item := entity.StockItem{
		ID:        in.ID,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Variants:  sanitizeVariants(in.Variants),
		UpdatedAt: now,
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
		item.History = []entity.StockHistory{history.Created(item, now)}
		c.stocks = append([]entity.StockItem{item}, cloneStocks(c.stocks)...)
	} else {
		idx := c.stockIndex(item.ID)
		if idx < 0 {
			return dto.StockResponse{}, domain.ErrNotFound
		}
		prev := c.stocks[idx]
		item.History = history.Prepend(prev.History, history.Diff(prev, item, now)...)
		next := cloneStocks(c.stocks)
		next[idx] = item
		c.stocks = next
	}

	c.remoteUpsertStock(ctx, item)
	return dto.ToStockResponse(item), c.saveStocksCache()
}

// SaveTransaction alta (id vacío) o edición in-place; en ediciones se preserva
// el timestamp original.
func (c *Controller) SaveTransaction(ctx context.Context, in dto.SaveTransactionRequest) (dto.TransactionResponse, error) {
	if in.Type != entity.TransactionIncome && in.Type != entity.TransactionExpense {
		return dto.TransactionResponse{}, domain.ErrInvalidInput
	}
	if in.Category == "" || !in.Amount.IsPositive() {
		return dto.TransactionResponse{}, domain.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	txn := entity.Transaction{
		ID:           in.ID,
		Type:         in.Type,
		Amount:       in.Amount,
		Category:     in.Category,
		Description:  in.Description,
		Counterparty: in.Counterparty,
		Date:         time.Now(),
	}

	if txn.ID == "" {
		txn.ID = uuid.New().String()
		c.txns = append([]entity.Transaction{txn}, cloneTxns(c.txns)...)
	} else {
		idx := c.txnIndex(txn.ID)
		if idx < 0 {
			return dto.TransactionResponse{}, domain.ErrNotFound
		}
		txn.Date = c.txns[idx].Date // edición completa, timestamp preservado
		next := cloneTxns(c.txns)
		next[idx] = txn
		c.txns = next
	}

	c.remoteUpsertTxn(ctx, txn)
	return dto.ToTransactionResponse(txn), c.saveTxnsCache()
}

// BeginDeleteStock genera el código de confirmación para borrar un artículo.
func (c *Controller) BeginDeleteStock(id string) (dto.PendingActionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stockIndex(id) < 0 {
		return dto.PendingActionResponse{}, domain.ErrNotFound
	}
	c.pending = &pendingAction{action: ActionDeleteStock, payload: id, code: newConfirmationCode()}
	return dto.PendingActionResponse{Action: c.pending.action, Code: c.pending.code}, nil
}

// BeginClearTransactions genera el código para vaciar las transacciones.
func (c *Controller) BeginClearTransactions() dto.PendingActionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &pendingAction{action: ActionClearTransactions, code: newConfirmationCode()}
	return dto.PendingActionResponse{Action: c.pending.action, Code: c.pending.code}
}

// BeginReset genera el código para el borrado total (artículos y transacciones).
func (c *Controller) BeginReset() dto.PendingActionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &pendingAction{action: ActionResetAll, code: newConfirmationCode()}
	return dto.PendingActionResponse{Action: c.pending.action, Code: c.pending.code}
}

// CancelPending descarta la acción destructiva pendiente.
func (c *Controller) CancelPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Confirm ejecuta la acción pendiente si el código coincide. Un código
// incorrecto aborta con ErrCodeMismatch sin ningún efecto (ni borrado
// parcial); la acción queda pendiente para reintentar o cancelar.
func (c *Controller) Confirm(ctx context.Context, code string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return "", domain.ErrNoPendingAction
	}
	if code != c.pending.code {
		return "", domain.ErrCodeMismatch
	}
	action := *c.pending
	c.pending = nil

	switch action.action {
	case ActionDeleteStock:
		idx := c.stockIndex(action.payload)
		if idx < 0 {
			return action.action, domain.ErrNotFound
		}
		next := cloneStocks(c.stocks)
		c.stocks = append(next[:idx], next[idx+1:]...)
		if c.remoteEnabled() {
			if err := c.stockRepo.DeleteOne(ctx, c.user.ID, action.payload); err != nil {
				c.log.Warn().Err(err).Str("id", action.payload).Msg("borrado remoto de artículo falló")
			}
		}
		return action.action, c.saveStocksCache()

	case ActionClearTransactions:
		c.txns = nil
		if c.remoteEnabled() {
			if err := c.txnRepo.DeleteAll(ctx, c.user.ID); err != nil {
				c.log.Warn().Err(err).Msg("borrado remoto de transacciones falló")
			}
		}
		return action.action, c.saveTxnsCache()

	case ActionResetAll:
		c.stocks, c.txns = nil, nil
		if c.remoteEnabled() {
			if err := c.stockRepo.DeleteAll(ctx, c.user.ID); err != nil {
				c.log.Warn().Err(err).Msg("borrado remoto de artículos falló")
			}
			if err := c.txnRepo.DeleteAll(ctx, c.user.ID); err != nil {
				c.log.Warn().Err(err).Msg("borrado remoto de transacciones falló")
			}
		}
		if err := c.saveStocksCache(); err != nil {
			return action.action, err
		}
		return action.action, c.saveTxnsCache()
	}
	return "", domain.ErrNoPendingAction
}

// ReplaceAll reemplaza ambas colecciones (restauración de respaldo) y
// persiste caché y remoto.
func (c *Controller) ReplaceAll(ctx context.Context, stocks []entity.StockItem, txns []entity.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stocks = migrate.NormalizeAll(stocks)
	c.txns = cloneTxns(txns)
	if c.remoteEnabled() {
		for _, s := range c.stocks {
			c.remoteUpsertStock(ctx, s)
		}
		for _, t := range c.txns {
			c.remoteUpsertTxn(ctx, t)
		}
	}
	if err := c.saveStocksCache(); err != nil {
		return err
	}
	return c.saveTxnsCache()
}

// ── Persistencia interna (llamar con mu tomado) ──────────────────────────────

// remoteUpsertStock escritura remota best-effort: el fallo se registra, nunca
// revierte el cambio optimista en memoria.
func (c *Controller) remoteUpsertStock(ctx context.Context, item entity.StockItem) {
	if !c.remoteEnabled() {
		return
	}
	if err := c.stockRepo.Upsert(ctx, c.user.ID, item); err != nil {
		c.log.Warn().Err(err).Str("id", item.ID).Msg("escritura remota de artículo falló")
	}
}

func (c *Controller) remoteUpsertTxn(ctx context.Context, txn entity.Transaction) {
	if !c.remoteEnabled() {
		return
	}
	if err := c.txnRepo.Upsert(ctx, c.user.ID, txn); err != nil {
		c.log.Warn().Err(err).Str("id", txn.ID).Msg("escritura remota de transacción falló")
	}
}

// saveStocksCache la caché local se escribe siempre, independiente del
// resultado remoto. ErrStorageFull se devuelve como condición distinta.
func (c *Controller) saveStocksCache() error {
	if err := c.cache.SaveStocks(c.user.Key(), c.stocks); err != nil {
		if errors.Is(err, domain.ErrStorageFull) {
			c.log.Warn().Str("user", c.user.Key()).Msg("caché local llena al guardar artículos")
			return err
		}
		c.log.Error().Err(err).Msg("escritura de caché de artículos falló")
		return err
	}
	return nil
}

func (c *Controller) saveTxnsCache() error {
	if err := c.cache.SaveTransactions(c.user.Key(), c.txns); err != nil {
		if errors.Is(err, domain.ErrStorageFull) {
			c.log.Warn().Str("user", c.user.Key()).Msg("caché local llena al guardar transacciones")
			return err
		}
		c.log.Error().Err(err).Msg("escritura de caché de transacciones falló")
		return err
	}
	return nil
}

func (c *Controller) saveCache() {
	_ = c.saveStocksCache()
	_ = c.saveTxnsCache()
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (c *Controller) stockIndex(id string) int {
	for i, s := range c.stocks {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) txnIndex(id string) int {
	for i, t := range c.txns {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// sanitizeVariants garantiza la invariante: siempre al menos una variante y
// ninguna con sizeStocks vacío; variantes sin id reciben uno.
func sanitizeVariants(variants []entity.StockVariant) []entity.StockVariant {
	if len(variants) == 0 {
		return []entity.StockVariant{{ID: uuid.New().String(), SizeStocks: migrate.DefaultSizeStocks()}}
	}
	out := make([]entity.StockVariant, len(variants))
	for i, v := range variants {
		if v.ID == "" {
			v.ID = uuid.New().String()
		}
		if len(v.SizeStocks) == 0 {
			v.SizeStocks = migrate.DefaultSizeStocks()
		}
		out[i] = v
	}
	return out
}

func cloneStocks(items []entity.StockItem) []entity.StockItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]entity.StockItem, len(items))
	copy(dup, items)
	return dup
}

func cloneTxns(txns []entity.Transaction) []entity.Transaction {
	if len(txns) == 0 {
		return nil
	}
	dup := make([]entity.Transaction, len(txns))
	copy(dup, txns)
	return dup
}
