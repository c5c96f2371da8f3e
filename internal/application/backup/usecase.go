// Package backup implementa la exportación e importación de respaldos
// completos (usuario + artículos + transacciones) en un único documento JSON.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/viyabaari-api/internal/application/state"
	"github.com/jhoicas/viyabaari-api/internal/domain"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/migrate"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
)

// Payload formato del archivo de respaldo.
type Payload struct {
	User         entity.User          `json:"user"`
	Stocks       []entity.StockItem   `json:"stocks"`
	Transactions []entity.Transaction `json:"transactions"`
	ExportedAt   time.Time            `json:"exportedAt"`
}

// UseCase orquesta respaldos sobre el estado vivo de cada identidad.
type UseCase struct {
	manager *state.Manager
	log     *logger.Logger
}

func NewUseCase(manager *state.Manager, log *logger.Logger) *UseCase {
	return &UseCase{manager: manager, log: log}
}

// Export serializa el estado actual del usuario como documento de respaldo.
func (u *UseCase) Export(ctx context.Context, user entity.User) ([]byte, error) {
	ctrl, err := u.manager.ForUser(ctx, user)
	if err != nil {
		return nil, err
	}
	payload := Payload{
		User:         ctrl.User(),
		Stocks:       ctrl.Stocks(),
		Transactions: ctrl.Transactions("", ""),
		ExportedAt:   time.Now(),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializando respaldo: %w", err)
	}
	return data, nil
}

// probe valida la forma antes de confiar en el documento: `user` presente y
// `stocks` un arreglo JSON. Cualquier otra cosa es un respaldo inválido y no
// toca el estado existente.
type probe struct {
	User   json.RawMessage `json:"user"`
	Stocks json.RawMessage `json:"stocks"`
}

// Import restaura un respaldo completo para la identidad que lo contiene.
// Todo-o-nada: un documento malformado devuelve ErrInvalidBackup sin efecto.
func (u *UseCase) Import(ctx context.Context, raw []byte) (entity.User, error) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return entity.User{}, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if !isPresent(p.User) || !isJSONArray(p.Stocks) {
		return entity.User{}, domain.ErrInvalidBackup
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return entity.User{}, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if payload.User.Key() == "" {
		return entity.User{}, domain.ErrInvalidBackup
	}

	ctrl, err := u.manager.ForUser(ctx, payload.User)
	if err != nil {
		return entity.User{}, err
	}
	stocks := migrate.NormalizeAll(payload.Stocks)
	if err := ctrl.ReplaceAll(ctx, stocks, payload.Transactions); err != nil {
		return entity.User{}, err
	}
	u.log.Info().
		Str("user", payload.User.Key()).
		Int("stocks", len(stocks)).
		Int("transactions", len(payload.Transactions)).
		Msg("respaldo restaurado")
	return payload.User, nil
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
