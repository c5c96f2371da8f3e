package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
// Una fila por artículo: (id, owner_uid, content jsonb). El registro completo
// viaja serializado en content; RLS en el servidor restringe cada fila a su
// owner_uid, el cliente solo aporta el uid de la sesión autenticada.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// FetchAll devuelve todos los artículos del propietario, más reciente primero.
func (r *StockRepo) FetchAll(ctx context.Context, ownerUID string) ([]entity.StockItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT content FROM stock_items WHERE owner_uid = $1 ORDER BY updated_at DESC`,
		ownerUID,
	)
	if err != nil {
		return nil, remoteErr("fetch stock_items", err)
	}
	defer rows.Close()

	var items []entity.StockItem
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan stock_items: %w", err)
		}
		var item entity.StockItem
		if err := json.Unmarshal(content, &item); err != nil {
			return nil, fmt.Errorf("decode stock item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr("fetch stock_items", err)
	}
	return items, nil
}

// Upsert inserta o reemplaza por id. Idempotente: nunca duplica filas para el mismo id.
func (r *StockRepo) Upsert(ctx context.Context, ownerUID string, item entity.StockItem) error {
	content, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode stock item: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO stock_items (id, owner_uid, content, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (owner_uid, id) DO UPDATE SET content = EXCLUDED.content, updated_at = now()`,
		item.ID, ownerUID, content,
	)
	if err != nil {
		return remoteErr("upsert stock item", err)
	}
	return nil
}

// DeleteOne elimina un artículo del propietario por id.
func (r *StockRepo) DeleteOne(ctx context.Context, ownerUID, id string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM stock_items WHERE owner_uid = $1 AND id = $2`, ownerUID, id)
	if err != nil {
		return remoteErr("delete stock item", err)
	}
	return nil
}

// DeleteAll elimina todos los artículos del propietario.
func (r *StockRepo) DeleteAll(ctx context.Context, ownerUID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE owner_uid = $1`, ownerUID)
	if err != nil {
		return remoteErr("delete stock items", err)
	}
	return nil
}
