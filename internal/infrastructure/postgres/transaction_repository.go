package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre
// PostgreSQL. Mismo esquema fila-por-registro que stock_items.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// FetchAll devuelve todas las transacciones del propietario, más reciente primero.
func (r *TransactionRepo) FetchAll(ctx context.Context, ownerUID string) ([]entity.Transaction, error) {
	rows, err := r.q.Query(ctx,
		`SELECT content FROM transactions WHERE owner_uid = $1 ORDER BY updated_at DESC`,
		ownerUID,
	)
	if err != nil {
		return nil, remoteErr("fetch transactions", err)
	}
	defer rows.Close()

	var txns []entity.Transaction
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan transactions: %w", err)
		}
		var txn entity.Transaction
		if err := json.Unmarshal(content, &txn); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, remoteErr("fetch transactions", err)
	}
	return txns, nil
}

// Upsert inserta o reemplaza por id. Idempotente.
func (r *TransactionRepo) Upsert(ctx context.Context, ownerUID string, txn entity.Transaction) error {
	content, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO transactions (id, owner_uid, content, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (owner_uid, id) DO UPDATE SET content = EXCLUDED.content, updated_at = now()`,
		txn.ID, ownerUID, content,
	)
	if err != nil {
		return remoteErr("upsert transaction", err)
	}
	return nil
}

// DeleteOne elimina una transacción del propietario por id.
func (r *TransactionRepo) DeleteOne(ctx context.Context, ownerUID, id string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM transactions WHERE owner_uid = $1 AND id = $2`, ownerUID, id)
	if err != nil {
		return remoteErr("delete transaction", err)
	}
	return nil
}

// DeleteAll elimina todas las transacciones del propietario (borrado masivo).
func (r *TransactionRepo) DeleteAll(ctx context.Context, ownerUID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE owner_uid = $1`, ownerUID)
	if err != nil {
		return remoteErr("delete transactions", err)
	}
	return nil
}
