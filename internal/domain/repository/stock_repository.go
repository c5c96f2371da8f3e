package repository

import (
	"context"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

// StockRepository puerto de persistencia remota para artículos (fila por registro,
// payload completo serializado en una columna). Una fila solo es visible y
// mutable para su uid propietario; el caller nunca usa un uid ajeno.
// Todas las operaciones fallan con domain.ErrRemoteUnavailable si el servicio
// no responde; el caller degrada a la caché local.
type StockRepository interface {
	FetchAll(ctx context.Context, ownerUID string) ([]entity.StockItem, error)
	Upsert(ctx context.Context, ownerUID string, item entity.StockItem) error
	DeleteOne(ctx context.Context, ownerUID, id string) error
	DeleteAll(ctx context.Context, ownerUID string) error
}

// TransactionRepository puerto de persistencia remota para transacciones.
// Mismo contrato de propiedad y de fallos que StockRepository.
type TransactionRepository interface {
	FetchAll(ctx context.Context, ownerUID string) ([]entity.Transaction, error)
	Upsert(ctx context.Context, ownerUID string, txn entity.Transaction) error
	DeleteOne(ctx context.Context, ownerUID, id string) error
	DeleteAll(ctx context.Context, ownerUID string) error
}
