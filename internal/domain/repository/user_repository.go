package repository

import (
	"context"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para cuentas remotas (DIP).
// Las operaciones fallan con domain.ErrNetworkUnavailable si el backend de
// identidad no responde; los callers con soporte offline ofrecen sesión local.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByLogin busca por email o por móvil (la pantalla de acceso acepta ambos).
	FindByLogin(ctx context.Context, login string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ListWithBackupSchedule cuentas con frecuencia de respaldo distinta de "never".
	ListWithBackupSchedule(ctx context.Context) ([]*entity.User, error)
}
