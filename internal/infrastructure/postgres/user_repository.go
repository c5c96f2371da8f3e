package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/viyabaari-api/internal/domain"
	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, name, mobile, password_hash, backup_frequency, last_backup_date, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para cuentas.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste una cuenta nueva. Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.Name, user.Mobile, user.PasswordHash,
		user.BackupFrequency, user.LastBackupDate, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return remoteErr("insert user", err)
	}
	return nil
}

// GetByID obtiene una cuenta por uid.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindByLogin busca por email o móvil (la pantalla de acceso acepta ambos).
func (r *UserRepo) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR mobile = $1`, login))
}

// Update actualiza perfil y metadatos de respaldo de una cuenta existente.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	_, err := r.q.Exec(ctx, `
		UPDATE users SET name = $2, mobile = $3, password_hash = $4,
			backup_frequency = $5, last_backup_date = $6, updated_at = $7
		WHERE id = $1`,
		user.ID, user.Name, user.Mobile, user.PasswordHash,
		user.BackupFrequency, user.LastBackupDate, user.UpdatedAt,
	)
	if err != nil {
		return remoteErr("update user", err)
	}
	return nil
}

// ListWithBackupSchedule cuentas con respaldo automático habilitado.
func (r *UserRepo) ListWithBackupSchedule(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE backup_frequency IS NOT NULL AND backup_frequency <> '' AND backup_frequency <> $1`,
		entity.BackupNever,
	)
	if err != nil {
		return nil, remoteErr("list users", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Mobile, &u.PasswordHash,
			&u.BackupFrequency, &u.LastBackupDate, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Mobile, &u.PasswordHash,
		&u.BackupFrequency, &u.LastBackupDate, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, remoteErr("get user", err)
	}
	return &u, nil
}
