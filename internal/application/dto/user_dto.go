package dto

import (
	"time"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

// RegisterRequest alta de cuenta.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
}

// LoginRequest acceso: Login acepta email o móvil.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UpdateProfileRequest edición de perfil y preferencias de respaldo.
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Mobile          *string `json:"mobile,omitempty"`
	BackupFrequency *string `json:"backupFrequency,omitempty"` // daily|weekly|monthly|never
}

// UserResponse representación pública de una cuenta (nunca incluye credenciales).
type UserResponse struct {
	ID              string     `json:"id,omitempty"` // vacío para sesión local/invitado
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Mobile          string     `json:"mobile,omitempty"`
	Guest           bool       `json:"guest"`
	BackupFrequency string     `json:"backupFrequency,omitempty"`
	LastBackupDate  *time.Time `json:"lastBackupDate,omitempty"`
}

// SessionResponse token de sesión más la cuenta. Token queda vacío en sesiones
// de invitado (no hay identidad remota que restaurar).
type SessionResponse struct {
	Token string       `json:"token,omitempty"`
	User  UserResponse `json:"user"`
}

// ToUserResponse mapea la entidad a su representación pública.
func ToUserResponse(u *entity.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Mobile:          u.Mobile,
		Guest:           !u.IsRemote(),
		BackupFrequency: u.BackupFrequency,
		LastBackupDate:  u.LastBackupDate,
	}
}
