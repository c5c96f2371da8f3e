package entity

import "time"

// Frecuencias de respaldo automático.
const (
	BackupDaily   = "daily"
	BackupWeekly  = "weekly"
	BackupMonthly = "monthly"
	BackupNever   = "never"
)

// User el dueño de los registros. ID es el uid remoto; queda vacío para
// cuentas locales/invitado (modo sin sincronización, no es un error).
type User struct {
	ID              string     `json:"id,omitempty"` // uid remoto; "" = local/invitado
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Mobile          string     `json:"mobile,omitempty"`
	PasswordHash    string     `json:"-"`
	BackupFrequency string     `json:"backupFrequency,omitempty"` // daily|weekly|monthly|never
	LastBackupDate  *time.Time `json:"lastBackupDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt,omitempty"`
}

// IsRemote indica si la cuenta tiene un uid remoto (sincroniza con el backend).
func (u User) IsRemote() bool {
	return u.ID != ""
}

// Key clave de pertenencia de los datos: el uid remoto si existe, si no el email.
// Se usa como namespace en la caché local y como owner en las filas remotas.
func (u User) Key() string {
	if u.ID != "" {
		return u.ID
	}
	return u.Email
}
