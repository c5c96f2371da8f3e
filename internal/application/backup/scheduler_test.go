package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
)

func TestDue_PorFrecuencia(t *testing.T) {
	now := time.Date(2026, 8, 30, 2, 0, 0, 0, time.UTC)
	hace := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	casos := []struct {
		nombre string
		user   entity.User
		want   bool
	}{
		{"diario vencido", entity.User{BackupFrequency: entity.BackupDaily, LastBackupDate: hace(25 * time.Hour)}, true},
		{"diario reciente", entity.User{BackupFrequency: entity.BackupDaily, LastBackupDate: hace(2 * time.Hour)}, false},
		{"semanal vencido", entity.User{BackupFrequency: entity.BackupWeekly, LastBackupDate: hace(8 * 24 * time.Hour)}, true},
		{"semanal reciente", entity.User{BackupFrequency: entity.BackupWeekly, LastBackupDate: hace(3 * 24 * time.Hour)}, false},
		{"mensual vencido", entity.User{BackupFrequency: entity.BackupMonthly, LastBackupDate: hace(31 * 24 * time.Hour)}, true},
		{"sin respaldo previo", entity.User{BackupFrequency: entity.BackupDaily}, true},
		{"nunca", entity.User{BackupFrequency: entity.BackupNever, LastBackupDate: hace(365 * 24 * time.Hour)}, false},
		{"frecuencia vacía", entity.User{}, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, due(&c.user, now), c.nombre)
	}
}
