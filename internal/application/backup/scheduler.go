package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/viyabaari-api/internal/domain/entity"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
)

// Scheduler ejecuta respaldos automáticos según la frecuencia configurada por
// cada usuario. Corre un barrido diario y decide por usuario si ya venció el
// intervalo desde su último respaldo.
type Scheduler struct {
	cron     *cron.Cron
	usecase  *UseCase
	userRepo repository.UserRepository
	dir      string
	log      *logger.Logger
}

func NewScheduler(usecase *UseCase, userRepo repository.UserRepository, dir string, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		usecase:  usecase,
		userRepo: userRepo,
		dir:      dir,
		log:      log,
	}
}

// Start programa el barrido diario a las 02:00 y arranca el cron.
func (s *Scheduler) Start() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creando directorio de respaldos: %w", err)
	}
	if _, err := s.cron.AddFunc("0 2 * * *", s.runSweep); err != nil {
		return fmt.Errorf("programando respaldo automático: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("dir", s.dir).Msg("respaldos automáticos programados")
	return nil
}

// Stop detiene el cron y espera los trabajos en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	users, err := s.userRepo.ListWithBackupSchedule(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("listando usuarios con respaldo programado")
		return
	}

	now := time.Now()
	for _, u := range users {
		if !due(u, now) {
			continue
		}
		if err := s.backupUser(ctx, u, now); err != nil {
			s.log.Error().Err(err).Str("user", u.Key()).Msg("respaldo automático falló")
		}
	}
}

func (s *Scheduler) backupUser(ctx context.Context, u *entity.User, now time.Time) error {
	data, err := s.usecase.Export(ctx, *u)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s-%s.json", u.Key(), now.Format("2006-01-02"))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("escribiendo archivo de respaldo: %w", err)
	}

	u.LastBackupDate = &now
	if err := s.userRepo.Update(ctx, u); err != nil {
		// El archivo ya existe; solo se perdió la marca de fecha.
		s.log.Warn().Err(err).Str("user", u.Key()).Msg("no se pudo actualizar la fecha de último respaldo")
	}
	s.log.Info().Str("user", u.Key()).Str("file", name).Msg("respaldo automático generado")
	return nil
}

// due decide si al usuario le toca respaldo en este barrido.
func due(u *entity.User, now time.Time) bool {
	var interval time.Duration
	switch u.BackupFrequency {
	case entity.BackupDaily:
		interval = 24 * time.Hour
	case entity.BackupWeekly:
		interval = 7 * 24 * time.Hour
	case entity.BackupMonthly:
		interval = 30 * 24 * time.Hour
	default:
		return false
	}
	if u.LastBackupDate == nil {
		return true
	}
	return now.Sub(*u.LastBackupDate) >= interval
}
