package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/backup"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
	"github.com/jhoicas/viyabaari-api/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/viyabaari-api/internal/infrastructure/pdf"
	"github.com/jhoicas/viyabaari-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/viyabaari-api/internal/interfaces/http"
	"github.com/jhoicas/viyabaari-api/pkg/config"
	"github.com/jhoicas/viyabaari-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	cache, err := localstore.New(cfg.Local.Dir, cfg.Local.QuotaBytes, log)
	if err != nil {
		log.Fatal().Err(err).Msg("caché local")
	}

	// La conexión remota es opcional: sin DB configurada (o inalcanzable al
	// arrancar) la aplicación opera en modo solo-local sobre la caché.
	ctx := context.Background()
	var stockRepo repository.StockRepository
	var txnRepo repository.TransactionRepository
	var userRepo repository.UserRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Warn().Err(err).Msg("PostgreSQL inalcanzable, arrancando en modo solo-local")
		} else {
			defer pool.Close()
			stockRepo = postgres.NewStockRepository(pool)
			txnRepo = postgres.NewTransactionRepository(pool)
			userRepo = postgres.NewUserRepository(pool)
		}
	} else {
		log.Info().Msg("sin backend remoto configurado, modo solo-local")
	}

	manager := state.NewManager(cache, stockRepo, txnRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, cache, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	backupUC := backup.NewUseCase(manager, log)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	// Respaldos automáticos: solo con backend remoto (ahí vive la frecuencia
	// elegida por cada cuenta).
	if cfg.Backup.Enabled && userRepo != nil {
		scheduler := backup.NewScheduler(backupUC, userRepo, cfg.Backup.Dir, log)
		if err := scheduler.Start(); err != nil {
			log.Error().Err(err).Msg("programador de respaldos")
		} else {
			defer scheduler.Stop()
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Viyabaari API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "online": manager.Online()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Manager:   manager,
		BackupUC:  backupUC,
		Cache:     cache,
		PDF:       pdfGenerator,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
