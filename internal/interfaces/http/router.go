package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/viyabaari-api/internal/application/auth"
	"github.com/jhoicas/viyabaari-api/internal/application/backup"
	"github.com/jhoicas/viyabaari-api/internal/application/state"
	"github.com/jhoicas/viyabaari-api/internal/domain/repository"
	"github.com/jhoicas/viyabaari-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Manager   *state.Manager
	BackupUC  *backup.UseCase
	Cache     repository.CacheStore
	PDF       *pdf.MarotoReportGenerator
	JWTSecret string
}

// Router registra las rutas de la API. Todas las rutas de datos pasan por el
// middleware de auth, que admite peticiones sin token como sesión
// local/invitado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Auth y sesión
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Manager)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/guest", authHandler.Guest)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)
	authGroup.Put("/me", authHandler.UpdateProfile)

	// Inventario
	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.AuthUC, deps.Manager)
	stocks.Get("/", stockHandler.List)
	stocks.Post("/", stockHandler.Save)
	stocks.Post("/:id/delete", stockHandler.BeginDelete)

	// Contabilidad
	txns := api.Group("/transactions")
	txnHandler := NewTransactionHandler(deps.AuthUC, deps.Manager)
	txns.Get("/", txnHandler.List)
	txns.Post("/", txnHandler.Save)
	txns.Post("/clear", txnHandler.BeginClear)

	// Panel
	dashboardHandler := NewDashboardHandler(deps.AuthUC, deps.Manager)
	api.Get("/summary", dashboardHandler.Summary)

	// Preferencias, conectividad y confirmación de acciones destructivas
	settingsHandler := NewSettingsHandler(deps.AuthUC, deps.Manager, deps.Cache)
	api.Post("/reset", settingsHandler.BeginReset)
	api.Post("/confirm", settingsHandler.Confirm)
	api.Delete("/confirm", settingsHandler.CancelPending)
	api.Put("/connectivity", settingsHandler.SetConnectivity)
	api.Get("/language", settingsHandler.GetLanguage)
	api.Put("/language", settingsHandler.SetLanguage)

	// Respaldos
	backupHandler := NewBackupHandler(deps.AuthUC, deps.BackupUC)
	api.Get("/backup", backupHandler.Export)
	api.Post("/backup", backupHandler.Import)

	// Informes
	reportHandler := NewReportHandler(deps.AuthUC, deps.Manager, deps.PDF)
	api.Get("/reports/accounting", reportHandler.Accounting)
}
