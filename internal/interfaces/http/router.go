package http

import (
	"github.com/gofiber/fiber/v2"

	appasset "github.com/jhoicas/Alquileres-api/internal/application/asset"
	"github.com/jhoicas/Alquileres-api/internal/application/auth"
	apphistory "github.com/jhoicas/Alquileres-api/internal/application/history"
	applifecycle "github.com/jhoicas/Alquileres-api/internal/application/lifecycle"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AssetUC     *appasset.UseCase
	Coordinator *applifecycle.SubstitutionCoordinator
	Reconciler  *applifecycle.Reconciler
	HistoryUC   *apphistory.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Equipos (protegido)
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assets.Post("/", RequireRole(entity.RoleAdmin, entity.RoleOperador), assetHandler.Register)
	assets.Get("/", assetHandler.List)
	assets.Get("/code/:code", assetHandler.GetByCode)
	assets.Get("/:id", assetHandler.GetByID)

	// Ciclo de vida: traslados y reemplazos (protegido)
	lifecycleHandler := NewLifecycleHandler(deps.Coordinator, deps.Reconciler)
	assets.Post("/:id/transitions", lifecycleHandler.Transition)
	assets.Post("/:id/substitutions", RequireRole(entity.RoleAdmin, entity.RoleOperador), lifecycleHandler.Substitute)

	// Retiros pendientes de un equipo y su resolución (protegido)
	assets.Get("/code/:code/withdrawals/pending", lifecycleHandler.PendingWithdrawals)
	assets.Post("/code/:code/withdrawals/reconcile", RequireRole(entity.RoleAdmin, entity.RoleOperador), lifecycleHandler.Reconcile)

	// Historial unificado (protegido)
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	assets.Get("/code/:code/history", historyHandler.GetHistory)
}
