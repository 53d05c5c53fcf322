package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appasset "github.com/jhoicas/Alquileres-api/internal/application/asset"
	"github.com/jhoicas/Alquileres-api/internal/application/auth"
	apphistory "github.com/jhoicas/Alquileres-api/internal/application/history"
	applifecycle "github.com/jhoicas/Alquileres-api/internal/application/lifecycle"
	"github.com/jhoicas/Alquileres-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Alquileres-api/internal/interfaces/http"
	"github.com/jhoicas/Alquileres-api/internal/scheduler"
	"github.com/jhoicas/Alquileres-api/pkg/config"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, "./migrations"); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	assetRepo := postgres.NewAssetRepository(pool)
	eventRepo := postgres.NewLifecycleEventRepository(pool)
	cycleRepo := postgres.NewLifecycleCycleRepository(pool)
	withdrawalRepo := postgres.NewWithdrawalRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	maintenanceRepo := postgres.NewMaintenanceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	archiver := applifecycle.NewArchiver(cycleRepo, log)
	engine := applifecycle.NewEngine(assetRepo, eventRepo, archiver, log)
	coordinator := applifecycle.NewSubstitutionCoordinator(engine, assetRepo, eventRepo, log)
	reconciler := applifecycle.NewReconciler(withdrawalRepo, log)
	sweep := applifecycle.NewSweep(assetRepo, eventRepo, log, time.Duration(cfg.Sweep.WindowHours)*time.Hour)

	assetUC := appasset.NewUseCase(txRunner, assetRepo)
	historyUC := apphistory.NewUseCase(assetRepo, withdrawalRepo, reportRepo, maintenanceRepo, eventRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AssetUC:     assetUC,
		Coordinator: coordinator,
		Reconciler:  reconciler,
		HistoryUC:   historyUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	sched := scheduler.New(cfg.Sweep, sweep, log)
	sched.Start()
	defer sched.Stop()

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
