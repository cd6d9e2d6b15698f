package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/QuiambaoMichael/safetap-backend/internal/api/http"
	"github.com/QuiambaoMichael/safetap-backend/internal/api/http/handlers"
	"github.com/QuiambaoMichael/safetap-backend/internal/auth"
	"github.com/QuiambaoMichael/safetap-backend/internal/config"
	"github.com/QuiambaoMichael/safetap-backend/internal/events"
	"github.com/QuiambaoMichael/safetap-backend/internal/observability"
	"github.com/QuiambaoMichael/safetap-backend/internal/persistence"
	"github.com/QuiambaoMichael/safetap-backend/internal/repository"
	"github.com/QuiambaoMichael/safetap-backend/internal/service"
	"github.com/QuiambaoMichael/safetap-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	concernRepo := repository.NewConcernRepository(pool)

	broadcaster := events.NewBroadcaster(cfg.Broadcast.ObserverBuffer, logger, metrics)
	defer broadcaster.Close()

	var publisher events.Publisher = broadcaster
	if cfg.Broadcast.RelayEnabled {
		relay := events.NewRelay(redis.Client, cfg.Broadcast.RelayChannel, cfg.Broadcast.RelayBuffer, broadcaster, logger)
		publisher = events.Tee{broadcaster, relay}
		go func() {
			if err := relay.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("event relay stopped", zap.Error(err))
			}
		}()
	}

	authService := service.NewAuthService(*cfg, userRepo)
	concernService := service.NewConcernService(service.ConcernDependencies{
		ConcernRepo: concernRepo,
		Identity:    userRepo,
		Publisher:   publisher,
		Metrics:     metrics,
	})

	notificationService := service.NewNotificationService(broadcaster, logger)
	worker.StartNotificationWorker(ctx, notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Concerns:       handlers.NewConcernsHandler(concernService),
		Stream:         handlers.NewStreamHandler(broadcaster, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
