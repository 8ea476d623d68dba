package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/food-delivery-platform/internal/api/http"
	"github.com/spec-kit/food-delivery-platform/internal/api/http/handlers"
	"github.com/spec-kit/food-delivery-platform/internal/auth"
	"github.com/spec-kit/food-delivery-platform/internal/cache"
	"github.com/spec-kit/food-delivery-platform/internal/config"
	"github.com/spec-kit/food-delivery-platform/internal/events"
	"github.com/spec-kit/food-delivery-platform/internal/observability"
	"github.com/spec-kit/food-delivery-platform/internal/persistence"
	"github.com/spec-kit/food-delivery-platform/internal/repository"
	"github.com/spec-kit/food-delivery-platform/internal/service"
	"github.com/spec-kit/food-delivery-platform/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	foodRepo := repository.NewFoodRepository(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher()

	foodService := service.NewFoodService(service.FoodDependencies{
		FoodRepo:   foodRepo,
		ListCache:  cache.NewFoodCache(redis.Client),
		Dispatcher: dispatcher,
	})

	// Same shared secret as the auth service; tokens verify locally.
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDays)
	authMiddleware := auth.NewMiddleware(tokenManager)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRestaurantRoutes(app, httptransport.RestaurantRouteConfig{
		Health:         handlers.NewHealthHandler("restaurant-service", cfg.App.Version, pg, redis),
		Foods:          handlers.NewFoodsHandler(foodService),
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
