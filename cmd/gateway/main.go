package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/food-delivery-platform/internal/config"
	"github.com/spec-kit/food-delivery-platform/internal/gateway"
	"github.com/spec-kit/food-delivery-platform/internal/observability"
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

	table, err := gateway.NewTable(gateway.DefaultRoutes(cfg.Gateway))
	if err != nil {
		logger.Fatal("invalid route table", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	server := gateway.NewServer(table, cfg.Gateway.ProxyTimeout(), logger, metrics)

	go func() {
		if err := server.Listen(cfg.App.Host + ":" + cfg.Gateway.Port); err != nil {
			logger.Fatal("gateway listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = server.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
