package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bazaar/internal/config"
	"bazaar/internal/gateway"
	"bazaar/internal/infrastructure/logger"
	"bazaar/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, "gateway")
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	routes, err := gateway.LoadRoutes(cfg.Gateway)
	if err != nil {
		zapLogger.Fatal("loading gateway routes", zap.Error(err))
	}

	gw, err := gateway.New(routes, zapLogger)
	if err != nil {
		zapLogger.Fatal("building gateway", zap.Error(err))
	}
	for _, route := range routes {
		zapLogger.Info("route registered",
			zap.String("prefix", route.Prefix),
			zap.String("upstream", route.Upstream))
	}

	srv := server.New("gateway", cfg.Server.GatewayPort, gw.Handler(), zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
