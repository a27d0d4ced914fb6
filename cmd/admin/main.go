package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bazaar/internal/auth"
	"bazaar/internal/catalog"
	"bazaar/internal/config"
	"bazaar/internal/dashboard"
	"bazaar/internal/domain"
	"bazaar/internal/infrastructure/logger"
	"bazaar/internal/infrastructure/mysql"
	"bazaar/internal/order"
	"bazaar/internal/review"
	"bazaar/internal/server"
	"bazaar/internal/shop"
	"bazaar/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, "admin")
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	var db *sql.DB
	if cfg.Store.Driver == config.StoreDriverMySQL {
		db, err = mysql.Connect(cfg.Database)
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected")
	} else {
		zapLogger.Info("using in-memory store")
	}

	userStore := user.NewStore(db, cfg.Store.Driver)
	authMod := auth.NewModule(db, cfg.Store.Driver, userStore, cfg.Auth, domain.RoleAdmin, zapLogger)
	userCtrl := user.NewController(userStore, zapLogger)
	shopMod := shop.NewModule(db, cfg.Store.Driver, zapLogger)
	catalogMod := catalog.NewModule(db, cfg.Store.Driver, shopMod.Service, zapLogger)
	orderMod := order.NewModule(db, cfg.Store.Driver, order.Deps{
		Shops:    shopMod.Service,
		ShopsRaw: shopMod.Repository,
		Catalog:  catalogMod.Repository,
		Stock:    catalogMod.Repository,
		Order:    cfg.Order,
	}, zapLogger)
	reviewMod := review.NewModule(db, cfg.Store.Driver, orderMod.Service, zapLogger)
	dashboardCtrl := dashboard.NewModule(shopMod.Repository, orderMod.Repository, userStore, reviewMod.Repository, zapLogger)

	router := server.NewAdminRouter(
		authMod.Controller, authMod.Service, userCtrl,
		shopMod.Controller, orderMod.Controller, reviewMod.Controller, dashboardCtrl,
		zapLogger,
	)

	srv := server.New("admin", cfg.Server.AdminPort, router, zapLogger)

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
