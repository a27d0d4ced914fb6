package shop

import (
	"database/sql"

	"go.uber.org/zap"

	"bazaar/internal/config"
	"bazaar/internal/shop/controller"
	"bazaar/internal/shop/memory"
	"bazaar/internal/shop/repository"
	"bazaar/internal/shop/service"
)

// Module bundles the shop controller with its service so other modules
// can share the same backing repository instance.
type Module struct {
	Controller *controller.Controller
	Service    *service.ShopService
	Repository service.Repository
}

func NewModule(db *sql.DB, driver string, logger *zap.Logger) *Module {
	var repo service.Repository
	if driver == config.StoreDriverMySQL {
		repo = repository.NewMySQLShopRepository(db)
	} else {
		repo = memory.NewShopRepository()
	}
	svc := service.NewShopService(repo, logger)
	return &Module{
		Controller: controller.NewController(svc, logger),
		Service:    svc,
		Repository: repo,
	}
}
