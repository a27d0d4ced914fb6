package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"bazaar/internal/catalog/controller"
	"bazaar/internal/catalog/memory"
	"bazaar/internal/catalog/repository"
	"bazaar/internal/catalog/service"
	"bazaar/internal/config"
)

// Module exposes the catalog controller plus the raw repository, which
// the order module uses for stock reservation.
type Module struct {
	Controller *controller.Controller
	Repository service.Repository
	Service    *service.CatalogService
}

func NewModule(db *sql.DB, driver string, shops service.ShopDirectory, logger *zap.Logger) *Module {
	var repo service.Repository
	if driver == config.StoreDriverMySQL {
		repo = repository.NewMySQLProductRepository(db)
	} else {
		repo = memory.NewProductRepository()
	}
	svc := service.NewCatalogService(repo, shops, logger)
	return &Module{
		Controller: controller.NewController(svc, logger),
		Repository: repo,
		Service:    svc,
	}
}
