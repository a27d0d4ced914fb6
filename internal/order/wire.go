package order

import (
	"database/sql"

	"go.uber.org/zap"

	"bazaar/internal/config"
	"bazaar/internal/order/controller"
	"bazaar/internal/order/memory"
	"bazaar/internal/order/repository"
	"bazaar/internal/order/service"
	"bazaar/internal/order/usecase"
)

// Module bundles the order controller with the query service so the
// dashboard module can reuse the same repository instance.
type Module struct {
	Controller *controller.Controller
	Service    *service.OrderService
	Repository service.Repository
}

type Deps struct {
	Shops    service.ShopDirectory
	ShopsRaw usecase.ShopFinder
	Catalog  usecase.ProductCatalog
	Stock    service.StockReserver
	Order    config.OrderConfig
}

func NewModule(db *sql.DB, driver string, deps Deps, logger *zap.Logger) *Module {
	var repo service.Repository
	var idempotency usecase.IdempotencyRepository
	if driver == config.StoreDriverMySQL {
		repo = repository.NewMySQLOrderRepository(db)
		idempotency = repository.NewMySQLIdempotencyRepository(db)
	} else {
		repo = memory.NewOrderRepository()
		idempotency = memory.NewIdempotencyRepository()
	}

	checkout := service.NewCheckoutService(deps.Stock, repo, logger, deps.Order.CommitTimeout)
	placeOrder := usecase.NewPlaceOrderUseCase(
		deps.ShopsRaw, deps.Catalog, checkout, repo, idempotency,
		logger, deps.Order.MaxRetryAttempts,
	)
	svc := service.NewOrderService(repo, deps.Shops, deps.Stock, logger)

	return &Module{
		Controller: controller.NewController(placeOrder, svc, logger),
		Service:    svc,
		Repository: repo,
	}
}
