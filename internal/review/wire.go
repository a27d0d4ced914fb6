package review

import (
	"database/sql"

	"go.uber.org/zap"

	"bazaar/internal/config"
	"bazaar/internal/review/controller"
	"bazaar/internal/review/memory"
	"bazaar/internal/review/repository"
	"bazaar/internal/review/service"
)

// Module exposes the repository alongside the controller for the admin
// dashboard counters.
type Module struct {
	Controller *controller.Controller
	Repository service.Repository
}

func NewModule(db *sql.DB, driver string, orders service.OrderLookup, logger *zap.Logger) *Module {
	var repo service.Repository
	if driver == config.StoreDriverMySQL {
		repo = repository.NewMySQLReviewRepository(db)
	} else {
		repo = memory.NewReviewRepository()
	}
	svc := service.NewReviewService(repo, orders, logger)
	return &Module{
		Controller: controller.NewController(svc, logger),
		Repository: repo,
	}
}
