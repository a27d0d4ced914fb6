package dashboard

import (
	"go.uber.org/zap"

	"bazaar/internal/dashboard/controller"
	"bazaar/internal/dashboard/service"
)

func NewModule(shops service.ShopRepository, orders service.OrderRepository, users service.UserRepository, reviews service.ReviewRepository, logger *zap.Logger) *controller.Controller {
	svc := service.NewDashboardService(shops, orders, users, reviews, logger)
	return controller.NewController(svc, logger)
}
