package controller

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/auth"
	"bazaar/internal/dashboard/service"
	"bazaar/internal/web"
)

type Controller struct {
	service *service.DashboardService
	logger  *zap.Logger
}

func NewController(svc *service.DashboardService, logger *zap.Logger) *Controller {
	return &Controller{service: svc, logger: logger}
}

func (c *Controller) HandleMerchantDashboard(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	dashboard, err := c.service.MerchantDashboard(r.Context(), merchant.ID)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dashboard)
}

func (c *Controller) HandleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	dashboard, err := c.service.AdminDashboard(r.Context())
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dashboard)
}
