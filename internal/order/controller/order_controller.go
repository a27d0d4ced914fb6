package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/auth"
	"bazaar/internal/domain"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
	"bazaar/internal/order/service"
	"bazaar/internal/order/usecase"
	"bazaar/internal/web"
)

type Controller struct {
	placeOrder *usecase.PlaceOrderUseCase
	service    *service.OrderService
	logger     *zap.Logger
}

func NewController(placeOrder *usecase.PlaceOrderUseCase, svc *service.OrderService, logger *zap.Logger) *Controller {
	return &Controller{placeOrder: placeOrder, service: svc, logger: logger}
}

// Customer handlers.

func (c *Controller) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	customer, _ := auth.UserFrom(r.Context())

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.ShopID == "" {
		web.WriteValidationError(w, logger, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "shopId",
			Message: "shopId is required",
		})
		return
	}

	order, err := c.placeOrder.PlaceOrder(r.Context(), customer.ID, req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusCreated, dto.FromOrder(order))
}

func (c *Controller) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	customer, _ := auth.UserFrom(r.Context())

	orders, err := c.service.ListCustomerOrders(r.Context(), customer.ID)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromOrders(orders))
}

func (c *Controller) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	customer, _ := auth.UserFrom(r.Context())

	order, err := c.service.GetCustomerOrder(r.Context(), customer.ID, chi.URLParam(r, "orderId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromOrder(order))
}

func (c *Controller) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	customer, _ := auth.UserFrom(r.Context())

	order, err := c.service.CancelCustomerOrder(r.Context(), customer.ID, chi.URLParam(r, "orderId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromOrder(order))
}

// Merchant handlers.

func (c *Controller) HandleListShopOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	orders, err := c.service.ListShopOrders(r.Context(), merchant.ID,
		chi.URLParam(r, "shopId"), domain.OrderStatus(r.URL.Query().Get("status")))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromOrders(orders))
}

func (c *Controller) HandleUpdateShopOrderStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.service.UpdateShopOrderStatus(r.Context(), merchant.ID,
		chi.URLParam(r, "shopId"), chi.URLParam(r, "orderId"),
		domain.OrderStatus(req.Status), req.MerchantNote)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromOrder(order))
}

// Admin handlers.

func (c *Controller) HandleListAllOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.service.ListAllOrders(r.Context())
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromOrders(orders))
}

func (c *Controller) HandleGetAnyOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	order, err := c.service.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromOrder(order))
}

func (c *Controller) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderId"),
		domain.OrderStatus(req.Status), req.MerchantNote)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromOrder(order))
}
