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
	"bazaar/internal/shop/service"
	"bazaar/internal/web"
)

type Controller struct {
	service *service.ShopService
	logger  *zap.Logger
}

func NewController(svc *service.ShopService, logger *zap.Logger) *Controller {
	return &Controller{service: svc, logger: logger}
}

// Customer handlers.

func (c *Controller) HandleBrowseShops(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	shops, err := c.service.BrowseApproved(r.Context(),
		r.URL.Query().Get("category"), r.URL.Query().Get("search"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShops(shops))
}

func (c *Controller) HandleGetShop(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	shop, err := c.service.GetApproved(r.Context(), chi.URLParam(r, "shopId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShop(shop))
}

// Merchant handlers.

func (c *Controller) HandleCreateShop(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	var req dto.CreateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCreateShop(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		web.WriteValidationError(w, logger, traceID, ve.Message, ve.Details...)
		return
	}

	shop, err := c.service.CreateShop(r.Context(), merchant.ID, req)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusCreated, dto.FromShop(shop))
}

func (c *Controller) HandleListMerchantShops(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	shops, err := c.service.ListByMerchant(r.Context(), merchant.ID)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShops(shops))
}

func (c *Controller) HandleGetMerchantShop(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	shop, err := c.service.GetOwned(r.Context(), merchant.ID, chi.URLParam(r, "shopId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShop(shop))
}

func (c *Controller) HandleUpdateShop(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	var req dto.UpdateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	shop, err := c.service.UpdateShop(r.Context(), merchant.ID, chi.URLParam(r, "shopId"), req)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShop(shop))
}

func (c *Controller) HandleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	var req dto.ShopAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	shop, err := c.service.UpdateAvailability(r.Context(), merchant.ID, chi.URLParam(r, "shopId"),
		req.IsOpen, req.AcceptingOrders)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShop(shop))
}

// Admin handlers.

func (c *Controller) HandleListAllShops(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	shops, err := c.service.ListAll(r.Context())
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShops(shops))
}

func (c *Controller) HandleListPendingShops(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	shops, err := c.service.ListPendingApproval(r.Context())
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShops(shops))
}

func (c *Controller) HandleApproveShop(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ShopApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	shop, err := c.service.SetApprovalStatus(r.Context(), chi.URLParam(r, "shopId"),
		domain.ShopStatus(req.Status))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromShop(shop))
}

func validateCreateShop(req dto.CreateShopRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if req.Category == "" {
		details = append(details, apperrors.ValidationDetail{Field: "category", Message: "category is required"})
	}
	if req.Address == "" {
		details = append(details, apperrors.ValidationDetail{Field: "address", Message: "address is required"})
	}
	if req.City == "" {
		details = append(details, apperrors.ValidationDetail{Field: "city", Message: "city is required"})
	}
	if req.Phone == "" {
		details = append(details, apperrors.ValidationDetail{Field: "phone", Message: "phone is required"})
	}
	if req.DeliveryFee != nil && req.DeliveryFee.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "deliveryFee", Message: "deliveryFee must be non-negative"})
	}
	if req.MinimumOrder != nil && req.MinimumOrder.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "minimumOrder", Message: "minimumOrder must be non-negative"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
