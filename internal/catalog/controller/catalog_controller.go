package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/auth"
	"bazaar/internal/catalog/service"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
	"bazaar/internal/web"
)

type Controller struct {
	service *service.CatalogService
	logger  *zap.Logger
}

func NewController(svc *service.CatalogService, logger *zap.Logger) *Controller {
	return &Controller{service: svc, logger: logger}
}

// Customer handlers.

func (c *Controller) HandleBrowseProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	products, err := c.service.BrowseProducts(r.Context(), chi.URLParam(r, "shopId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromProducts(products))
}

func (c *Controller) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	product, err := c.service.GetProduct(r.Context(),
		chi.URLParam(r, "shopId"), chi.URLParam(r, "productId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromProduct(product))
}

// Merchant handlers.

func (c *Controller) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCreateProduct(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		web.WriteValidationError(w, logger, traceID, ve.Message, ve.Details...)
		return
	}

	product, err := c.service.CreateProduct(r.Context(), merchant.ID, chi.URLParam(r, "shopId"), req)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusCreated, dto.FromProduct(product))
}

func (c *Controller) HandleListShopProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	products, err := c.service.ListShopProducts(r.Context(), merchant.ID, chi.URLParam(r, "shopId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromProducts(products))
}

func (c *Controller) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	product, err := c.service.UpdateProduct(r.Context(), merchant.ID,
		chi.URLParam(r, "shopId"), chi.URLParam(r, "productId"), req)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromProduct(product))
}

func (c *Controller) HandleAddVariant(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	var req dto.CreateVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if details := validateVariant(req, ""); len(details) > 0 {
		web.WriteValidationError(w, logger, traceID, "validation failed", details...)
		return
	}

	product, err := c.service.AddVariant(r.Context(), merchant.ID,
		chi.URLParam(r, "shopId"), chi.URLParam(r, "productId"), req)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusCreated, dto.FromProduct(product))
}

func (c *Controller) HandleUpdateVariant(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	merchant, _ := auth.UserFrom(r.Context())

	var req dto.UpdateVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	product, err := c.service.UpdateVariant(r.Context(), merchant.ID,
		chi.URLParam(r, "shopId"), chi.URLParam(r, "productId"), chi.URLParam(r, "variantId"), req)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromProduct(product))
}

func validateCreateProduct(req dto.CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if req.Category == "" {
		details = append(details, apperrors.ValidationDetail{Field: "category", Message: "category is required"})
	}
	if len(req.Variants) == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "variants", Message: "at least one variant is required"})
	}
	for i, v := range req.Variants {
		details = append(details, validateVariant(v, fmt.Sprintf("variants[%d].", i))...)
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateVariant(v dto.CreateVariantRequest, prefix string) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if v.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: prefix + "name", Message: "name is required"})
	}
	if v.SKU == "" {
		details = append(details, apperrors.ValidationDetail{Field: prefix + "sku", Message: "sku is required"})
	}
	if !v.SellingPrice.IsPositive() {
		details = append(details, apperrors.ValidationDetail{Field: prefix + "sellingPrice", Message: "sellingPrice must be positive"})
	}
	if !v.MRP.IsPositive() {
		details = append(details, apperrors.ValidationDetail{Field: prefix + "mrp", Message: "mrp must be positive"})
	}
	if v.SellingPrice.GreaterThan(v.MRP) {
		details = append(details, apperrors.ValidationDetail{Field: prefix + "sellingPrice", Message: "sellingPrice cannot exceed mrp"})
	}
	if v.StockQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{Field: prefix + "stockQuantity", Message: "stockQuantity must be non-negative"})
	}
	return details
}
