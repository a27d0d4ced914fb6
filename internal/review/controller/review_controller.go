package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/auth"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
	"bazaar/internal/review/service"
	"bazaar/internal/web"
)

type Controller struct {
	service *service.ReviewService
	logger  *zap.Logger
}

func NewController(svc *service.ReviewService, logger *zap.Logger) *Controller {
	return &Controller{service: svc, logger: logger}
}

func (c *Controller) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	customer, _ := auth.UserFrom(r.Context())

	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	if req.OrderID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "orderId", Message: "orderId is required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		details = append(details, apperrors.ValidationDetail{Field: "rating", Message: "rating must be between 1 and 5"})
	}
	if len(details) > 0 {
		web.WriteValidationError(w, logger, traceID, "validation failed", details...)
		return
	}

	review, err := c.service.CreateReview(r.Context(), customer.ID, req)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusCreated, dto.FromReview(review))
}

func (c *Controller) HandleListShopReviews(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	reviews, err := c.service.ListShopReviews(r.Context(), chi.URLParam(r, "shopId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromReviews(reviews))
}

func (c *Controller) HandleListPendingReviews(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	reviews, err := c.service.ListPendingReviews(r.Context())
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromReviews(reviews))
}

func (c *Controller) HandleListAllReviews(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var approved *bool
	if raw := r.URL.Query().Get("isApproved"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			web.WriteValidationError(w, logger, traceID, "invalid moderation filter", apperrors.ValidationDetail{
				Field:   "isApproved",
				Message: "isApproved must be true or false",
			})
			return
		}
		approved = &value
	}

	reviews, err := c.service.ListAllReviews(r.Context(), approved)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromReviews(reviews))
}

func (c *Controller) HandleGetReview(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	review, err := c.service.GetReview(r.Context(), chi.URLParam(r, "reviewId"))
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromReview(review))
}

func (c *Controller) HandleModerateReview(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ModerateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	review, err := c.service.Moderate(r.Context(), chi.URLParam(r, "reviewId"), req.IsApproved)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromReview(review))
}
