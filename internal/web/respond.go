package web

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
)

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, traceID, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, logger, http.StatusBadRequest, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    http.StatusBadRequest,
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// WriteError maps a typed error to its HTTP status and body. Unknown
// errors become a 500 with a generic message so internals never leak.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	message := "an unexpected error occurred"
	var details interface{}

	switch {
	case isValidation(err):
		ve, _ := apperrors.IsValidationError(err)
		WriteValidationError(w, logger, traceID, ve.Message, ve.Details...)
		return
	case isNotFound(err):
		status, code, message = http.StatusNotFound, "NOT_FOUND", err.Error()
	case isUnauthorized(err):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case isForbidden(err):
		status, code, message = http.StatusForbidden, "FORBIDDEN", err.Error()
	case isConflict(err):
		status, code, message = http.StatusConflict, "CONFLICT", err.Error()
	case isDeadlock(err):
		status, code, message = http.StatusConflict, "DEADLOCK", err.Error()
	default:
		if se, ok := apperrors.IsShopUnavailableError(err); ok {
			status, code, message = http.StatusConflict, "SHOP_UNAVAILABLE", se.Error()
		} else if _, ok := apperrors.IsEmptyCartError(err); ok {
			status, code, message = http.StatusBadRequest, "EMPTY_CART", err.Error()
		} else if ie, ok := apperrors.IsItemNotFoundError(err); ok {
			status, code, message = http.StatusNotFound, "ITEM_NOT_FOUND", ie.Error()
			details = dto.ItemErrorDetails{ProductID: ie.ProductID, VariantID: ie.VariantID}
		} else if qe, ok := apperrors.IsInvalidQuantityError(err); ok {
			status, code, message = http.StatusBadRequest, "INVALID_QUANTITY", qe.Error()
			details = dto.QuantityErrorDetails{ProductID: qe.ProductID, Quantity: qe.Quantity}
		} else if se, ok := apperrors.IsInsufficientStockError(err); ok {
			status, code, message = http.StatusConflict, "INSUFFICIENT_STOCK", se.Error()
			details = dto.StockErrorDetails{
				ProductName: se.ProductName,
				Requested:   se.Requested,
				Available:   se.Available,
			}
		} else if _, ok := apperrors.IsPersistenceError(err); ok {
			status, code, message = http.StatusServiceUnavailable, "PERSISTENCE_FAILURE", "order could not be persisted, please retry"
			logger.Error("persistence failure", zap.String("traceId", traceID), zap.Error(err))
		} else {
			logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
		}
	}

	WriteJSON(w, logger, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

func isValidation(err error) bool {
	_, ok := apperrors.IsValidationError(err)
	return ok
}

func isNotFound(err error) bool {
	_, ok := apperrors.IsNotFoundError(err)
	return ok
}

func isUnauthorized(err error) bool {
	_, ok := apperrors.IsUnauthorizedError(err)
	return ok
}

func isForbidden(err error) bool {
	_, ok := apperrors.IsForbiddenError(err)
	return ok
}

func isConflict(err error) bool {
	_, ok := apperrors.IsConflictError(err)
	return ok
}

func isDeadlock(err error) bool {
	_, ok := apperrors.IsDeadlockError(err)
	return ok
}
