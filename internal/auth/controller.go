package auth

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
	"bazaar/internal/web"
)

type Controller struct {
	service *Service
	role    domain.Role
	logger  *zap.Logger
}

// NewController builds the sign-in handler for one audience; the role
// is what a first-time user is created with.
func NewController(service *Service, role domain.Role, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		role:    role,
		logger:  logger,
	}
}

func (c *Controller) HandleGoogleSignIn(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.AccessToken == "" {
		web.WriteValidationError(w, logger, traceID, "accessToken is required", apperrors.ValidationDetail{
			Field:   "accessToken",
			Message: "accessToken must not be empty",
		})
		return
	}

	token, user, err := c.service.SignIn(r.Context(), req.AccessToken, c.role)
	if err != nil {
		logger.Warn("sign-in failed", zap.Error(err))
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.FromUser(user),
	})
}
