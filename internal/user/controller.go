package user

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/auth"
	"bazaar/internal/domain"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
	"bazaar/internal/web"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateStatus(ctx context.Context, id string, isActive bool) error
	UpdateProfile(ctx context.Context, id string, name, phone, profileImage *string) error
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

// HandleGetProfile returns the authenticated caller's own record.
func (c *Controller) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	current, _ := auth.UserFrom(r.Context())
	web.WriteJSON(w, c.logger, http.StatusOK, dto.FromUser(current))
}

func (c *Controller) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	current, _ := auth.UserFrom(r.Context())

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.repo.UpdateProfile(r.Context(), current.ID, req.Name, req.Phone, req.ProfileImage); err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	updated, err := c.repo.FindByID(r.Context(), current.ID)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromUser(updated))
}

// Admin handlers.

func (c *Controller) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	users, err := c.repo.FindAll(r.Context())
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	web.WriteJSON(w, logger, http.StatusOK, dto.FromUsers(users))
}

func (c *Controller) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	c.writeUser(w, r, logger, traceID, chi.URLParam(r, "userId"))
}

func (c *Controller) HandleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	userID := chi.URLParam(r, "userId")

	var req dto.UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	role := domain.Role(req.Role)
	if !role.Valid() {
		web.WriteValidationError(w, logger, traceID, "invalid role", apperrors.ValidationDetail{
			Field:   "role",
			Message: "role must be one of customer, merchant, admin",
		})
		return
	}

	if err := c.repo.UpdateRole(r.Context(), userID, role); err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	logger.Info("user role updated", zap.String("userId", userID), zap.String("role", req.Role))
	c.writeUser(w, r, logger, traceID, userID)
}

func (c *Controller) HandleUpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	userID := chi.URLParam(r, "userId")

	var req dto.UpdateUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.repo.UpdateStatus(r.Context(), userID, req.IsActive); err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}

	logger.Info("user status updated", zap.String("userId", userID), zap.Bool("isActive", req.IsActive))
	c.writeUser(w, r, logger, traceID, userID)
}

func (c *Controller) writeUser(w http.ResponseWriter, r *http.Request, logger *zap.Logger, traceID, userID string) {
	user, err := c.repo.FindByID(r.Context(), userID)
	if err != nil {
		web.WriteError(w, logger, traceID, err)
		return
	}
	web.WriteJSON(w, logger, http.StatusOK, dto.FromUser(user))
}
