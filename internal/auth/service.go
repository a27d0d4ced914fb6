package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	apperrors "bazaar/internal/errors"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type Service struct {
	verifier    IdentityVerifier
	userRepo    UserRepository
	sessionRepo SessionRepository
	sessionTTL  time.Duration
	logger      *zap.Logger
}

func NewService(
	verifier IdentityVerifier,
	userRepo UserRepository,
	sessionRepo SessionRepository,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		verifier:    verifier,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// SignIn verifies the provider token, creates the user on first sign-in
// with the audience's role, and issues an opaque session token. A user
// signing in through a different audience gets their role updated, as
// the original merchant and admin onboarding flows do.
func (s *Service) SignIn(ctx context.Context, accessToken string, role domain.Role) (string, *domain.User, error) {
	identity, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		if _, ok := apperrors.IsUnauthorizedError(err); ok {
			return "", nil, err
		}
		return "", nil, apperrors.NewUnauthorizedError("identity verification failed")
	}

	user, err := s.userRepo.FindByID(ctx, identity.ID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			return "", nil, err
		}
		now := time.Now().UTC()
		user = &domain.User{
			ID:           identity.ID,
			Email:        identity.Email,
			Name:         identity.Name,
			Role:         role,
			ProfileImage: identity.Picture,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, err
		}
		s.logger.Info("user created", zap.String("userId", user.ID), zap.String("role", string(role)))
	} else if user.Role != role && role != domain.RoleCustomer {
		if err := s.userRepo.UpdateRole(ctx, user.ID, role); err != nil {
			return "", nil, err
		}
		user.Role = role
	}

	if !user.IsActive {
		return "", nil, apperrors.NewForbiddenError("account is deactivated")
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, err
	}

	return session.Token, user, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("missing bearer token")
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthorizedError("invalid token")
		}
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		// Best-effort cleanup; an expired row left behind is harmless.
		_ = s.sessionRepo.Delete(ctx, session.Token)
		return nil, apperrors.NewUnauthorizedError("token has expired")
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthorizedError("invalid token")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("account is deactivated")
	}

	return user, nil
}
