package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"bazaar/internal/auth/google"
	"bazaar/internal/auth/memory"
	"bazaar/internal/auth/repository"
	"bazaar/internal/config"
	"bazaar/internal/domain"
)

type Module struct {
	Controller *Controller
	Service    *Service
}

// NewModule wires the sign-in flow for one service audience. Role is
// the role this binary serves and grants on first sign-in.
func NewModule(db *sql.DB, driver string, users UserRepository, cfg config.AuthConfig, role domain.Role, logger *zap.Logger) *Module {
	var sessions SessionRepository
	if driver == config.StoreDriverMySQL {
		sessions = repository.NewMySQLSessionRepository(db)
	} else {
		sessions = memory.NewSessionRepository()
	}

	verifier := google.NewClient(cfg.GoogleUserInfoURL)
	svc := NewService(verifier, users, sessions, cfg.SessionTTL, logger)
	return &Module{
		Controller: NewController(svc, role, logger),
		Service:    svc,
	}
}
