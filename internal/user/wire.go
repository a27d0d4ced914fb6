package user

import (
	"context"
	"database/sql"

	"bazaar/internal/config"
	"bazaar/internal/domain"
	"bazaar/internal/user/memory"
	"bazaar/internal/user/repository"
)

// Store is the full user persistence surface. The controller and the
// auth service each consume their own slice of it.
type Store interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateStatus(ctx context.Context, id string, isActive bool) error
	UpdateProfile(ctx context.Context, id string, name, phone, profileImage *string) error
}

func NewStore(db *sql.DB, driver string) Store {
	if driver == config.StoreDriverMySQL {
		return repository.NewMySQLUserRepository(db)
	}
	return memory.NewUserRepository()
}
