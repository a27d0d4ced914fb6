package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	return &user, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("user %s already exists", user.ID))
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role domain.Role) error {
	return r.mutate(id, func(u *domain.User) {
		u.Role = role
	})
}

func (r *UserRepository) UpdateStatus(_ context.Context, id string, isActive bool) error {
	return r.mutate(id, func(u *domain.User) {
		u.IsActive = isActive
	})
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, name, phone, profileImage *string) error {
	return r.mutate(id, func(u *domain.User) {
		if name != nil {
			u.Name = *name
		}
		if phone != nil {
			u.Phone = phone
		}
		if profileImage != nil {
			u.ProfileImage = profileImage
		}
	})
}

func (r *UserRepository) mutate(id string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	fn(&user)
	user.UpdatedAt = time.Now().UTC()
	r.users[id] = user
	return nil
}
