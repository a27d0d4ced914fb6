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

type ShopRepository struct {
	mu    sync.RWMutex
	shops map[string]domain.Shop
}

func NewShopRepository() *ShopRepository {
	return &ShopRepository{shops: make(map[string]domain.Shop)}
}

func (r *ShopRepository) Create(_ context.Context, shop *domain.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shops[shop.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("shop %s already exists", shop.ID))
	}
	r.shops[shop.ID] = *shop
	return nil
}

func (r *ShopRepository) FindByID(_ context.Context, id string) (*domain.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shop, ok := r.shops[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("shop %s not found", id))
	}
	return &shop, nil
}

func (r *ShopRepository) FindByMerchant(_ context.Context, merchantID string) ([]domain.Shop, error) {
	return r.filter(func(s domain.Shop) bool { return s.MerchantID == merchantID }), nil
}

func (r *ShopRepository) FindByStatus(_ context.Context, status domain.ShopStatus) ([]domain.Shop, error) {
	return r.filter(func(s domain.Shop) bool { return s.Status == status }), nil
}

func (r *ShopRepository) FindApproved(_ context.Context, category string) ([]domain.Shop, error) {
	return r.filter(func(s domain.Shop) bool {
		if s.Status != domain.ShopStatusApproved {
			return false
		}
		return category == "" || s.Category == category
	}), nil
}

func (r *ShopRepository) FindAll(_ context.Context) ([]domain.Shop, error) {
	return r.filter(func(domain.Shop) bool { return true }), nil
}

func (r *ShopRepository) Update(_ context.Context, shop *domain.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shops[shop.ID]; !ok {
		return errors.NewNotFoundError(fmt.Sprintf("shop %s not found", shop.ID))
	}
	updated := *shop
	updated.UpdatedAt = time.Now().UTC()
	r.shops[shop.ID] = updated
	return nil
}

func (r *ShopRepository) filter(keep func(domain.Shop) bool) []domain.Shop {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var shops []domain.Shop
	for _, s := range r.shops {
		if keep(s) {
			shops = append(shops, s)
		}
	}
	sort.Slice(shops, func(i, j int) bool { return shops[i].CreatedAt.After(shops[j].CreatedAt) })
	return shops
}
