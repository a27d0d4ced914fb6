package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]domain.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[string]domain.Review)}
}

func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reviews[review.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("review %s already exists", review.ID))
	}
	r.reviews[review.ID] = *review
	return nil
}

func (r *ReviewRepository) FindByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("review %s not found", id))
	}
	return &review, nil
}

func (r *ReviewRepository) FindByOrder(_ context.Context, orderID string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, review := range r.reviews {
		if review.OrderID == orderID {
			out := review
			return &out, nil
		}
	}
	return nil, errors.NewNotFoundError(fmt.Sprintf("no review for order %s", orderID))
}

func (r *ReviewRepository) FindApprovedByShop(_ context.Context, shopID string) ([]domain.Review, error) {
	return r.filter(func(rv domain.Review) bool {
		return rv.IsApproved && rv.ShopID != nil && *rv.ShopID == shopID
	}), nil
}

func (r *ReviewRepository) FindPending(_ context.Context) ([]domain.Review, error) {
	return r.filter(func(rv domain.Review) bool { return !rv.IsApproved }), nil
}

func (r *ReviewRepository) FindAll(_ context.Context) ([]domain.Review, error) {
	return r.filter(func(domain.Review) bool { return true }), nil
}

func (r *ReviewRepository) SetApproved(_ context.Context, id string, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("review %s not found", id))
	}
	review.IsApproved = approved
	r.reviews[id] = review
	return nil
}

func (r *ReviewRepository) filter(keep func(domain.Review) bool) []domain.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []domain.Review
	for _, rv := range r.reviews {
		if keep(rv) {
			reviews = append(reviews, rv)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews
}
