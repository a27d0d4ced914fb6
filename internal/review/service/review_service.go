package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/dto"
	"bazaar/internal/errors"
)

type Repository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	FindByOrder(ctx context.Context, orderID string) (*domain.Review, error)
	FindApprovedByShop(ctx context.Context, shopID string) ([]domain.Review, error)
	FindPending(ctx context.Context) ([]domain.Review, error)
	FindAll(ctx context.Context) ([]domain.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
}

// OrderLookup supplies the order a review claims to be about, scoped to
// its owning customer.
type OrderLookup interface {
	GetCustomerOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error)
}

type ReviewService struct {
	repo   Repository
	orders OrderLookup
	logger *zap.Logger
}

func NewReviewService(repo Repository, orders OrderLookup, logger *zap.Logger) *ReviewService {
	return &ReviewService{repo: repo, orders: orders, logger: logger}
}

// CreateReview accepts a review only for a delivered order owned by the
// caller, one review per order. The verified flag records that gate.
func (s *ReviewService) CreateReview(ctx context.Context, customerID string, req dto.CreateReviewRequest) (*domain.Review, error) {
	order, err := s.orders.GetCustomerOrder(ctx, customerID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusDelivered {
		return nil, errors.NewConflictError(
			fmt.Sprintf("order %s has not been delivered yet", req.OrderID))
	}

	if _, err := s.repo.FindByOrder(ctx, req.OrderID); err == nil {
		return nil, errors.NewConflictError(
			fmt.Sprintf("order %s has already been reviewed", req.OrderID))
	} else if _, ok := errors.IsNotFoundError(err); !ok {
		return nil, err
	}

	shopID := order.ShopID
	review := &domain.Review{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		ShopID:     &shopID,
		ProductID:  req.ProductID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		IsVerified: true,
		IsApproved: false,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		zap.String("reviewId", review.ID),
		zap.String("orderId", req.OrderID),
		zap.Int("rating", req.Rating))
	return review, nil
}

func (s *ReviewService) ListShopReviews(ctx context.Context, shopID string) ([]domain.Review, error) {
	return s.repo.FindApprovedByShop(ctx, shopID)
}

func (s *ReviewService) ListPendingReviews(ctx context.Context) ([]domain.Review, error) {
	return s.repo.FindPending(ctx)
}

// ListAllReviews returns every review, optionally narrowed by moderation
// state. A nil filter means both approved and unapproved.
func (s *ReviewService) ListAllReviews(ctx context.Context, approved *bool) ([]domain.Review, error) {
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if approved == nil {
		return reviews, nil
	}

	filtered := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.IsApproved == *approved {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (s *ReviewService) GetReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	return s.repo.FindByID(ctx, reviewID)
}

// Moderate flips only the approved flag; the review text is immutable.
func (s *ReviewService) Moderate(ctx context.Context, reviewID string, approved bool) (*domain.Review, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.IsApproved == approved {
		return review, nil
	}

	if err := s.repo.SetApproved(ctx, reviewID, approved); err != nil {
		return nil, err
	}
	review.IsApproved = approved
	return review, nil
}
