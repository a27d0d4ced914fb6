package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
)

type mockReviewRepository struct {
	CreateFunc      func(ctx context.Context, review *domain.Review) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Review, error)
	FindByOrderFunc func(ctx context.Context, orderID string) (*domain.Review, error)
	FindAllFunc     func(ctx context.Context) ([]domain.Review, error)
	SetApprovedFunc func(ctx context.Context, id string, approved bool) error
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, review)
	}
	return nil
}

func (m *mockReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockReviewRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Review, error) {
	if m.FindByOrderFunc != nil {
		return m.FindByOrderFunc(ctx, orderID)
	}
	return nil, apperrors.NewNotFoundError("no review for order " + orderID)
}

func (m *mockReviewRepository) FindApprovedByShop(ctx context.Context, shopID string) ([]domain.Review, error) {
	return nil, nil
}

func (m *mockReviewRepository) FindPending(ctx context.Context) ([]domain.Review, error) {
	return nil, nil
}

func (m *mockReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockReviewRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	if m.SetApprovedFunc != nil {
		return m.SetApprovedFunc(ctx, id, approved)
	}
	return nil
}

type mockOrderLookup struct {
	GetCustomerOrderFunc func(ctx context.Context, customerID, orderID string) (*domain.Order, error)
}

func (m *mockOrderLookup) GetCustomerOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	return m.GetCustomerOrderFunc(ctx, customerID, orderID)
}

func deliveredOrderLookup() *mockOrderLookup {
	return &mockOrderLookup{GetCustomerOrderFunc: func(_ context.Context, customerID, orderID string) (*domain.Order, error) {
		return &domain.Order{
			ID:         orderID,
			CustomerID: customerID,
			ShopID:     "shop-1",
			Status:     domain.OrderStatusDelivered,
		}, nil
	}}
}

func newTestReviewService(repo Repository, orders OrderLookup) *ReviewService {
	return NewReviewService(repo, orders, zap.NewNop())
}

func TestCreateReview_RequiresDeliveredOrder(t *testing.T) {
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusPreparing,
		domain.OrderStatusOutForDelivery,
		domain.OrderStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			orders := &mockOrderLookup{GetCustomerOrderFunc: func(_ context.Context, customerID, orderID string) (*domain.Order, error) {
				return &domain.Order{ID: orderID, CustomerID: customerID, Status: status}, nil
			}}

			svc := newTestReviewService(&mockReviewRepository{}, orders)
			_, err := svc.CreateReview(context.Background(), "customer-1",
				dto.CreateReviewRequest{OrderID: "ORD11111111", Rating: 5})

			if _, ok := apperrors.IsConflictError(err); !ok {
				t.Fatalf("expected ConflictError for %s order, got %v", status, err)
			}
		})
	}
}

func TestCreateReview_OnePerOrder(t *testing.T) {
	repo := &mockReviewRepository{FindByOrderFunc: func(_ context.Context, orderID string) (*domain.Review, error) {
		return &domain.Review{ID: "r1", OrderID: orderID}, nil
	}}

	svc := newTestReviewService(repo, deliveredOrderLookup())
	_, err := svc.CreateReview(context.Background(), "customer-1",
		dto.CreateReviewRequest{OrderID: "ORD11111111", Rating: 4})

	if _, ok := apperrors.IsConflictError(err); !ok {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestCreateReview_ForeignOrderReadsAsAbsent(t *testing.T) {
	orders := &mockOrderLookup{GetCustomerOrderFunc: func(_ context.Context, _, orderID string) (*domain.Order, error) {
		return nil, apperrors.NewNotFoundError("order " + orderID + " not found")
	}}

	svc := newTestReviewService(&mockReviewRepository{}, orders)
	_, err := svc.CreateReview(context.Background(), "customer-1",
		dto.CreateReviewRequest{OrderID: "ORD11111111", Rating: 4})

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCreateReview_StartsVerifiedUnapproved(t *testing.T) {
	var created *domain.Review
	repo := &mockReviewRepository{CreateFunc: func(_ context.Context, review *domain.Review) error {
		created = review
		return nil
	}}

	svc := newTestReviewService(repo, deliveredOrderLookup())
	review, err := svc.CreateReview(context.Background(), "customer-1",
		dto.CreateReviewRequest{OrderID: "ORD11111111", Rating: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("review must be persisted")
	}
	if !review.IsVerified {
		t.Error("reviews gated on a delivered order are verified")
	}
	if review.IsApproved {
		t.Error("new reviews await moderation")
	}
	if review.ShopID == nil || *review.ShopID != "shop-1" {
		t.Error("the review must be attributed to the order's shop")
	}
}

func TestListAllReviews_ModerationFilter(t *testing.T) {
	repo := &mockReviewRepository{FindAllFunc: func(context.Context) ([]domain.Review, error) {
		return []domain.Review{
			{ID: "r1", IsApproved: true},
			{ID: "r2", IsApproved: false},
			{ID: "r3", IsApproved: true},
		}, nil
	}}
	svc := newTestReviewService(repo, deliveredOrderLookup())

	all, err := svc.ListAllReviews(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected every review without a filter, got %d", len(all))
	}

	approved := true
	got, err := svc.ListAllReviews(context.Background(), &approved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r3" {
		t.Errorf("expected the approved reviews, got %v", got)
	}

	approved = false
	got, err = svc.ListAllReviews(context.Background(), &approved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r2" {
		t.Errorf("expected the unapproved review, got %v", got)
	}
}

func TestGetReview_NotFound(t *testing.T) {
	repo := &mockReviewRepository{FindByIDFunc: func(_ context.Context, id string) (*domain.Review, error) {
		return nil, apperrors.NewNotFoundError("review " + id + " not found")
	}}

	svc := newTestReviewService(repo, deliveredOrderLookup())
	_, err := svc.GetReview(context.Background(), "r-missing")

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestModerate_FlipsOnlyTheFlag(t *testing.T) {
	stored := &domain.Review{ID: "r1", Comment: strPtr("great value"), IsApproved: false}
	var setCalled bool
	repo := &mockReviewRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*domain.Review, error) { return stored, nil },
		SetApprovedFunc: func(_ context.Context, _ string, approved bool) error {
			setCalled = true
			if !approved {
				t.Error("expected approval")
			}
			return nil
		},
	}

	svc := newTestReviewService(repo, deliveredOrderLookup())
	review, err := svc.Moderate(context.Background(), "r1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !setCalled {
		t.Error("the flag change must reach the store")
	}
	if !review.IsApproved {
		t.Error("the returned review must be approved")
	}
	if review.Comment == nil || *review.Comment != "great value" {
		t.Error("moderation must not touch the review text")
	}
}

func TestModerate_NoopWhenUnchanged(t *testing.T) {
	repo := &mockReviewRepository{
		FindByIDFunc: func(_ context.Context, id string) (*domain.Review, error) {
			return &domain.Review{ID: id, IsApproved: true}, nil
		},
		SetApprovedFunc: func(context.Context, string, bool) error {
			t.Error("an unchanged flag must not hit the store")
			return nil
		},
	}

	svc := newTestReviewService(repo, deliveredOrderLookup())
	review, err := svc.Moderate(context.Background(), "r1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !review.IsApproved {
		t.Error("expected the stored state back")
	}
}

func strPtr(s string) *string { return &s }
