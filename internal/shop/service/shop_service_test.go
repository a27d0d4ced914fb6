package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
)

type mockShopRepository struct {
	CreateFunc         func(ctx context.Context, shop *domain.Shop) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.Shop, error)
	FindByMerchantFunc func(ctx context.Context, merchantID string) ([]domain.Shop, error)
	FindByStatusFunc   func(ctx context.Context, status domain.ShopStatus) ([]domain.Shop, error)
	FindApprovedFunc   func(ctx context.Context, category string) ([]domain.Shop, error)
	FindAllFunc        func(ctx context.Context) ([]domain.Shop, error)
	UpdateFunc         func(ctx context.Context, shop *domain.Shop) error
}

func (m *mockShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, shop)
	}
	return nil
}

func (m *mockShopRepository) FindByID(ctx context.Context, id string) (*domain.Shop, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockShopRepository) FindByMerchant(ctx context.Context, merchantID string) ([]domain.Shop, error) {
	return m.FindByMerchantFunc(ctx, merchantID)
}

func (m *mockShopRepository) FindByStatus(ctx context.Context, status domain.ShopStatus) ([]domain.Shop, error) {
	return m.FindByStatusFunc(ctx, status)
}

func (m *mockShopRepository) FindApproved(ctx context.Context, category string) ([]domain.Shop, error) {
	return m.FindApprovedFunc(ctx, category)
}

func (m *mockShopRepository) FindAll(ctx context.Context) ([]domain.Shop, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockShopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, shop)
	}
	return nil
}

func newTestShopService(repo Repository) *ShopService {
	return NewShopService(repo, zap.NewNop())
}

func TestBrowseApproved_SearchFiltersByName(t *testing.T) {
	repo := &mockShopRepository{FindApprovedFunc: func(_ context.Context, _ string) ([]domain.Shop, error) {
		return []domain.Shop{
			{ID: "s1", Name: "Corner Grocery"},
			{ID: "s2", Name: "Fresh Bakery"},
			{ID: "s3", Name: "Grocery Express"},
		}, nil
	}}

	shops, err := newTestShopService(repo).BrowseApproved(context.Background(), "", "grocery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shops) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(shops))
	}
	if shops[0].ID != "s1" || shops[1].ID != "s3" {
		t.Errorf("search must be case-insensitive over names, got %v", shops)
	}
}

func TestGetApproved_HidesNonApprovedShops(t *testing.T) {
	for _, status := range []domain.ShopStatus{
		domain.ShopStatusPendingApproval,
		domain.ShopStatusRejected,
		domain.ShopStatusSuspended,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &mockShopRepository{FindByIDFunc: func(_ context.Context, id string) (*domain.Shop, error) {
				return &domain.Shop{ID: id, Status: status}, nil
			}}

			_, err := newTestShopService(repo).GetApproved(context.Background(), "s1")
			if _, ok := apperrors.IsNotFoundError(err); !ok {
				t.Fatalf("expected NotFoundError for %s shop, got %v", status, err)
			}
		})
	}
}

func TestCreateShop_StartsPendingAndOrderable(t *testing.T) {
	var created *domain.Shop
	repo := &mockShopRepository{CreateFunc: func(_ context.Context, shop *domain.Shop) error {
		created = shop
		return nil
	}}

	fee := decimal.RequireFromString("50")
	shop, err := newTestShopService(repo).CreateShop(context.Background(), "merchant-1", dto.CreateShopRequest{
		Name:        "Corner Store",
		Category:    "grocery",
		Address:     "42 Main Street",
		City:        "Pune",
		Phone:       "+911234567890",
		DeliveryFee: &fee,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if shop.Status != domain.ShopStatusPendingApproval {
		t.Errorf("new shops must await approval, got %s", shop.Status)
	}
	if !shop.IsOpen || !shop.AcceptingOrders {
		t.Error("new shops start open and accepting")
	}
	if shop.Orderable() {
		t.Error("a pending shop must not be orderable")
	}
	if !shop.DeliveryFee.Equal(fee) {
		t.Errorf("expected delivery fee 50, got %s", shop.DeliveryFee)
	}
	if created == nil || created.ID == "" {
		t.Error("the shop must be persisted with a generated id")
	}
}

func TestGetOwned_RejectsForeignMerchant(t *testing.T) {
	repo := &mockShopRepository{FindByIDFunc: func(_ context.Context, id string) (*domain.Shop, error) {
		return &domain.Shop{ID: id, MerchantID: "merchant-1"}, nil
	}}

	_, err := newTestShopService(repo).GetOwned(context.Background(), "merchant-2", "s1")
	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestUpdateShop_MergesOnlyProvidedFields(t *testing.T) {
	stored := &domain.Shop{
		ID:         "s1",
		MerchantID: "merchant-1",
		Name:       "Corner Store",
		City:       "Pune",
		Category:   "grocery",
	}
	repo := &mockShopRepository{FindByIDFunc: func(_ context.Context, _ string) (*domain.Shop, error) {
		return stored, nil
	}}

	name := "Corner Store 2.0"
	shop, err := newTestShopService(repo).UpdateShop(context.Background(), "merchant-1", "s1",
		dto.UpdateShopRequest{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.Name != name {
		t.Errorf("expected updated name, got %s", shop.Name)
	}
	if shop.City != "Pune" || shop.Category != "grocery" {
		t.Error("omitted fields must keep their stored values")
	}
}

func TestUpdateAvailability_ClosingStopsOrders(t *testing.T) {
	repo := &mockShopRepository{FindByIDFunc: func(_ context.Context, id string) (*domain.Shop, error) {
		return &domain.Shop{
			ID: id, MerchantID: "merchant-1",
			Status: domain.ShopStatusApproved, IsOpen: true, AcceptingOrders: true,
		}, nil
	}}

	shop, err := newTestShopService(repo).UpdateAvailability(context.Background(), "merchant-1", "s1", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.Orderable() {
		t.Error("a shop that stopped accepting orders must not be orderable")
	}
}

func TestSetApprovalStatus_RejectsUnknownStatus(t *testing.T) {
	svc := newTestShopService(&mockShopRepository{})

	_, err := svc.SetApprovalStatus(context.Background(), "s1", "published")
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSetApprovalStatus_ApprovalSticks(t *testing.T) {
	var updated *domain.Shop
	repo := &mockShopRepository{
		FindByIDFunc: func(_ context.Context, id string) (*domain.Shop, error) {
			return &domain.Shop{ID: id, Status: domain.ShopStatusPendingApproval, AcceptingOrders: true}, nil
		},
		UpdateFunc: func(_ context.Context, shop *domain.Shop) error {
			updated = shop
			return nil
		},
	}

	shop, err := newTestShopService(repo).SetApprovalStatus(context.Background(), "s1", domain.ShopStatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.Status != domain.ShopStatusApproved {
		t.Error("the approval must reach the store")
	}
	if !shop.Orderable() {
		t.Error("an approved accepting shop must be orderable")
	}
}
