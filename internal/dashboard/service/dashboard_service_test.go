package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bazaar/internal/domain"
)

type mockShopRepository struct {
	FindByMerchantFunc func(ctx context.Context, merchantID string) ([]domain.Shop, error)
	FindByStatusFunc   func(ctx context.Context, status domain.ShopStatus) ([]domain.Shop, error)
	FindAllFunc        func(ctx context.Context) ([]domain.Shop, error)
}

func (m *mockShopRepository) FindByMerchant(ctx context.Context, merchantID string) ([]domain.Shop, error) {
	return m.FindByMerchantFunc(ctx, merchantID)
}

func (m *mockShopRepository) FindByStatus(ctx context.Context, status domain.ShopStatus) ([]domain.Shop, error) {
	return m.FindByStatusFunc(ctx, status)
}

func (m *mockShopRepository) FindAll(ctx context.Context) ([]domain.Shop, error) {
	return m.FindAllFunc(ctx)
}

type mockOrderRepository struct {
	FindByShopFunc func(ctx context.Context, shopID string, status domain.OrderStatus) ([]domain.Order, error)
	FindAllFunc    func(ctx context.Context) ([]domain.Order, error)
}

func (m *mockOrderRepository) FindByShop(ctx context.Context, shopID string, status domain.OrderStatus) ([]domain.Order, error) {
	return m.FindByShopFunc(ctx, shopID, status)
}

func (m *mockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return m.FindAllFunc(ctx)
}

type mockUserRepository struct {
	FindAllFunc func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return m.FindAllFunc(ctx)
}

type mockReviewRepository struct {
	FindPendingFunc func(ctx context.Context) ([]domain.Review, error)
	FindAllFunc     func(ctx context.Context) ([]domain.Review, error)
}

func (m *mockReviewRepository) FindPending(ctx context.Context) ([]domain.Review, error) {
	return m.FindPendingFunc(ctx)
}

func (m *mockReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	return m.FindAllFunc(ctx)
}

func orderAt(id string, status domain.OrderStatus, total string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:          id,
		Status:      status,
		TotalAmount: decimal.RequireFromString(total),
		Subtotal:    decimal.RequireFromString(total),
		DeliveryFee: decimal.Zero,
		CreatedAt:   createdAt,
	}
}

func TestMerchantDashboard_RevenueCountsDeliveredOnly(t *testing.T) {
	now := time.Now().UTC()
	shops := &mockShopRepository{FindByMerchantFunc: func(_ context.Context, _ string) ([]domain.Shop, error) {
		return []domain.Shop{{ID: "s1", MerchantID: "merchant-1"}}, nil
	}}
	orders := &mockOrderRepository{FindByShopFunc: func(_ context.Context, _ string, _ domain.OrderStatus) ([]domain.Order, error) {
		return []domain.Order{
			orderAt("o1", domain.OrderStatusDelivered, "350", now),
			orderAt("o2", domain.OrderStatusDelivered, "120", now.Add(-time.Hour)),
			orderAt("o3", domain.OrderStatusPending, "900", now.Add(-2*time.Hour)),
			orderAt("o4", domain.OrderStatusCancelled, "400", now.Add(-3*time.Hour)),
		}, nil
	}}

	svc := NewDashboardService(shops, orders, nil, nil, zap.NewNop())
	resp, err := svc.MerchantDashboard(context.Background(), "merchant-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.Statistics.TotalRevenue.Equal(decimal.RequireFromString("470")) {
		t.Errorf("expected revenue 470 from delivered orders, got %s", resp.Statistics.TotalRevenue)
	}
	if resp.Statistics.TotalOrders != 4 || resp.Statistics.PendingOrders != 1 {
		t.Errorf("unexpected counts: %+v", resp.Statistics)
	}
	if resp.Statistics.TotalShops != 1 {
		t.Errorf("expected 1 shop, got %d", resp.Statistics.TotalShops)
	}
}

func TestMerchantDashboard_RecentOrdersNewestFirstCapped(t *testing.T) {
	now := time.Now().UTC()
	shops := &mockShopRepository{FindByMerchantFunc: func(_ context.Context, _ string) ([]domain.Shop, error) {
		return []domain.Shop{{ID: "s1"}}, nil
	}}
	orders := &mockOrderRepository{FindByShopFunc: func(_ context.Context, _ string, _ domain.OrderStatus) ([]domain.Order, error) {
		var out []domain.Order
		for i := 0; i < 15; i++ {
			out = append(out, orderAt(
				fmt.Sprintf("o%02d", i),
				domain.OrderStatusPending,
				"10",
				now.Add(-time.Duration(i)*time.Minute)))
		}
		return out, nil
	}}

	svc := NewDashboardService(shops, orders, nil, nil, zap.NewNop())
	resp, err := svc.MerchantDashboard(context.Background(), "merchant-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.RecentOrders) != recentOrderLimit {
		t.Fatalf("expected %d recent orders, got %d", recentOrderLimit, len(resp.RecentOrders))
	}
	if resp.RecentOrders[0].ID != "o00" {
		t.Errorf("expected the newest order first, got %s", resp.RecentOrders[0].ID)
	}
}

func TestAdminDashboard_CountsEverything(t *testing.T) {
	now := time.Now().UTC()
	shops := &mockShopRepository{
		FindAllFunc: func(context.Context) ([]domain.Shop, error) {
			return []domain.Shop{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}, nil
		},
		FindByStatusFunc: func(_ context.Context, status domain.ShopStatus) ([]domain.Shop, error) {
			if status != domain.ShopStatusPendingApproval {
				t.Errorf("expected a pending-approval query, got %s", status)
			}
			return []domain.Shop{{ID: "s3"}}, nil
		},
	}
	orders := &mockOrderRepository{FindAllFunc: func(context.Context) ([]domain.Order, error) {
		return []domain.Order{
			orderAt("o1", domain.OrderStatusDelivered, "200", now),
			orderAt("o2", domain.OrderStatusPending, "75", now),
		}, nil
	}}
	users := &mockUserRepository{FindAllFunc: func(context.Context) ([]domain.User, error) {
		return []domain.User{{ID: "u1"}, {ID: "u2"}}, nil
	}}
	reviews := &mockReviewRepository{
		FindAllFunc: func(context.Context) ([]domain.Review, error) {
			return []domain.Review{{ID: "r1"}, {ID: "r2"}}, nil
		},
		FindPendingFunc: func(context.Context) ([]domain.Review, error) {
			return []domain.Review{{ID: "r2"}}, nil
		},
	}

	svc := NewDashboardService(shops, orders, users, reviews, zap.NewNop())
	resp, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := resp.Statistics
	if stats.TotalUsers != 2 || stats.TotalShops != 3 || stats.TotalOrders != 2 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.PendingShopApprovals != 1 || stats.PendingReviews != 1 || stats.PendingOrders != 1 {
		t.Errorf("unexpected pending counts: %+v", stats)
	}
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("200")) {
		t.Errorf("expected revenue 200, got %s", stats.TotalRevenue)
	}
}
