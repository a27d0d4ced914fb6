package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/dto"
)

const recentOrderLimit = 10

type ShopRepository interface {
	FindByMerchant(ctx context.Context, merchantID string) ([]domain.Shop, error)
	FindByStatus(ctx context.Context, status domain.ShopStatus) ([]domain.Shop, error)
	FindAll(ctx context.Context) ([]domain.Shop, error)
}

type OrderRepository interface {
	FindByShop(ctx context.Context, shopID string, status domain.OrderStatus) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
}

type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
}

type ReviewRepository interface {
	FindPending(ctx context.Context) ([]domain.Review, error)
	FindAll(ctx context.Context) ([]domain.Review, error)
}

type DashboardService struct {
	shops   ShopRepository
	orders  OrderRepository
	users   UserRepository
	reviews ReviewRepository
	logger  *zap.Logger
}

func NewDashboardService(shops ShopRepository, orders OrderRepository, users UserRepository, reviews ReviewRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		shops:   shops,
		orders:  orders,
		users:   users,
		reviews: reviews,
		logger:  logger,
	}
}

// MerchantDashboard aggregates a merchant's shops with their order flow.
// Revenue counts delivered orders only.
func (s *DashboardService) MerchantDashboard(ctx context.Context, merchantID string) (*dto.MerchantDashboardResponse, error) {
	shops, err := s.shops.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	var allOrders []domain.Order
	stats := dto.MerchantStatistics{
		TotalShops:   len(shops),
		TotalRevenue: decimal.Zero,
	}
	for _, shop := range shops {
		orders, err := s.orders.FindByShop(ctx, shop.ID, "")
		if err != nil {
			return nil, err
		}
		allOrders = append(allOrders, orders...)
	}

	for _, order := range allOrders {
		stats.TotalOrders++
		switch order.Status {
		case domain.OrderStatusPending:
			stats.PendingOrders++
		case domain.OrderStatusDelivered:
			stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
		}
	}

	recent := recentOrders(allOrders, recentOrderLimit)

	resp := &dto.MerchantDashboardResponse{
		Shops:        dto.FromShops(shops).Shops,
		RecentOrders: dto.FromOrders(recent).Orders,
		Statistics:   stats,
	}
	return resp, nil
}

func (s *DashboardService) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	shops, err := s.shops.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	pendingShops, err := s.shops.FindByStatus(ctx, domain.ShopStatusPendingApproval)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	pendingReviews, err := s.reviews.FindPending(ctx)
	if err != nil {
		return nil, err
	}

	stats := dto.AdminStatistics{
		TotalUsers:           len(users),
		TotalShops:           len(shops),
		TotalOrders:          len(orders),
		TotalReviews:         len(reviews),
		PendingShopApprovals: len(pendingShops),
		PendingReviews:       len(pendingReviews),
		TotalRevenue:         decimal.Zero,
	}
	for _, order := range orders {
		switch order.Status {
		case domain.OrderStatusPending:
			stats.PendingOrders++
		case domain.OrderStatusDelivered:
			stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
		}
	}

	return &dto.AdminDashboardResponse{Statistics: stats}, nil
}

func recentOrders(orders []domain.Order, limit int) []domain.Order {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
