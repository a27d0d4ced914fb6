package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	apperrors "bazaar/internal/errors"
)

type mockStockReserver struct {
	mu       sync.Mutex
	reserves []string
	releases []string

	ReserveStockFunc func(ctx context.Context, variantID string, quantity int) (bool, int, error)
	ReleaseStockFunc func(ctx context.Context, variantID string, quantity int) error
}

func (m *mockStockReserver) ReserveStock(ctx context.Context, variantID string, quantity int) (bool, int, error) {
	m.mu.Lock()
	m.reserves = append(m.reserves, variantID)
	m.mu.Unlock()
	if m.ReserveStockFunc != nil {
		return m.ReserveStockFunc(ctx, variantID, quantity)
	}
	return true, 0, nil
}

func (m *mockStockReserver) ReleaseStock(ctx context.Context, variantID string, quantity int) error {
	m.mu.Lock()
	m.releases = append(m.releases, variantID)
	m.mu.Unlock()
	if m.ReleaseStockFunc != nil {
		return m.ReleaseStockFunc(ctx, variantID, quantity)
	}
	return nil
}

type mockOrderStore struct {
	CreateFunc func(ctx context.Context, order *domain.Order) error
}

func (m *mockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func newTestCheckout(stock StockReserver, orders OrderStore) *CheckoutService {
	return NewCheckoutService(stock, orders, zap.NewNop(), 5*time.Second)
}

func checkoutOrder(lines ...domain.OrderLine) *domain.Order {
	return &domain.Order{
		ID:          "ORDDEADBEEF",
		CustomerID:  "customer-1",
		ShopID:      "shop-1",
		Lines:       lines,
		TotalAmount: decimal.RequireFromString("100"),
		Status:      domain.OrderStatusPending,
	}
}

func TestCommit_ReservesInDeterministicOrder(t *testing.T) {
	stock := &mockStockReserver{}
	svc := newTestCheckout(stock, &mockOrderStore{})

	// Submitted out of order; reservation must sort by (product, variant).
	err := svc.Commit(context.Background(), checkoutOrder(
		domain.OrderLine{ProductID: "p2", VariantID: "vB", Quantity: 1},
		domain.OrderLine{ProductID: "p1", VariantID: "vZ", Quantity: 1},
		domain.OrderLine{ProductID: "p1", VariantID: "vA", Quantity: 1},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"vA", "vZ", "vB"}
	if len(stock.reserves) != len(want) {
		t.Fatalf("expected %d reservations, got %d", len(want), len(stock.reserves))
	}
	for i, v := range want {
		if stock.reserves[i] != v {
			t.Errorf("reservation %d: expected %s, got %s", i, v, stock.reserves[i])
		}
	}
	if len(stock.releases) != 0 {
		t.Errorf("successful commit must not release stock, released %v", stock.releases)
	}
}

func TestCommit_RefusedLineReleasesEarlierReservations(t *testing.T) {
	stock := &mockStockReserver{
		ReserveStockFunc: func(_ context.Context, variantID string, _ int) (bool, int, error) {
			if variantID == "vB" {
				return false, 2, nil
			}
			return true, 0, nil
		},
	}
	persisted := false
	orders := &mockOrderStore{CreateFunc: func(context.Context, *domain.Order) error {
		persisted = true
		return nil
	}}

	svc := newTestCheckout(stock, orders)
	err := svc.Commit(context.Background(), checkoutOrder(
		domain.OrderLine{ProductID: "p1", VariantID: "vA", ProductName: "Milk", Quantity: 1},
		domain.OrderLine{ProductID: "p2", VariantID: "vB", ProductName: "Bread", Quantity: 3},
		domain.OrderLine{ProductID: "p3", VariantID: "vC", ProductName: "Eggs", Quantity: 1},
	))

	se, ok := apperrors.IsInsufficientStockError(err)
	if !ok {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if se.ProductName != "Bread" || se.Requested != 3 || se.Available != 2 {
		t.Errorf("error should carry the refused line, got %+v", se)
	}
	if persisted {
		t.Error("order must not be persisted when a reservation is refused")
	}
	if len(stock.releases) != 1 || stock.releases[0] != "vA" {
		t.Errorf("expected release of vA only, got %v", stock.releases)
	}
}

func TestCommit_ReserveErrorReleasesAndPropagates(t *testing.T) {
	stock := &mockStockReserver{
		ReserveStockFunc: func(_ context.Context, variantID string, _ int) (bool, int, error) {
			if variantID == "vC" {
				return false, 0, apperrors.NewDeadlockError("deadlock")
			}
			return true, 0, nil
		},
	}

	svc := newTestCheckout(stock, &mockOrderStore{})
	err := svc.Commit(context.Background(), checkoutOrder(
		domain.OrderLine{ProductID: "p1", VariantID: "vA", Quantity: 1},
		domain.OrderLine{ProductID: "p2", VariantID: "vB", Quantity: 1},
		domain.OrderLine{ProductID: "p3", VariantID: "vC", Quantity: 1},
	))

	if _, ok := apperrors.IsDeadlockError(err); !ok {
		t.Fatalf("expected DeadlockError, got %v", err)
	}
	if len(stock.releases) != 2 {
		t.Errorf("expected both earlier reservations released, got %v", stock.releases)
	}
}

func TestCommit_StoreFailureReleasesEverything(t *testing.T) {
	stock := &mockStockReserver{}
	orders := &mockOrderStore{CreateFunc: func(context.Context, *domain.Order) error {
		return apperrors.NewInternalError("connection lost", nil)
	}}

	svc := newTestCheckout(stock, orders)
	err := svc.Commit(context.Background(), checkoutOrder(
		domain.OrderLine{ProductID: "p1", VariantID: "vA", Quantity: 2},
		domain.OrderLine{ProductID: "p2", VariantID: "vB", Quantity: 1},
	))

	if _, ok := apperrors.IsPersistenceError(err); !ok {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if len(stock.releases) != 2 {
		t.Errorf("every reserved line must be released, got %v", stock.releases)
	}
}

func TestCommit_ReleaseSurvivesCancelledContext(t *testing.T) {
	released := make(chan string, 1)
	stock := &mockStockReserver{
		ReserveStockFunc: func(_ context.Context, variantID string, _ int) (bool, int, error) {
			if variantID == "vB" {
				return false, 0, nil
			}
			return true, 0, nil
		},
		ReleaseStockFunc: func(ctx context.Context, variantID string, _ int) error {
			if ctx.Err() != nil {
				t.Error("release context must outlive the cancelled commit context")
			}
			released <- variantID
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestCheckout(stock, &mockOrderStore{})
	svc.Commit(ctx, checkoutOrder(
		domain.OrderLine{ProductID: "p1", VariantID: "vA", Quantity: 1},
		domain.OrderLine{ProductID: "p2", VariantID: "vB", Quantity: 1},
	))

	select {
	case v := <-released:
		if v != "vA" {
			t.Errorf("expected vA released, got %s", v)
		}
	default:
		t.Error("expected a release despite the cancelled parent context")
	}
}
