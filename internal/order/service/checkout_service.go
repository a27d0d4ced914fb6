package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

// StockReserver is the catalog primitive the commit phase relies on. A
// reservation either decrements atomically or reports the quantity that
// was actually on hand.
type StockReserver interface {
	ReserveStock(ctx context.Context, variantID string, quantity int) (bool, int, error)
	ReleaseStock(ctx context.Context, variantID string, quantity int) error
}

type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
}

// CheckoutService commits a validated order: it reserves stock for every
// line and then persists the aggregate. The cart is treated as one
// transaction against the catalog; a failed line releases everything
// reserved before it, so stock never leaks and no partial order is ever
// visible.
type CheckoutService struct {
	stock         StockReserver
	orders        OrderStore
	logger        *zap.Logger
	commitTimeout time.Duration
}

func NewCheckoutService(stock StockReserver, orders OrderStore, logger *zap.Logger, commitTimeout time.Duration) *CheckoutService {
	return &CheckoutService{
		stock:         stock,
		orders:        orders,
		logger:        logger,
		commitTimeout: commitTimeout,
	}
}

func (s *CheckoutService) Commit(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, s.commitTimeout)
	defer cancel()

	// Reserve in ascending (product, variant) order so two carts sharing
	// lines always lock in the same sequence.
	lines := make([]domain.OrderLine, len(order.Lines))
	copy(lines, order.Lines)
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].ProductID != lines[j].ProductID {
			return lines[i].ProductID < lines[j].ProductID
		}
		return lines[i].VariantID < lines[j].VariantID
	})

	var reserved []domain.OrderLine
	for _, line := range lines {
		ok, available, err := s.stock.ReserveStock(ctx, line.VariantID, line.Quantity)
		if err != nil {
			s.release(ctx, order.ID, reserved)
			return err
		}
		if !ok {
			s.release(ctx, order.ID, reserved)
			s.logger.Warn("stock reservation refused",
				zap.String("orderId", order.ID),
				zap.String("variantId", line.VariantID),
				zap.Int("requested", line.Quantity),
				zap.Int("available", available))
			return errors.NewInsufficientStockError(line.ProductName, line.Quantity, available)
		}
		reserved = append(reserved, line)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.release(ctx, order.ID, reserved)
		return errors.NewPersistenceError("failed to persist order", err)
	}

	s.logger.Info("order committed",
		zap.String("orderId", order.ID),
		zap.String("shopId", order.ShopID),
		zap.Int("lineCount", len(order.Lines)),
		zap.String("totalAmount", order.TotalAmount.String()))
	return nil
}

// release returns reserved quantities after a failed commit. It runs on
// a fresh context because the commit context may already be expired.
func (s *CheckoutService) release(ctx context.Context, orderID string, reserved []domain.OrderLine) {
	if len(reserved) == 0 {
		return
	}

	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.commitTimeout)
	defer cancel()

	for _, line := range reserved {
		if err := s.stock.ReleaseStock(releaseCtx, line.VariantID, line.Quantity); err != nil {
			s.logger.Error("failed to release reserved stock",
				zap.String("orderId", orderID),
				zap.String("variantId", line.VariantID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err))
		}
	}
}
