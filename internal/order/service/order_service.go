package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type Repository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	FindByShop(ctx context.Context, shopID string, status domain.OrderStatus) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, merchantNote *string) error
}

type ShopDirectory interface {
	GetOwned(ctx context.Context, merchantID, shopID string) (*domain.Shop, error)
}

type OrderService struct {
	repo   Repository
	shops  ShopDirectory
	stock  StockReserver
	logger *zap.Logger
}

func NewOrderService(repo Repository, shops ShopDirectory, stock StockReserver, logger *zap.Logger) *OrderService {
	return &OrderService{repo: repo, shops: shops, stock: stock, logger: logger}
}

func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.repo.FindByCustomer(ctx, customerID)
}

func (s *OrderService) GetCustomerOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Another customer's order reads as absent, not forbidden.
	if order.CustomerID != customerID {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
	}
	return order, nil
}

// CancelCustomerOrder lets a customer back out before the merchant has
// accepted. Reserved stock goes back to the catalog.
func (s *OrderService) CancelCustomerOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	order, err := s.GetCustomerOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending {
		return nil, errors.NewConflictError(fmt.Sprintf("order %s can no longer be cancelled", orderID))
	}
	return s.transition(ctx, order, domain.OrderStatusCancelled, nil)
}

func (s *OrderService) ListShopOrders(ctx context.Context, merchantID, shopID string, status domain.OrderStatus) ([]domain.Order, error) {
	if _, err := s.shops.GetOwned(ctx, merchantID, shopID); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, errors.NewValidationError("invalid order status filter", errors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", status),
		})
	}
	return s.repo.FindByShop(ctx, shopID, status)
}

func (s *OrderService) UpdateShopOrderStatus(ctx context.Context, merchantID, shopID, orderID string, status domain.OrderStatus, merchantNote *string) (*domain.Order, error) {
	if _, err := s.shops.GetOwned(ctx, merchantID, shopID); err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShopID != shopID {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
	}
	return s.setStatus(ctx, order, status, merchantNote)
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.FindAll(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, merchantNote *string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, order, status, merchantNote)
}

func (s *OrderService) setStatus(ctx context.Context, order *domain.Order, status domain.OrderStatus, merchantNote *string) (*domain.Order, error) {
	if !status.Valid() {
		return nil, errors.NewValidationError("invalid order status", errors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", status),
		})
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, errors.NewConflictError(
			fmt.Sprintf("order %s cannot move from %s to %s", order.ID, order.Status, status))
	}
	return s.transition(ctx, order, status, merchantNote)
}

// transition records the status change with a guard on the status the
// caller observed. If another writer moved the order first the update
// refuses with a conflict, so a cancellation can never restock twice.
func (s *OrderService) transition(ctx context.Context, order *domain.Order, status domain.OrderStatus, merchantNote *string) (*domain.Order, error) {
	if err := s.repo.UpdateStatus(ctx, order.ID, order.Status, status, merchantNote); err != nil {
		return nil, err
	}

	if status == domain.OrderStatusCancelled {
		s.restock(ctx, order)
	}

	s.logger.Info("order status updated",
		zap.String("orderId", order.ID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)))

	order.Status = status
	if merchantNote != nil {
		order.MerchantNote = merchantNote
	}
	return order, nil
}

// restock returns a cancelled order's quantities to the catalog. A
// failed release is logged, not surfaced; the cancellation itself has
// already been recorded.
func (s *OrderService) restock(ctx context.Context, order *domain.Order) {
	for _, line := range order.Lines {
		if err := s.stock.ReleaseStock(ctx, line.VariantID, line.Quantity); err != nil {
			s.logger.Error("failed to restock cancelled order line",
				zap.String("orderId", order.ID),
				zap.String("variantId", line.VariantID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err))
		}
	}
}
