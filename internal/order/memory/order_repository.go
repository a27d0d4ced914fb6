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

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]domain.Order)}
}

func cloneOrder(o domain.Order) domain.Order {
	out := o
	out.Lines = make([]domain.OrderLine, len(o.Lines))
	copy(out.Lines, o.Lines)
	return out
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("order %s already exists", order.ID))
	}
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	out := cloneOrder(order)
	return &out, nil
}

func (r *OrderRepository) FindByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *OrderRepository) FindByShop(_ context.Context, shopID string, status domain.OrderStatus) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool {
		if o.ShopID != shopID {
			return false
		}
		return status == "" || o.Status == status
	}), nil
}

func (r *OrderRepository) FindAll(_ context.Context) ([]domain.Order, error) {
	return r.filter(func(domain.Order) bool { return true }), nil
}

// UpdateStatus is a compare-and-set on the order status. The stored
// status must still match from, otherwise a concurrent writer already
// moved the order and the caller gets a conflict.
func (r *OrderRepository) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus, merchantNote *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	if order.Status != from {
		return errors.NewConflictError(fmt.Sprintf("order %s is %s, not %s", id, order.Status, from))
	}
	order = cloneOrder(order)
	order.Status = to
	if merchantNote != nil {
		order.MerchantNote = merchantNote
	}
	order.UpdatedAt = time.Now().UTC()
	r.orders[id] = order
	return nil
}

func (r *OrderRepository) filter(keep func(domain.Order) bool) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []domain.Order
	for _, o := range r.orders {
		if keep(o) {
			orders = append(orders, cloneOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders
}
