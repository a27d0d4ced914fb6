package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo enforces the forward order lifecycle. Cancellation is
// allowed from any non-terminal state; everything else moves one step
// forward only.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return !s.Terminal()
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusAccepted
	case OrderStatusAccepted:
		return next == OrderStatusPreparing
	case OrderStatusPreparing:
		return next == OrderStatusOutForDelivery
	case OrderStatusOutForDelivery:
		return next == OrderStatusDelivered
	}
	return false
}

type DeliveryMode string

const (
	DeliveryModeDelivery DeliveryMode = "delivery"
	DeliveryModePickup   DeliveryMode = "pickup"
)

func (m DeliveryMode) Valid() bool {
	return m == DeliveryModeDelivery || m == DeliveryModePickup
}

// OrderLine mirrors the submitted cart line plus the product name and
// unit price frozen at order-creation time. Later catalog edits must not
// change historical orders, so these are value copies.
type OrderLine struct {
	ID          string
	ProductID   string
	VariantID   string
	ProductName string
	VariantName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

type Order struct {
	ID              string
	CustomerID      string
	ShopID          string
	Lines           []OrderLine
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	DeliveryMode    DeliveryMode
	DeliveryAddress *string
	CustomerNote    *string
	MerchantNote    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
