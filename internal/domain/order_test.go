package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo_ForwardGraph(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusAccepted, true},
		{OrderStatusAccepted, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusOutForDelivery, true},
		{OrderStatusOutForDelivery, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusAccepted, OrderStatusAccepted, false},
		{OrderStatusDelivered, OrderStatusAccepted, false},
		{OrderStatusOutForDelivery, OrderStatusPreparing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_CanTransitionTo_Cancellation(t *testing.T) {
	for _, from := range []OrderStatus{
		OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing, OrderStatusOutForDelivery,
	} {
		assert.True(t, from.CanTransitionTo(OrderStatusCancelled), "cancel from %s", from)
	}

	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusAccepted))
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusOutForDelivery.Terminal())
}

func TestDeliveryMode_Valid(t *testing.T) {
	assert.True(t, DeliveryModeDelivery.Valid())
	assert.True(t, DeliveryModePickup.Valid())
	assert.False(t, DeliveryMode("drone").Valid())
	assert.False(t, DeliveryMode("").Valid())
}

func TestOrderLine_PriceSnapshot(t *testing.T) {
	price := decimal.RequireFromString("120.00")
	line := OrderLine{
		ProductID:   "p1",
		VariantID:   "v1",
		ProductName: "Basmati Rice",
		VariantName: "1kg",
		Quantity:    2,
		UnitPrice:   price,
		TotalPrice:  price.Mul(decimal.NewFromInt(2)),
	}

	assert.True(t, line.TotalPrice.Equal(decimal.RequireFromString("240.00")))
	assert.Equal(t, "Basmati Rice", line.ProductName)
}
