package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bazaar/internal/domain"
)

type CartLine struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	ShopID          string     `json:"shopId"`
	Items           []CartLine `json:"items"`
	DeliveryMode    string     `json:"deliveryMode"`
	DeliveryAddress *string    `json:"deliveryAddress,omitempty"`
	CustomerNote    *string    `json:"customerNote,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status       string  `json:"status"`
	MerchantNote *string `json:"merchantNote,omitempty"`
}

type OrderLineDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	VariantID   string          `json:"variantId"`
	ProductName string          `json:"productName"`
	VariantName string          `json:"variantName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type OrderResponse struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	ShopID          string          `json:"shopId"`
	Lines           []OrderLineDTO  `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	DeliveryMode    string          `json:"deliveryMode"`
	DeliveryAddress *string         `json:"deliveryAddress,omitempty"`
	CustomerNote    *string         `json:"customerNote,omitempty"`
	MerchantNote    *string         `json:"merchantNote,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func FromOrder(o *domain.Order) OrderResponse {
	lines := make([]OrderLineDTO, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineDTO{
			ID:          l.ID,
			ProductID:   l.ProductID,
			VariantID:   l.VariantID,
			ProductName: l.ProductName,
			VariantName: l.VariantName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.TotalPrice,
		}
	}

	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		ShopID:          o.ShopID,
		Lines:           lines,
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		DeliveryMode:    string(o.DeliveryMode),
		DeliveryAddress: o.DeliveryAddress,
		CustomerNote:    o.CustomerNote,
		MerchantNote:    o.MerchantNote,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromOrders(orders []domain.Order) OrdersResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = FromOrder(&orders[i])
	}
	return OrdersResponse{Orders: out}
}
