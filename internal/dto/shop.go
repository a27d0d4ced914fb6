package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bazaar/internal/domain"
)

type CreateShopRequest struct {
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	Category     string           `json:"category"`
	Address      string           `json:"address"`
	City         string           `json:"city"`
	Phone        string           `json:"phone"`
	Email        *string          `json:"email,omitempty"`
	MinimumOrder *decimal.Decimal `json:"minimumOrder,omitempty"`
	DeliveryFee  *decimal.Decimal `json:"deliveryFee,omitempty"`
}

type UpdateShopRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Address      *string          `json:"address,omitempty"`
	City         *string          `json:"city,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Email        *string          `json:"email,omitempty"`
	MinimumOrder *decimal.Decimal `json:"minimumOrder,omitempty"`
	DeliveryFee  *decimal.Decimal `json:"deliveryFee,omitempty"`
}

type ShopAvailabilityRequest struct {
	IsOpen          bool    `json:"isOpen"`
	AcceptingOrders bool    `json:"acceptingOrders"`
	Reason          *string `json:"reason,omitempty"`
}

type ShopApprovalRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

type ShopResponse struct {
	ID              string          `json:"id"`
	MerchantID      string          `json:"merchantId"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	Category        string          `json:"category"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	Phone           string          `json:"phone"`
	Email           *string         `json:"email,omitempty"`
	Status          string          `json:"status"`
	IsOpen          bool            `json:"isOpen"`
	AcceptingOrders bool            `json:"acceptingOrders"`
	MinimumOrder    decimal.Decimal `json:"minimumOrder"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type ShopsResponse struct {
	Shops []ShopResponse `json:"shops"`
}

func FromShop(s *domain.Shop) ShopResponse {
	return ShopResponse{
		ID:              s.ID,
		MerchantID:      s.MerchantID,
		Name:            s.Name,
		Description:     s.Description,
		Category:        s.Category,
		Address:         s.Address,
		City:            s.City,
		Phone:           s.Phone,
		Email:           s.Email,
		Status:          string(s.Status),
		IsOpen:          s.IsOpen,
		AcceptingOrders: s.AcceptingOrders,
		MinimumOrder:    s.MinimumOrder,
		DeliveryFee:     s.DeliveryFee,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func FromShops(shops []domain.Shop) ShopsResponse {
	out := make([]ShopResponse, len(shops))
	for i := range shops {
		out[i] = FromShop(&shops[i])
	}
	return ShopsResponse{Shops: out}
}
