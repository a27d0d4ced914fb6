package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShopStatus string

const (
	ShopStatusPendingApproval ShopStatus = "pending_approval"
	ShopStatusApproved        ShopStatus = "approved"
	ShopStatusRejected        ShopStatus = "rejected"
	ShopStatusSuspended       ShopStatus = "suspended"
)

func (s ShopStatus) Valid() bool {
	switch s {
	case ShopStatusPendingApproval, ShopStatusApproved, ShopStatusRejected, ShopStatusSuspended:
		return true
	}
	return false
}

type Shop struct {
	ID              string
	MerchantID      string
	Name            string
	Description     *string
	Category        string
	Address         string
	City            string
	Phone           string
	Email           *string
	Status          ShopStatus
	IsOpen          bool
	AcceptingOrders bool
	MinimumOrder    decimal.Decimal
	DeliveryFee     decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Orderable reports whether the shop may receive new orders.
func (s Shop) Orderable() bool {
	return s.Status == ShopStatusApproved && s.AcceptingOrders
}
