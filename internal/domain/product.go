package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	ShopID      string
	Name        string
	Description *string
	Category    string
	Brand       *string
	IsActive    bool
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant is one purchasable configuration of a product (size, weight,
// SKU) with its own price and stock count.
type Variant struct {
	ID            string
	ProductID     string
	Name          string
	SKU           string
	MRP           decimal.Decimal
	SellingPrice  decimal.Decimal
	StockQuantity int
	IsActive      bool
}

func (p Product) FindVariant(variantID string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}

func (v Variant) Purchasable() bool {
	return v.IsActive && v.StockQuantity > 0
}
