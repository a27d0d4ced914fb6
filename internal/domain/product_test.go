package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_FindVariant(t *testing.T) {
	product := Product{
		ID: "p1",
		Variants: []Variant{
			{ID: "v1", Name: "500g", SellingPrice: decimal.RequireFromString("60.00")},
			{ID: "v2", Name: "1kg", SellingPrice: decimal.RequireFromString("110.00")},
		},
	}

	v, ok := product.FindVariant("v2")
	assert.True(t, ok)
	assert.Equal(t, "1kg", v.Name)

	_, ok = product.FindVariant("v9")
	assert.False(t, ok)
}

func TestVariant_Purchasable(t *testing.T) {
	assert.True(t, Variant{IsActive: true, StockQuantity: 3}.Purchasable())
	assert.False(t, Variant{IsActive: true, StockQuantity: 0}.Purchasable())
	assert.False(t, Variant{IsActive: false, StockQuantity: 3}.Purchasable())
}
