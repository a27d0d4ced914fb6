package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bazaar/internal/domain"
)

type CreateVariantRequest struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	MRP           decimal.Decimal `json:"mrp"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity int             `json:"stockQuantity"`
}

type CreateProductRequest struct {
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	Category    string                 `json:"category"`
	Brand       *string                `json:"brand,omitempty"`
	Variants    []CreateVariantRequest `json:"variants"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type UpdateVariantRequest struct {
	Name          *string          `json:"name,omitempty"`
	MRP           *decimal.Decimal `json:"mrp,omitempty"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice,omitempty"`
	StockQuantity *int             `json:"stockQuantity,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

type VariantDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	MRP           decimal.Decimal `json:"mrp"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity int             `json:"stockQuantity"`
	IsActive      bool            `json:"isActive"`
}

type ProductResponse struct {
	ID          string       `json:"id"`
	ShopID      string       `json:"shopId"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Category    string       `json:"category"`
	Brand       *string      `json:"brand,omitempty"`
	IsActive    bool         `json:"isActive"`
	Variants    []VariantDTO `json:"variants"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

func FromProduct(p *domain.Product) ProductResponse {
	variants := make([]VariantDTO, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = VariantDTO{
			ID:            v.ID,
			Name:          v.Name,
			SKU:           v.SKU,
			MRP:           v.MRP,
			SellingPrice:  v.SellingPrice,
			StockQuantity: v.StockQuantity,
			IsActive:      v.IsActive,
		}
	}

	return ProductResponse{
		ID:          p.ID,
		ShopID:      p.ShopID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
		IsActive:    p.IsActive,
		Variants:    variants,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromProducts(products []domain.Product) ProductsResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = FromProduct(&products[i])
	}
	return ProductsResponse{Products: out}
}
