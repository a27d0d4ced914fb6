package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/dto"
	"bazaar/internal/errors"
)

type Repository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByShop(ctx context.Context, shopID string, activeOnly bool) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	AddVariant(ctx context.Context, variant *domain.Variant) error
	UpdateVariant(ctx context.Context, variant *domain.Variant) error
	ReserveStock(ctx context.Context, variantID string, quantity int) (bool, int, error)
	ReleaseStock(ctx context.Context, variantID string, quantity int) error
}

// ShopDirectory is the slice of the shop module the catalog needs for
// ownership and visibility checks.
type ShopDirectory interface {
	GetOwned(ctx context.Context, merchantID, shopID string) (*domain.Shop, error)
	GetApproved(ctx context.Context, shopID string) (*domain.Shop, error)
}

type CatalogService struct {
	repo   Repository
	shops  ShopDirectory
	logger *zap.Logger
}

func NewCatalogService(repo Repository, shops ShopDirectory, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, shops: shops, logger: logger}
}

// BrowseProducts lists the active products of an approved shop.
func (s *CatalogService) BrowseProducts(ctx context.Context, shopID string) ([]domain.Product, error) {
	if _, err := s.shops.GetApproved(ctx, shopID); err != nil {
		return nil, err
	}
	return s.repo.FindByShop(ctx, shopID, true)
}

func (s *CatalogService) GetProduct(ctx context.Context, shopID, productID string) (*domain.Product, error) {
	if _, err := s.shops.GetApproved(ctx, shopID); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ShopID != shopID || !product.IsActive {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, merchantID, shopID string, req dto.CreateProductRequest) (*domain.Product, error) {
	if _, err := s.shops.GetOwned(ctx, merchantID, shopID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		ShopID:      shopID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, domain.Variant{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Name:          v.Name,
			SKU:           v.SKU,
			MRP:           v.MRP,
			SellingPrice:  v.SellingPrice,
			StockQuantity: v.StockQuantity,
			IsActive:      true,
		})
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("productId", product.ID),
		zap.String("shopId", shopID),
		zap.Int("variantCount", len(product.Variants)))
	return product, nil
}

func (s *CatalogService) ListShopProducts(ctx context.Context, merchantID, shopID string) ([]domain.Product, error) {
	if _, err := s.shops.GetOwned(ctx, merchantID, shopID); err != nil {
		return nil, err
	}
	return s.repo.FindByShop(ctx, shopID, false)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, merchantID, shopID, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, merchantID, shopID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = req.Brand
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) AddVariant(ctx context.Context, merchantID, shopID, productID string, req dto.CreateVariantRequest) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, merchantID, shopID, productID)
	if err != nil {
		return nil, err
	}

	variant := domain.Variant{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Name:          req.Name,
		SKU:           req.SKU,
		MRP:           req.MRP,
		SellingPrice:  req.SellingPrice,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}
	if err := s.repo.AddVariant(ctx, &variant); err != nil {
		return nil, err
	}

	product.Variants = append(product.Variants, variant)
	return product, nil
}

func (s *CatalogService) UpdateVariant(ctx context.Context, merchantID, shopID, productID, variantID string, req dto.UpdateVariantRequest) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, merchantID, shopID, productID)
	if err != nil {
		return nil, err
	}

	variant, ok := product.FindVariant(variantID)
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("variant %s not found", variantID))
	}

	if req.Name != nil {
		variant.Name = *req.Name
	}
	if req.MRP != nil {
		variant.MRP = *req.MRP
	}
	if req.SellingPrice != nil {
		variant.SellingPrice = *req.SellingPrice
	}
	if req.StockQuantity != nil {
		variant.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		variant.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateVariant(ctx, &variant); err != nil {
		return nil, err
	}

	for i := range product.Variants {
		if product.Variants[i].ID == variantID {
			product.Variants[i] = variant
		}
	}
	return product, nil
}

func (s *CatalogService) ownedProduct(ctx context.Context, merchantID, shopID, productID string) (*domain.Product, error) {
	if _, err := s.shops.GetOwned(ctx, merchantID, shopID); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ShopID != shopID {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
	}
	return product, nil
}
