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

type ProductRepository struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]domain.Product)}
}

// clone copies the product together with its variant slice so callers
// never alias the stored backing array.
func clone(p domain.Product) domain.Product {
	out := p
	out.Variants = make([]domain.Variant, len(p.Variants))
	copy(out.Variants, p.Variants)
	return out
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("product %s already exists", product.ID))
	}
	r.products[product.ID] = clone(*product)
	return nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	out := clone(product)
	return &out, nil
}

func (r *ProductRepository) FindByShop(_ context.Context, shopID string, activeOnly bool) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var products []domain.Product
	for _, p := range r.products {
		if p.ShopID != shopID {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		products = append(products, clone(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	return products, nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("product %s not found", product.ID))
	}
	stored.Name = product.Name
	stored.Description = product.Description
	stored.Category = product.Category
	stored.Brand = product.Brand
	stored.IsActive = product.IsActive
	stored.UpdatedAt = time.Now().UTC()
	r.products[product.ID] = stored
	return nil
}

func (r *ProductRepository) AddVariant(_ context.Context, variant *domain.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[variant.ProductID]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("product %s not found", variant.ProductID))
	}
	product = clone(product)
	product.Variants = append(product.Variants, *variant)
	product.UpdatedAt = time.Now().UTC()
	r.products[variant.ProductID] = product
	return nil
}

func (r *ProductRepository) UpdateVariant(_ context.Context, variant *domain.Variant) error {
	return r.mutateVariant(variant.ProductID, variant.ID, func(v *domain.Variant) error {
		v.Name = variant.Name
		v.MRP = variant.MRP
		v.SellingPrice = variant.SellingPrice
		v.StockQuantity = variant.StockQuantity
		v.IsActive = variant.IsActive
		return nil
	})
}

// ReserveStock performs a compare-and-decrement under the store lock so
// two concurrent orders can never both take the last unit.
func (r *ProductRepository) ReserveStock(_ context.Context, variantID string, quantity int) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, product := range r.products {
		for i, v := range product.Variants {
			if v.ID != variantID {
				continue
			}
			if !v.IsActive || v.StockQuantity < quantity {
				return false, v.StockQuantity, nil
			}
			product = clone(product)
			product.Variants[i].StockQuantity -= quantity
			r.products[id] = product
			return true, 0, nil
		}
	}
	return false, 0, errors.NewNotFoundError(fmt.Sprintf("variant %s not found", variantID))
}

func (r *ProductRepository) ReleaseStock(_ context.Context, variantID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, product := range r.products {
		for i, v := range product.Variants {
			if v.ID != variantID {
				continue
			}
			product = clone(product)
			product.Variants[i].StockQuantity += quantity
			r.products[id] = product
			return nil
		}
	}
	return errors.NewNotFoundError(fmt.Sprintf("variant %s not found", variantID))
}

func (r *ProductRepository) mutateVariant(productID, variantID string, fn func(*domain.Variant) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
	}
	product = clone(product)
	for i := range product.Variants {
		if product.Variants[i].ID != variantID {
			continue
		}
		if err := fn(&product.Variants[i]); err != nil {
			return err
		}
		product.UpdatedAt = time.Now().UTC()
		r.products[productID] = product
		return nil
	}
	return errors.NewNotFoundError(fmt.Sprintf("variant %s not found", variantID))
}
