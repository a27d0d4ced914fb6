package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

const productColumns = `id, shopId, name, description, category, brand, isActive, createdAt, updatedAt`

const variantColumns = `id, productId, name, sku, mrp, sellingPrice, stockQuantity, isActive`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Category, &p.Brand,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLProductRepository) Create(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO Products (id, shopId, name, description, category, brand, isActive, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		product.ID, product.ShopID, product.Name, product.Description,
		product.Category, product.Brand, product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	for i := range product.Variants {
		if err := insertVariant(ctx, tx, &product.Variants[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing product insert: %w", err)
	}
	return nil
}

func insertVariant(ctx context.Context, tx *sql.Tx, v *domain.Variant) error {
	query := `
		INSERT INTO ProductVariants (id, productId, name, sku, mrp, sellingPrice, stockQuantity, isActive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		v.ID, v.ProductID, v.Name, v.SKU, v.MRP, v.SellingPrice, v.StockQuantity, v.IsActive,
	)
	if err != nil {
		return fmt.Errorf("inserting variant: %w", err)
	}
	return nil
}

func (r *MySQLProductRepository) AddVariant(ctx context.Context, variant *domain.Variant) error {
	query := `
		INSERT INTO ProductVariants (id, productId, name, sku, mrp, sellingPrice, stockQuantity, isActive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		variant.ID, variant.ProductID, variant.Name, variant.SKU,
		variant.MRP, variant.SellingPrice, variant.StockQuantity, variant.IsActive,
	)
	if err != nil {
		return fmt.Errorf("inserting variant: %w", err)
	}
	return nil
}

func (r *MySQLProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products WHERE id = ?`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	if err := r.loadVariants(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *MySQLProductRepository) FindByShop(ctx context.Context, shopID string, activeOnly bool) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products WHERE shopId = ?`, productColumns)
	args := []interface{}{shopID}
	if activeOnly {
		query += ` AND isActive = 1`
	}
	query += ` ORDER BY createdAt DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	for i := range products {
		if err := r.loadVariants(ctx, &products[i]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *MySQLProductRepository) loadVariants(ctx context.Context, product *domain.Product) error {
	query := fmt.Sprintf(`SELECT %s FROM ProductVariants WHERE productId = ? ORDER BY id`, variantColumns)

	rows, err := r.db.QueryContext(ctx, query, product.ID)
	if err != nil {
		return fmt.Errorf("querying variants: %w", err)
	}
	defer rows.Close()

	product.Variants = nil
	for rows.Next() {
		var v domain.Variant
		err := rows.Scan(
			&v.ID, &v.ProductID, &v.Name, &v.SKU,
			&v.MRP, &v.SellingPrice, &v.StockQuantity, &v.IsActive,
		)
		if err != nil {
			return fmt.Errorf("scanning variant row: %w", err)
		}
		product.Variants = append(product.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating variant rows: %w", err)
	}
	return nil
}

func (r *MySQLProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE Products
		SET name = ?, description = ?, category = ?, brand = ?, isActive = ?, updatedAt = NOW()
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		product.Name, product.Description, product.Category, product.Brand,
		product.IsActive, product.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("product %s not found", product.ID))
}

func (r *MySQLProductRepository) UpdateVariant(ctx context.Context, variant *domain.Variant) error {
	query := `
		UPDATE ProductVariants
		SET name = ?, mrp = ?, sellingPrice = ?, stockQuantity = ?, isActive = ?
		WHERE id = ? AND productId = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		variant.Name, variant.MRP, variant.SellingPrice, variant.StockQuantity,
		variant.IsActive, variant.ID, variant.ProductID,
	)
	if err != nil {
		return fmt.Errorf("updating variant: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("variant %s not found", variant.ID))
}

// ReserveStock decrements a variant's stock only when enough is on hand.
// The single conditional UPDATE is what closes the check-then-act race
// between concurrent orders. On refusal it reports the current stock.
func (r *MySQLProductRepository) ReserveStock(ctx context.Context, variantID string, quantity int) (bool, int, error) {
	query := `
		UPDATE ProductVariants
		SET stockQuantity = stockQuantity - ?
		WHERE id = ? AND isActive = 1 AND stockQuantity >= ?
	`

	result, err := r.db.ExecContext(ctx, query, quantity, variantID, quantity)
	if err != nil {
		return false, 0, fmt.Errorf("reserving stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return true, 0, nil
	}

	var available int
	err = r.db.QueryRowContext(ctx,
		`SELECT stockQuantity FROM ProductVariants WHERE id = ?`, variantID,
	).Scan(&available)
	if err == sql.ErrNoRows {
		return false, 0, errors.NewNotFoundError(fmt.Sprintf("variant %s not found", variantID))
	}
	if err != nil {
		return false, 0, fmt.Errorf("querying variant stock: %w", err)
	}
	return false, available, nil
}

// ReleaseStock returns a previously reserved quantity to a variant.
func (r *MySQLProductRepository) ReleaseStock(ctx context.Context, variantID string, quantity int) error {
	query := `
		UPDATE ProductVariants
		SET stockQuantity = stockQuantity + ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, quantity, variantID)
	if err != nil {
		return fmt.Errorf("releasing stock: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("variant %s not found", variantID))
}

func checkAffected(result sql.Result, notFoundMessage string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(notFoundMessage)
	}
	return nil
}
