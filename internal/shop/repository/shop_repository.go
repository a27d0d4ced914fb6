package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type MySQLShopRepository struct {
	db *sql.DB
}

func NewMySQLShopRepository(db *sql.DB) *MySQLShopRepository {
	return &MySQLShopRepository{db: db}
}

const shopColumns = `id, merchantId, name, description, category, address, city, phone, email,
	       status, isOpen, acceptingOrders, minimumOrder, deliveryFee, createdAt, updatedAt`

func scanShop(row interface{ Scan(...interface{}) error }) (*domain.Shop, error) {
	var shop domain.Shop
	err := row.Scan(
		&shop.ID, &shop.MerchantID, &shop.Name, &shop.Description, &shop.Category,
		&shop.Address, &shop.City, &shop.Phone, &shop.Email,
		&shop.Status, &shop.IsOpen, &shop.AcceptingOrders,
		&shop.MinimumOrder, &shop.DeliveryFee,
		&shop.CreatedAt, &shop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *MySQLShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	query := `
		INSERT INTO Shops (id, merchantId, name, description, category, address, city, phone, email,
		                   status, isOpen, acceptingOrders, minimumOrder, deliveryFee, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		shop.ID, shop.MerchantID, shop.Name, shop.Description, shop.Category,
		shop.Address, shop.City, shop.Phone, shop.Email,
		shop.Status, shop.IsOpen, shop.AcceptingOrders,
		shop.MinimumOrder, shop.DeliveryFee,
		shop.CreatedAt, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting shop: %w", err)
	}
	return nil
}

func (r *MySQLShopRepository) FindByID(ctx context.Context, id string) (*domain.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM Shops WHERE id = ?`, shopColumns)

	shop, err := scanShop(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("shop %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying shop by id: %w", err)
	}
	return shop, nil
}

func (r *MySQLShopRepository) FindByMerchant(ctx context.Context, merchantID string) ([]domain.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM Shops WHERE merchantId = ? ORDER BY createdAt DESC`, shopColumns)
	return r.queryShops(ctx, query, merchantID)
}

func (r *MySQLShopRepository) FindByStatus(ctx context.Context, status domain.ShopStatus) ([]domain.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM Shops WHERE status = ? ORDER BY createdAt DESC`, shopColumns)
	return r.queryShops(ctx, query, status)
}

func (r *MySQLShopRepository) FindApproved(ctx context.Context, category string) ([]domain.Shop, error) {
	if category != "" {
		query := fmt.Sprintf(`SELECT %s FROM Shops WHERE status = ? AND category = ? ORDER BY name`, shopColumns)
		return r.queryShops(ctx, query, domain.ShopStatusApproved, category)
	}
	query := fmt.Sprintf(`SELECT %s FROM Shops WHERE status = ? ORDER BY name`, shopColumns)
	return r.queryShops(ctx, query, domain.ShopStatusApproved)
}

func (r *MySQLShopRepository) FindAll(ctx context.Context) ([]domain.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM Shops ORDER BY createdAt DESC`, shopColumns)
	return r.queryShops(ctx, query)
}

func (r *MySQLShopRepository) queryShops(ctx context.Context, query string, args ...interface{}) ([]domain.Shop, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying shops: %w", err)
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shop row: %w", err)
		}
		shops = append(shops, *shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shop rows: %w", err)
	}
	return shops, nil
}

func (r *MySQLShopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	query := `
		UPDATE Shops
		SET name = ?, description = ?, category = ?, address = ?, city = ?, phone = ?, email = ?,
		    status = ?, isOpen = ?, acceptingOrders = ?, minimumOrder = ?, deliveryFee = ?, updatedAt = NOW()
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		shop.Name, shop.Description, shop.Category, shop.Address, shop.City, shop.Phone, shop.Email,
		shop.Status, shop.IsOpen, shop.AcceptingOrders, shop.MinimumOrder, shop.DeliveryFee,
		shop.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("shop %s not found", shop.ID))
	}
	return nil
}
