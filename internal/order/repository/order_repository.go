package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, customerId, shopId, subtotal, deliveryFee, totalAmount, status,
	       deliveryMode, deliveryAddress, customerNote, merchantNote, createdAt, updatedAt`

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.ShopID,
		&o.Subtotal, &o.DeliveryFee, &o.TotalAmount,
		&o.Status, &o.DeliveryMode, &o.DeliveryAddress,
		&o.CustomerNote, &o.MerchantNote,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persists the whole aggregate in one transaction so readers
// never observe an order without its lines.
func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO Orders (id, customerId, shopId, subtotal, deliveryFee, totalAmount, status,
		                    deliveryMode, deliveryAddress, customerNote, merchantNote, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		order.ID, order.CustomerID, order.ShopID,
		order.Subtotal, order.DeliveryFee, order.TotalAmount,
		order.Status, order.DeliveryMode, order.DeliveryAddress,
		order.CustomerNote, order.MerchantNote,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	lineQuery := `
		INSERT INTO OrderItems (id, orderId, productId, variantId, productName, variantName,
		                        quantity, unitPrice, totalPrice)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, line := range order.Lines {
		_, err = tx.ExecContext(ctx, lineQuery,
			line.ID, order.ID, line.ProductID, line.VariantID,
			line.ProductName, line.VariantName,
			line.Quantity, line.UnitPrice, line.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("inserting order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order insert: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE id = ?`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *MySQLOrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE customerId = ? ORDER BY createdAt DESC`, orderColumns)
	return r.queryOrders(ctx, query, customerID)
}

func (r *MySQLOrderRepository) FindByShop(ctx context.Context, shopID string, status domain.OrderStatus) ([]domain.Order, error) {
	if status != "" {
		query := fmt.Sprintf(`SELECT %s FROM Orders WHERE shopId = ? AND status = ? ORDER BY createdAt DESC`, orderColumns)
		return r.queryOrders(ctx, query, shopID, status)
	}
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE shopId = ? ORDER BY createdAt DESC`, orderColumns)
	return r.queryOrders(ctx, query, shopID)
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders ORDER BY createdAt DESC`, orderColumns)
	return r.queryOrders(ctx, query)
}

func (r *MySQLOrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *MySQLOrderRepository) loadLines(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT id, productId, variantId, productName, variantName, quantity, unitPrice, totalPrice
		FROM OrderItems
		WHERE orderId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("querying order lines: %w", err)
	}
	defer rows.Close()

	order.Lines = nil
	for rows.Next() {
		var l domain.OrderLine
		err := rows.Scan(
			&l.ID, &l.ProductID, &l.VariantID, &l.ProductName, &l.VariantName,
			&l.Quantity, &l.UnitPrice, &l.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("scanning order line row: %w", err)
		}
		order.Lines = append(order.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating order line rows: %w", err)
	}
	return nil
}

// UpdateStatus moves an order from one status to another. The current
// status is part of the WHERE clause, so a concurrent writer that moved
// the order first makes this a no-op and the caller gets a conflict.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, merchantNote *string) error {
	query := `
		UPDATE Orders
		SET status = ?, merchantNote = COALESCE(?, merchantNote), updatedAt = NOW()
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, to, merchantNote, id, from)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var current domain.OrderStatus
		err := r.db.QueryRowContext(ctx, `SELECT status FROM Orders WHERE id = ?`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
		}
		if err != nil {
			return fmt.Errorf("checking order status: %w", err)
		}
		return errors.NewConflictError(fmt.Sprintf("order %s is %s, not %s", id, current, from))
	}
	return nil
}
