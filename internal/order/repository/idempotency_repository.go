package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type MySQLIdempotencyRepository struct {
	db *sql.DB
}

func NewMySQLIdempotencyRepository(db *sql.DB) *MySQLIdempotencyRepository {
	return &MySQLIdempotencyRepository{db: db}
}

func (r *MySQLIdempotencyRepository) Find(ctx context.Context, key, customerID string) (*domain.IdempotencyKey, error) {
	query := `
		SELECT idemKey, customerId, orderId, createdAt
		FROM IdempotencyKeys
		WHERE idemKey = ? AND customerId = ?
	`

	var record domain.IdempotencyKey
	err := r.db.QueryRowContext(ctx, query, key, customerID).Scan(
		&record.Key, &record.CustomerID, &record.OrderID, &record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("idempotency key %s not found", key))
	}
	if err != nil {
		return nil, fmt.Errorf("querying idempotency key: %w", err)
	}
	return &record, nil
}

func (r *MySQLIdempotencyRepository) Save(ctx context.Context, record *domain.IdempotencyKey) error {
	query := `
		INSERT INTO IdempotencyKeys (idemKey, customerId, orderId, createdAt)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.Key, record.CustomerID, record.OrderID, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting idempotency key: %w", err)
	}
	return nil
}
