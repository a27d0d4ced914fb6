package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type MySQLReviewRepository struct {
	db *sql.DB
}

func NewMySQLReviewRepository(db *sql.DB) *MySQLReviewRepository {
	return &MySQLReviewRepository{db: db}
}

const reviewColumns = `id, customerId, shopId, productId, orderId, rating, title, comment,
	       isVerified, isApproved, createdAt`

func scanReview(row interface{ Scan(...interface{}) error }) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID, &review.CustomerID, &review.ShopID, &review.ProductID, &review.OrderID,
		&review.Rating, &review.Title, &review.Comment,
		&review.IsVerified, &review.IsApproved, &review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *MySQLReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO Reviews (id, customerId, shopId, productId, orderId, rating, title, comment,
		                     isVerified, isApproved, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.CustomerID, review.ShopID, review.ProductID, review.OrderID,
		review.Rating, review.Title, review.Comment,
		review.IsVerified, review.IsApproved, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}
	return nil
}

func (r *MySQLReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM Reviews WHERE id = ?`, reviewColumns)

	review, err := scanReview(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("review %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying review by id: %w", err)
	}
	return review, nil
}

func (r *MySQLReviewRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM Reviews WHERE orderId = ?`, reviewColumns)

	review, err := scanReview(r.db.QueryRowContext(ctx, query, orderID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("no review for order %s", orderID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying review by order: %w", err)
	}
	return review, nil
}

func (r *MySQLReviewRepository) FindApprovedByShop(ctx context.Context, shopID string) ([]domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM Reviews WHERE shopId = ? AND isApproved = 1 ORDER BY createdAt DESC`, reviewColumns)
	return r.queryReviews(ctx, query, shopID)
}

func (r *MySQLReviewRepository) FindPending(ctx context.Context) ([]domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM Reviews WHERE isApproved = 0 ORDER BY createdAt DESC`, reviewColumns)
	return r.queryReviews(ctx, query)
}

func (r *MySQLReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM Reviews ORDER BY createdAt DESC`, reviewColumns)
	return r.queryReviews(ctx, query)
}

func (r *MySQLReviewRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating review rows: %w", err)
	}
	return reviews, nil
}

func (r *MySQLReviewRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE Reviews SET isApproved = ? WHERE id = ?`, approved, id)
	if err != nil {
		return fmt.Errorf("updating review approval: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("review %s not found", id))
	}
	return nil
}
