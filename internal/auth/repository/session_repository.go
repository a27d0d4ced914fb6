package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type MySQLSessionRepository struct {
	db *sql.DB
}

func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}

func (r *MySQLSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `INSERT INTO Sessions (token, userId, expiresAt, createdAt) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		session.Token, session.UserID, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *MySQLSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `SELECT token, userId, expiresAt, createdAt FROM Sessions WHERE token = ?`

	var session domain.Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.Token, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying session by token: %w", err)
	}

	return &session, nil
}

func (r *MySQLSessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM Sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
