package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/errors"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

const userColumns = `id, email, name, role, profileImage, phone, isActive, createdAt, updatedAt`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Role,
		&user.ProfileImage, &user.Phone, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM Users WHERE id = ?`, userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}
	return user, nil
}

func (r *MySQLUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM Users ORDER BY createdAt DESC`, userColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO Users (id, email, name, role, profileImage, phone, isActive, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Role,
		user.ProfileImage, user.Phone, user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *MySQLUserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return r.update(ctx, id, `UPDATE Users SET role = ?, updatedAt = NOW() WHERE id = ?`, role)
}

func (r *MySQLUserRepository) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	return r.update(ctx, id, `UPDATE Users SET isActive = ?, updatedAt = NOW() WHERE id = ?`, isActive)
}

func (r *MySQLUserRepository) UpdateProfile(ctx context.Context, id string, name, phone, profileImage *string) error {
	query := `
		UPDATE Users
		SET name = COALESCE(?, name),
		    phone = COALESCE(?, phone),
		    profileImage = COALESCE(?, profileImage),
		    updatedAt = NOW()
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, name, phone, profileImage, id)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return r.checkAffected(result, id)
}

func (r *MySQLUserRepository) update(ctx context.Context, id, query string, value interface{}) error {
	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return r.checkAffected(result, id)
}

func (r *MySQLUserRepository) checkAffected(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	return nil
}
