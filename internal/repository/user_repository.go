package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Upsert creates a user or, if the name exists, resets the balance.
// Re-registration deliberately overwrites the balance with the caller's
// value; see the exchange service for the semantics.
func (r *UserRepositoryImpl) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET balance = excluded.balance
	`

	_, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Balance.String())
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// GetByName retrieves a user by name
func (r *UserRepositoryImpl) GetByName(ctx context.Context, name string) (*domain.User, error) {
	query := `
		SELECT id, name, balance::text
		FROM users
		WHERE name = $1
	`

	var (
		user    domain.User
		balance string
	)
	err := r.db.QueryRow(ctx, query, name).Scan(&user.ID, &user.Name, &balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	if user.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("invalid stored balance %q: %w", balance, err)
	}

	return &user, nil
}

// UpdateBalance sets a user's balance
func (r *UserRepositoryImpl) UpdateBalance(ctx context.Context, name string, balance decimal.Decimal) error {
	query := `
		UPDATE users
		SET balance = $1
		WHERE name = $2
	`

	_, err := r.db.Exec(ctx, query, balance.String(), name)
	if err != nil {
		return fmt.Errorf("failed to update user balance: %w", err)
	}

	return nil
}
