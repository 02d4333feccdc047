package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AssetRepository defines the interface for asset data operations
type AssetRepository interface {
	// GetAll retrieves every listed asset
	GetAll(ctx context.Context) ([]*Asset, error)

	// GetByName retrieves an asset by its unique name
	GetByName(ctx context.Context, name string) (*Asset, error)

	// Upsert creates an asset or, if the name exists, replaces its prices
	Upsert(ctx context.Context, asset *Asset) error

	// UpdatePrices sets both prices and the modification timestamp
	UpdatePrices(ctx context.Context, name string, buy, sell decimal.Decimal, modified time.Time) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Upsert creates a user or, if the name exists, resets the balance
	Upsert(ctx context.Context, user *User) error

	// GetByName retrieves a user by name
	GetByName(ctx context.Context, name string) (*User, error)

	// UpdateBalance sets a user's balance
	UpdateBalance(ctx context.Context, name string, balance decimal.Decimal) error
}

// LedgerRepository defines the interface for the append-only trade ledger
type LedgerRepository interface {
	// Append records a buy or sell; the entry's ID is assigned by storage
	Append(ctx context.Context, entry *LedgerEntry) error

	// ListByUser retrieves up to limit entries for a user with ID strictly
	// greater than afterID, ascending
	ListByUser(ctx context.Context, userName string, afterID int64, limit int) ([]*LedgerEntry, error)

	// ListForPortfolio retrieves all entries for a user, optionally
	// restricted to one asset (empty assetName means all assets)
	ListForPortfolio(ctx context.Context, userName, assetName string) ([]*LedgerEntry, error)
}
