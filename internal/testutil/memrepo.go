// Package testutil provides in-memory implementations of the repository
// interfaces so service and handler tests run without a database.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
)

// MemAssetRepository is an in-memory AssetRepository
type MemAssetRepository struct {
	mu     sync.Mutex
	assets map[string]*domain.Asset
}

// NewMemAssetRepository creates an empty in-memory asset store
func NewMemAssetRepository() *MemAssetRepository {
	return &MemAssetRepository{assets: make(map[string]*domain.Asset)}
}

// GetAll retrieves every asset, sorted by name like the SQL implementation
func (r *MemAssetRepository) GetAll(ctx context.Context) ([]*domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.assets))
	for name := range r.assets {
		names = append(names, name)
	}
	sort.Strings(names)

	assets := make([]*domain.Asset, 0, len(names))
	for _, name := range names {
		copied := *r.assets[name]
		assets = append(assets, &copied)
	}
	return assets, nil
}

// GetByName retrieves an asset by name
func (r *MemAssetRepository) GetByName(ctx context.Context, name string) (*domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	asset, ok := r.assets[name]
	if !ok {
		return nil, fmt.Errorf("asset %q: %w", name, domain.ErrNotFound)
	}
	copied := *asset
	return &copied, nil
}

// Upsert creates or replaces an asset keyed by name
func (r *MemAssetRepository) Upsert(ctx context.Context, asset *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *asset
	if existing, ok := r.assets[asset.Name]; ok {
		copied.ID = existing.ID
	}
	r.assets[asset.Name] = &copied
	return nil
}

// UpdatePrices sets both prices and the modification timestamp
func (r *MemAssetRepository) UpdatePrices(ctx context.Context, name string, buy, sell decimal.Decimal, modified time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	asset, ok := r.assets[name]
	if !ok {
		return fmt.Errorf("asset %q: %w", name, domain.ErrNotFound)
	}
	asset.BuyPrice = buy
	asset.SellPrice = sell
	asset.LastModified = modified
	return nil
}

// MemUserRepository is an in-memory UserRepository
type MemUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMemUserRepository creates an empty in-memory user store
func NewMemUserRepository() *MemUserRepository {
	return &MemUserRepository{users: make(map[string]*domain.User)}
}

// Upsert creates a user or resets an existing user's balance
func (r *MemUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	if existing, ok := r.users[user.Name]; ok {
		copied.ID = existing.ID
	}
	r.users[user.Name] = &copied
	return nil
}

// GetByName retrieves a user by name
func (r *MemUserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[name]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", name, domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

// UpdateBalance sets a user's balance
func (r *MemUserRepository) UpdateBalance(ctx context.Context, name string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[name]
	if !ok {
		return fmt.Errorf("user %q: %w", name, domain.ErrNotFound)
	}
	user.Balance = balance
	return nil
}

// MemLedgerRepository is an in-memory LedgerRepository assigning dense
// sequential IDs starting at 1, like BIGSERIAL.
type MemLedgerRepository struct {
	mu      sync.Mutex
	entries []*domain.LedgerEntry
	nextID  int64
}

// NewMemLedgerRepository creates an empty in-memory ledger
func NewMemLedgerRepository() *MemLedgerRepository {
	return &MemLedgerRepository{nextID: 1}
}

// Append records an entry and assigns its ID
func (r *MemLedgerRepository) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

// ListByUser retrieves up to limit entries for a user with ID > afterID
func (r *MemLedgerRepository) ListByUser(ctx context.Context, userName string, afterID int64, limit int) ([]*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		return nil, nil
	}

	var result []*domain.LedgerEntry
	for _, entry := range r.entries {
		if entry.UserName != userName || entry.ID <= afterID {
			continue
		}
		copied := *entry
		result = append(result, &copied)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// ListForPortfolio retrieves all entries for a user, optionally one asset
func (r *MemLedgerRepository) ListForPortfolio(ctx context.Context, userName, assetName string) ([]*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.LedgerEntry
	for _, entry := range r.entries {
		if entry.UserName != userName {
			continue
		}
		if assetName != "" && entry.AssetName != assetName {
			continue
		}
		copied := *entry
		result = append(result, &copied)
	}
	return result, nil
}
