package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
)

// LedgerRepositoryImpl implements the LedgerRepository interface
type LedgerRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) domain.LedgerRepository {
	return &LedgerRepositoryImpl{db: db}
}

// Append records a buy or sell; the entry's ID is assigned by storage
func (r *LedgerRepositoryImpl) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (user_name, operation, asset_name, count, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		entry.UserName,
		entry.Operation,
		entry.AssetName,
		entry.Count.String(),
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return nil
}

// ListByUser retrieves up to limit entries for a user with ID strictly
// greater than afterID, ascending. Callers page with afterID = limit*page;
// this assumes dense sequential IDs, so gaps distort page boundaries.
func (r *LedgerRepositoryImpl) ListByUser(ctx context.Context, userName string, afterID int64, limit int) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, user_name, operation, asset_name, count::text, created_at
		FROM ledger_entries
		WHERE user_name = $1 AND id > $2
		ORDER BY id ASC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userName, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListForPortfolio retrieves all entries for a user, optionally restricted
// to one asset (empty assetName means all assets)
func (r *LedgerRepositoryImpl) ListForPortfolio(ctx context.Context, userName, assetName string) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, user_name, operation, asset_name, count::text, created_at
		FROM ledger_entries
		WHERE user_name = $1 AND ($2 = '' OR asset_name = $2)
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, userName, assetName)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for rows.Next() {
		var (
			entry domain.LedgerEntry
			count string
		)
		err := rows.Scan(
			&entry.ID,
			&entry.UserName,
			&entry.Operation,
			&entry.AssetName,
			&count,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		if entry.Count, err = decimal.NewFromString(count); err != nil {
			return nil, fmt.Errorf("invalid stored count %q: %w", count, err)
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, nil
}
