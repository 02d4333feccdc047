package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
)

// AssetRepositoryImpl implements the AssetRepository interface
type AssetRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(db *pgxpool.Pool) domain.AssetRepository {
	return &AssetRepositoryImpl{db: db}
}

// GetAll retrieves every listed asset
func (r *AssetRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Asset, error) {
	query := `
		SELECT id, name, buy_price::text, sell_price::text, last_modified
		FROM assets
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

// GetByName retrieves an asset by its unique name
func (r *AssetRepositoryImpl) GetByName(ctx context.Context, name string) (*domain.Asset, error) {
	query := `
		SELECT id, name, buy_price::text, sell_price::text, last_modified
		FROM assets
		WHERE name = $1
	`

	asset, err := scanAsset(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("asset %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get asset by name: %w", err)
	}

	return asset, nil
}

// Upsert creates an asset or, if the name exists, replaces its prices
func (r *AssetRepositoryImpl) Upsert(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (id, name, buy_price, sell_price, last_modified)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET buy_price = excluded.buy_price,
		    sell_price = excluded.sell_price,
		    last_modified = excluded.last_modified
	`

	_, err := r.db.Exec(ctx, query,
		asset.ID,
		asset.Name,
		asset.BuyPrice.String(),
		asset.SellPrice.String(),
		asset.LastModified,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert asset: %w", err)
	}

	return nil
}

// UpdatePrices sets both prices and the modification timestamp
func (r *AssetRepositoryImpl) UpdatePrices(ctx context.Context, name string, buy, sell decimal.Decimal, modified time.Time) error {
	query := `
		UPDATE assets
		SET buy_price = $1, sell_price = $2, last_modified = $3
		WHERE name = $4
	`

	_, err := r.db.Exec(ctx, query, buy.String(), sell.String(), modified, name)
	if err != nil {
		return fmt.Errorf("failed to update asset prices: %w", err)
	}

	return nil
}

// scanAsset reads one asset row; prices travel as text and are parsed into
// exact decimals.
func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var (
		asset     domain.Asset
		buyPrice  string
		sellPrice string
	)

	if err := row.Scan(&asset.ID, &asset.Name, &buyPrice, &sellPrice, &asset.LastModified); err != nil {
		return nil, err
	}

	var err error
	if asset.BuyPrice, err = decimal.NewFromString(buyPrice); err != nil {
		return nil, fmt.Errorf("invalid stored buy price %q: %w", buyPrice, err)
	}
	if asset.SellPrice, err = decimal.NewFromString(sellPrice); err != nil {
		return nil, fmt.Errorf("invalid stored sell price %q: %w", sellPrice, err)
	}

	return &asset, nil
}
