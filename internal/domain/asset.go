package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset represents a tradeable cryptocurrency with independent buy and sell
// prices. Prices are exact decimals; they are mutated only by the price
// updater or an admin upsert, never deleted.
type Asset struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"crypto_name"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	LastModified time.Time       `json:"last_modified"`
}
