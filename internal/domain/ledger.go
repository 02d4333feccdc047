package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation constants for ledger entries
const (
	OperationBuy  = "buy"
	OperationSell = "sell"
)

// LedgerEntry is one immutable buy or sell record. Entries are append-only
// and ordered by their monotonic ID; the ledger is the source of truth for
// holdings.
type LedgerEntry struct {
	ID        int64           `json:"id"`
	UserName  string          `json:"user_name"`
	Operation string          `json:"operation"`
	AssetName string          `json:"crypto_name"`
	Count     decimal.Decimal `json:"count"`
	CreatedAt time.Time       `json:"created_at"`
}

// Trade is the result of a successful buy or sell.
type Trade struct {
	UserName  string          `json:"username"`
	Operation string          `json:"operation"`
	AssetName string          `json:"cryptocurrency"`
	Count     decimal.Decimal `json:"count"`
}
