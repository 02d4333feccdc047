package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a registered account holding a cash balance.
// Balance is mutated only by the exchange service.
type User struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"user_name"`
	Balance decimal.Decimal `json:"balance"`
}
