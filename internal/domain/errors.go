package domain

import "errors"

// Sentinel errors for the exchange. Handlers map these to client status
// codes; everything else is a server error.
var (
	// ErrEmptyInput means a required field is missing or malformed.
	// Detected before any lookup.
	ErrEmptyInput = errors.New("empty forms/args")

	// ErrInsufficientFunds means a buy's total price exceeds the user's balance.
	ErrInsufficientFunds = errors.New("not enough money")

	// ErrInsufficientHoldings means a sell's count exceeds the user's net holdings.
	ErrInsufficientHoldings = errors.New("insufficient holdings, operation aborted")

	// ErrPriceChanged means the client's expected price no longer matches the
	// server price (stale optimistic check).
	ErrPriceChanged = errors.New("price has changed, operation aborted")

	// ErrNotFound means an unknown user or asset.
	ErrNotFound = errors.New("not found")
)
