package dto

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	UserName string `json:"user_name" form:"user_name"`
}

// TradeRequest represents a buy or sell request payload. Count and price
// arrive as strings and are parsed into exact decimals by the handler.
type TradeRequest struct {
	CryptoName string `json:"crypto_name" form:"crypto_name"`
	Count      string `json:"count" form:"count"`
	Price      string `json:"price" form:"price"`
}

// AddAssetRequest represents the admin listing request payload
type AddAssetRequest struct {
	CryptoName string `json:"crypto_name" form:"crypto_name"`
	BuyPrice   string `json:"buy_price" form:"buy_price"`
	SellPrice  string `json:"sell_price" form:"sell_price"`
}

// AssetOutput represents an asset in API responses
type AssetOutput struct {
	CryptoName   string `json:"crypto_name"`
	BuyPrice     string `json:"buy_price"`
	SellPrice    string `json:"sell_price"`
	LastModified string `json:"last_modified"`
}

// RegisterOutput represents a completed registration
type RegisterOutput struct {
	RegisteredUser string `json:"registered_user"`
}

// BalanceOutput represents a user's cash balance
type BalanceOutput struct {
	UserName string `json:"user_name"`
	Balance  string `json:"balance"`
}

// TradeOutput represents a completed trade
type TradeOutput struct {
	UserName       string `json:"username"`
	Operation      string `json:"operation"`
	Cryptocurrency string `json:"cryptocurrency"`
	Count          string `json:"count"`
}

// LedgerEntryOutput represents one history row
type LedgerEntryOutput struct {
	ID         int64  `json:"id"`
	UserName   string `json:"user_name"`
	Operation  string `json:"operation"`
	CryptoName string `json:"crypto_name"`
	Count      string `json:"count"`
	CreatedAt  string `json:"created_at"`
}

// AddAssetOutput echoes the listed asset's fields
type AddAssetOutput struct {
	Added     string `json:"added"`
	BuyPrice  string `json:"buy_price"`
	SellPrice string `json:"sell_price"`
}
