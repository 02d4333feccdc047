package http

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"cryptobay/internal/delivery/http/dto"
	"cryptobay/internal/domain"
	"cryptobay/internal/usecase"
)

// TradeHandler serves the buy and sell endpoints
type TradeHandler struct {
	exchange *usecase.ExchangeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(exchange *usecase.ExchangeService) *TradeHandler {
	return &TradeHandler{exchange: exchange}
}

// Buy purchases an asset at its current buy price, guarded by the client's
// expected price.
// POST /:user/buy
func (h *TradeHandler) Buy(c echo.Context) error {
	userName, assetName, count, price, err := h.bindTrade(c)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	trade, err := h.exchange.Buy(c.Request().Context(), userName, assetName, count, price)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, tradeOutput(trade))
}

// Sell sells an asset at its current sell price, guarded by the client's
// expected price.
// POST /:user/sell
func (h *TradeHandler) Sell(c echo.Context) error {
	userName, assetName, count, price, err := h.bindTrade(c)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	trade, err := h.exchange.Sell(c.Request().Context(), userName, assetName, count, price)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, tradeOutput(trade))
}

// bindTrade extracts and parses the shared trade fields. Missing or
// unparseable count/price is an empty-input failure before any lookup.
func (h *TradeHandler) bindTrade(c echo.Context) (userName, assetName string, count, price decimal.Decimal, err error) {
	var req dto.TradeRequest
	if err = c.Bind(&req); err != nil {
		return "", "", decimal.Zero, decimal.Zero, domain.ErrEmptyInput
	}

	count, err = decimal.NewFromString(req.Count)
	if err != nil {
		return "", "", decimal.Zero, decimal.Zero, domain.ErrEmptyInput
	}
	price, err = decimal.NewFromString(req.Price)
	if err != nil {
		return "", "", decimal.Zero, decimal.Zero, domain.ErrEmptyInput
	}

	return c.Param("user"), req.CryptoName, count, price, nil
}

func tradeOutput(trade *domain.Trade) dto.TradeOutput {
	return dto.TradeOutput{
		UserName:       trade.UserName,
		Operation:      trade.Operation,
		Cryptocurrency: trade.AssetName,
		Count:          trade.Count.String(),
	}
}
