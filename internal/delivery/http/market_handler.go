package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"cryptobay/internal/delivery/http/dto"
	"cryptobay/internal/usecase"
)

// MarketHandler serves the asset listing and admin listing endpoints
type MarketHandler struct {
	exchange *usecase.ExchangeService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(exchange *usecase.ExchangeService) *MarketHandler {
	return &MarketHandler{exchange: exchange}
}

// ListAssets returns every listed asset with current prices
// GET /
func (h *MarketHandler) ListAssets(c echo.Context) error {
	assets, err := h.exchange.ListAssets(c.Request().Context())
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	output := make([]dto.AssetOutput, 0, len(assets))
	for _, asset := range assets {
		output = append(output, dto.AssetOutput{
			CryptoName:   asset.Name,
			BuyPrice:     asset.BuyPrice.String(),
			SellPrice:    asset.SellPrice.String(),
			LastModified: asset.LastModified.Format(time.RFC3339),
		})
	}

	return SuccessResponse(c, output)
}

// AddAsset lists a new asset or replaces an existing one's prices
// POST /add
func (h *MarketHandler) AddAsset(c echo.Context) error {
	var req dto.AddAssetRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "invalid request payload")
	}

	buyPrice, err := decimal.NewFromString(req.BuyPrice)
	if err != nil {
		return BadRequestResponse(c, "empty forms/args")
	}
	sellPrice, err := decimal.NewFromString(req.SellPrice)
	if err != nil {
		return BadRequestResponse(c, "empty forms/args")
	}

	asset, err := h.exchange.AddAsset(c.Request().Context(), req.CryptoName, buyPrice, sellPrice)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.AddAssetOutput{
		Added:     asset.Name,
		BuyPrice:  asset.BuyPrice.String(),
		SellPrice: asset.SellPrice.String(),
	})
}
