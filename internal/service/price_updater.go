package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
	"cryptobay/internal/observability"
)

// PriceUpdater perturbs every asset's prices on each tick: buy and sell
// prices are multiplied by independent uniform factors in [0.9, 1.1] and
// rounded to a fixed number of places. There is no clamping, so prices walk
// arbitrarily far from their seeds over time.
type PriceUpdater struct {
	assetRepo domain.AssetRepository
	metrics   *observability.Metrics
	logger    zerolog.Logger
	places    int32

	// Injection points for tests
	randFloat func() float64
	now       func() time.Time
}

// NewPriceUpdater creates a new PriceUpdater rounding to the given number of
// decimal places.
func NewPriceUpdater(assetRepo domain.AssetRepository, metrics *observability.Metrics, places int32) *PriceUpdater {
	return &PriceUpdater{
		assetRepo: assetRepo,
		metrics:   metrics,
		logger:    observability.NewLogger("price_updater"),
		places:    places,
		randFloat: rand.Float64,
		now:       time.Now,
	}
}

// Tick applies one round of random price mutation to every asset. The cron
// scheduler calls this on the configured interval; tests and the manual
// trigger endpoint call it directly.
func (u *PriceUpdater) Tick(ctx context.Context) error {
	assets, err := u.assetRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, asset := range assets {
		buy := asset.BuyPrice.Mul(u.multiplier()).Round(u.places)
		sell := asset.SellPrice.Mul(u.multiplier()).Round(u.places)

		if err := u.assetRepo.UpdatePrices(ctx, asset.Name, buy, sell, u.now()); err != nil {
			u.logger.Error().Err(err).Str("asset", asset.Name).Msg("failed to update prices")
			continue
		}

		u.logger.Debug().
			Str("asset", asset.Name).
			Str("buy_price", buy.String()).
			Str("sell_price", sell.String()).
			Msg("prices updated")
	}

	u.metrics.PriceTicks.Inc()
	return nil
}

// multiplier draws a uniform factor in [0.9, 1.1].
func (u *PriceUpdater) multiplier() decimal.Decimal {
	return decimal.NewFromFloat(0.9 + u.randFloat()*0.2)
}
