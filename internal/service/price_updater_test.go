package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
	"cryptobay/internal/observability"
	"cryptobay/internal/testutil"
)

func seedUpdaterAsset(t *testing.T, assets *testutil.MemAssetRepository, name, buy, sell string) {
	t.Helper()
	err := assets.Upsert(context.Background(), &domain.Asset{
		ID:           uuid.New(),
		Name:         name,
		BuyPrice:     decimal.RequireFromString(buy),
		SellPrice:    decimal.RequireFromString(sell),
		LastModified: time.Unix(0, 0),
	})
	if err != nil {
		t.Fatalf("seed asset: %v", err)
	}
}

func newTestUpdater(assets *testutil.MemAssetRepository, places int32) *PriceUpdater {
	return NewPriceUpdater(assets, observability.NewMetrics(prometheus.NewRegistry()), places)
}

func TestTick_PricesStayWithinMultiplierBounds(t *testing.T) {
	assets := testutil.NewMemAssetRepository()
	seedUpdaterAsset(t, assets, "bitcoin", "3000", "2000")
	seedUpdaterAsset(t, assets, "wipcoin", "30", "20")

	before := map[string]*domain.Asset{}
	all, _ := assets.GetAll(context.Background())
	for _, asset := range all {
		before[asset.Name] = asset
	}

	updater := newTestUpdater(assets, 4)
	if err := updater.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	after, _ := assets.GetAll(context.Background())
	for _, asset := range after {
		prev := before[asset.Name]

		lowBuy := prev.BuyPrice.Mul(decimal.RequireFromString("0.9")).Round(4)
		highBuy := prev.BuyPrice.Mul(decimal.RequireFromString("1.1")).Round(4)
		if asset.BuyPrice.LessThan(lowBuy) || asset.BuyPrice.GreaterThan(highBuy) {
			t.Errorf("%s buy price %s outside [%s, %s]", asset.Name, asset.BuyPrice, lowBuy, highBuy)
		}

		lowSell := prev.SellPrice.Mul(decimal.RequireFromString("0.9")).Round(4)
		highSell := prev.SellPrice.Mul(decimal.RequireFromString("1.1")).Round(4)
		if asset.SellPrice.LessThan(lowSell) || asset.SellPrice.GreaterThan(highSell) {
			t.Errorf("%s sell price %s outside [%s, %s]", asset.Name, asset.SellPrice, lowSell, highSell)
		}

		if asset.BuyPrice.Exponent() < -4 {
			t.Errorf("%s buy price %s has more than 4 decimal places", asset.Name, asset.BuyPrice)
		}
	}
}

func TestTick_DeterministicMultiplier(t *testing.T) {
	assets := testutil.NewMemAssetRepository()
	seedUpdaterAsset(t, assets, "bitcoin", "1000", "500")

	updater := newTestUpdater(assets, 4)
	updater.randFloat = func() float64 { return 0.5 } // multiplier exactly 1.0

	if err := updater.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	asset, err := assets.GetByName(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if !asset.BuyPrice.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("buy price = %s, want 1000 (multiplier 1.0)", asset.BuyPrice)
	}
	if !asset.SellPrice.Equal(decimal.RequireFromString("500")) {
		t.Errorf("sell price = %s, want 500 (multiplier 1.0)", asset.SellPrice)
	}
}

func TestTick_RoundsToConfiguredPlaces(t *testing.T) {
	assets := testutil.NewMemAssetRepository()
	seedUpdaterAsset(t, assets, "bitcoin", "100.123456", "50.987654")

	updater := newTestUpdater(assets, 4)
	updater.randFloat = func() float64 { return 0.5 }

	if err := updater.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	asset, _ := assets.GetByName(context.Background(), "bitcoin")
	if !asset.BuyPrice.Equal(decimal.RequireFromString("100.1235")) {
		t.Errorf("buy price = %s, want 100.1235", asset.BuyPrice)
	}
	if !asset.SellPrice.Equal(decimal.RequireFromString("50.9877")) {
		t.Errorf("sell price = %s, want 50.9877", asset.SellPrice)
	}
}

func TestTick_StampsLastModified(t *testing.T) {
	assets := testutil.NewMemAssetRepository()
	seedUpdaterAsset(t, assets, "bitcoin", "1000", "500")

	stamp := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	updater := newTestUpdater(assets, 4)
	updater.randFloat = func() float64 { return 0.5 }
	updater.now = func() time.Time { return stamp }

	if err := updater.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	asset, _ := assets.GetByName(context.Background(), "bitcoin")
	if !asset.LastModified.Equal(stamp) {
		t.Errorf("last modified = %v, want %v", asset.LastModified, stamp)
	}
}
