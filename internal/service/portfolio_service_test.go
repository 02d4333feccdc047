package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
	"cryptobay/internal/service"
	"cryptobay/internal/testutil"
)

func appendEntry(t *testing.T, ledger *testutil.MemLedgerRepository, user, op, asset, count string) {
	t.Helper()
	err := ledger.Append(context.Background(), &domain.LedgerEntry{
		UserName:  user,
		Operation: op,
		AssetName: asset,
		Count:     decimal.RequireFromString(count),
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("append entry: %v", err)
	}
}

func TestCompute_SignedAccumulation(t *testing.T) {
	ledger := testutil.NewMemLedgerRepository()
	portfolio := service.NewPortfolioService(ledger)

	appendEntry(t, ledger, "keks", domain.OperationBuy, "bitcoin", "2.5")
	appendEntry(t, ledger, "keks", domain.OperationBuy, "bitcoin", "1.5")
	appendEntry(t, ledger, "keks", domain.OperationSell, "bitcoin", "1")
	appendEntry(t, ledger, "keks", domain.OperationBuy, "wipcoin", "7")

	holdings, err := portfolio.Compute(context.Background(), "keks")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if got := holdings["bitcoin"]; !got.Equal(decimal.RequireFromString("3")) {
		t.Errorf("bitcoin = %s, want 3", got)
	}
	if got := holdings["wipcoin"]; !got.Equal(decimal.RequireFromString("7")) {
		t.Errorf("wipcoin = %s, want 7", got)
	}
}

func TestCompute_OmitsNonPositive(t *testing.T) {
	ledger := testutil.NewMemLedgerRepository()
	portfolio := service.NewPortfolioService(ledger)

	appendEntry(t, ledger, "keks", domain.OperationBuy, "bitcoin", "2")
	appendEntry(t, ledger, "keks", domain.OperationSell, "bitcoin", "2")
	appendEntry(t, ledger, "keks", domain.OperationSell, "wipcoin", "1")

	holdings, err := portfolio.Compute(context.Background(), "keks")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(holdings) != 0 {
		t.Errorf("holdings = %v, want empty (zero and negative nets omitted)", holdings)
	}
}

func TestCompute_IgnoresOtherUsers(t *testing.T) {
	ledger := testutil.NewMemLedgerRepository()
	portfolio := service.NewPortfolioService(ledger)

	appendEntry(t, ledger, "keks", domain.OperationBuy, "bitcoin", "1")
	appendEntry(t, ledger, "mems", domain.OperationBuy, "bitcoin", "9")

	holdings, err := portfolio.Compute(context.Background(), "keks")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if got := holdings["bitcoin"]; !got.Equal(decimal.RequireFromString("1")) {
		t.Errorf("bitcoin = %s, want 1", got)
	}
}

func TestComputeAsset_SingleAsset(t *testing.T) {
	ledger := testutil.NewMemLedgerRepository()
	portfolio := service.NewPortfolioService(ledger)

	appendEntry(t, ledger, "keks", domain.OperationBuy, "bitcoin", "4")
	appendEntry(t, ledger, "keks", domain.OperationSell, "bitcoin", "1")
	appendEntry(t, ledger, "keks", domain.OperationBuy, "wipcoin", "2")

	got, err := portfolio.ComputeAsset(context.Background(), "keks", "bitcoin")
	if err != nil {
		t.Fatalf("ComputeAsset: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("3")) {
		t.Errorf("bitcoin = %s, want 3", got)
	}

	got, err = portfolio.ComputeAsset(context.Background(), "keks", "nocoin")
	if err != nil {
		t.Fatalf("ComputeAsset: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("nocoin = %s, want 0", got)
	}
}
