package service

import (
	"context"

	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
)

// PortfolioService derives net holdings from the ledger. It is a pure read:
// every call rescans the matching entries, so the result is always consistent
// with the ledger at the cost of O(ledger size) per query.
type PortfolioService struct {
	ledgerRepo domain.LedgerRepository
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(ledgerRepo domain.LedgerRepository) *PortfolioService {
	return &PortfolioService{ledgerRepo: ledgerRepo}
}

// Compute returns the user's net holdings per asset. Buys add to the count,
// sells subtract; only strictly positive nets appear in the result.
func (s *PortfolioService) Compute(ctx context.Context, userName string) (map[string]decimal.Decimal, error) {
	return s.compute(ctx, userName, "")
}

// ComputeAsset returns the user's net holdings of a single asset, zero if
// the user never traded it or traded it down to nothing.
func (s *PortfolioService) ComputeAsset(ctx context.Context, userName, assetName string) (decimal.Decimal, error) {
	holdings, err := s.compute(ctx, userName, assetName)
	if err != nil {
		return decimal.Zero, err
	}
	return holdings[assetName], nil
}

func (s *PortfolioService) compute(ctx context.Context, userName, assetName string) (map[string]decimal.Decimal, error) {
	entries, err := s.ledgerRepo.ListForPortfolio(ctx, userName, assetName)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		switch entry.Operation {
		case domain.OperationBuy:
			counts[entry.AssetName] = counts[entry.AssetName].Add(entry.Count)
		case domain.OperationSell:
			counts[entry.AssetName] = counts[entry.AssetName].Sub(entry.Count)
		}
	}

	holdings := make(map[string]decimal.Decimal, len(counts))
	for name, count := range counts {
		if count.IsPositive() {
			holdings[name] = count
		}
	}

	return holdings, nil
}
