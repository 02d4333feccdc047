package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cryptobay/internal/domain"
	"cryptobay/internal/observability"
	"cryptobay/internal/service"
)

// ExchangeService is the trade engine: it validates and executes buys and
// sells against current prices, the user's balance, and the ledger, and
// serves the account operations around them.
//
// Concurrency note: operations are not serialized against each other or
// against the background price updater. The expected-price argument is the
// optimistic defense — a trade is rejected when the price the client saw is
// no longer the server price.
type ExchangeService struct {
	assetRepo  domain.AssetRepository
	userRepo   domain.UserRepository
	ledgerRepo domain.LedgerRepository
	portfolio  *service.PortfolioService
	metrics    *observability.Metrics
	logger     zerolog.Logger

	startingBalance decimal.Decimal
}

// NewExchangeService creates a new ExchangeService. startingBalance is the
// balance granted on registration.
func NewExchangeService(
	assetRepo domain.AssetRepository,
	userRepo domain.UserRepository,
	ledgerRepo domain.LedgerRepository,
	portfolio *service.PortfolioService,
	metrics *observability.Metrics,
	startingBalance decimal.Decimal,
) *ExchangeService {
	return &ExchangeService{
		assetRepo:       assetRepo,
		userRepo:        userRepo,
		ledgerRepo:      ledgerRepo,
		portfolio:       portfolio,
		metrics:         metrics,
		logger:          observability.NewLogger("exchange"),
		startingBalance: startingBalance,
	}
}

// Register creates a user with the starting balance. Registering an existing
// name resets the balance to the starting balance (upsert semantics,
// preserved deliberately — re-registration is an account reset).
func (s *ExchangeService) Register(ctx context.Context, userName string) (*domain.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, domain.ErrEmptyInput
	}

	user := &domain.User{
		ID:      uuid.New(),
		Name:    userName,
		Balance: s.startingBalance,
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.Registrations.Inc()
	s.logger.Info().Str("user", userName).Str("balance", user.Balance.String()).Msg("user registered")
	return user, nil
}

// Balance returns the user's current cash balance.
func (s *ExchangeService) Balance(ctx context.Context, userName string) (*domain.User, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, domain.ErrEmptyInput
	}
	return s.userRepo.GetByName(ctx, userName)
}

// ListAssets returns every listed asset with its current prices.
func (s *ExchangeService) ListAssets(ctx context.Context) ([]*domain.Asset, error) {
	return s.assetRepo.GetAll(ctx)
}

// AddAsset lists a new asset or replaces the prices of an existing one.
func (s *ExchangeService) AddAsset(ctx context.Context, name string, buyPrice, sellPrice decimal.Decimal) (*domain.Asset, error) {
	name = strings.TrimSpace(name)
	if name == "" || buyPrice.IsNegative() || sellPrice.IsNegative() {
		return nil, domain.ErrEmptyInput
	}

	asset := &domain.Asset{
		ID:           uuid.New(),
		Name:         name,
		BuyPrice:     buyPrice,
		SellPrice:    sellPrice,
		LastModified: time.Now(),
	}

	if err := s.assetRepo.Upsert(ctx, asset); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("asset", name).
		Str("buy_price", buyPrice.String()).
		Str("sell_price", sellPrice.String()).
		Msg("asset listed")
	return asset, nil
}

// Buy purchases count units of an asset at its current buy price.
// The funds check runs before the price check, so a stale price with
// insufficient funds surfaces as ErrInsufficientFunds.
func (s *ExchangeService) Buy(ctx context.Context, userName, assetName string, count, expectedPrice decimal.Decimal) (*domain.Trade, error) {
	trade, err := s.buy(ctx, userName, assetName, count, expectedPrice)
	s.observeTrade(domain.OperationBuy, userName, assetName, err)
	return trade, err
}

func (s *ExchangeService) buy(ctx context.Context, userName, assetName string, count, expectedPrice decimal.Decimal) (*domain.Trade, error) {
	if err := validateTradeInput(userName, assetName, count, expectedPrice); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.GetByName(ctx, assetName)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByName(ctx, userName)
	if err != nil {
		return nil, err
	}

	totalPrice := asset.BuyPrice.Mul(count)
	if totalPrice.GreaterThan(user.Balance) {
		return nil, domain.ErrInsufficientFunds
	}
	if !expectedPrice.Equal(asset.BuyPrice) {
		return nil, domain.ErrPriceChanged
	}

	if err := s.userRepo.UpdateBalance(ctx, userName, user.Balance.Sub(totalPrice)); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		UserName:  userName,
		Operation: domain.OperationBuy,
		AssetName: assetName,
		Count:     count,
		CreatedAt: time.Now(),
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	return &domain.Trade{
		UserName:  userName,
		Operation: domain.OperationBuy,
		AssetName: assetName,
		Count:     count,
	}, nil
}

// Sell sells count units of an asset at its current sell price. Holdings are
// derived from the ledger, and both the holdings check and the price check
// run before any mutation: a failed sell never moves the balance.
func (s *ExchangeService) Sell(ctx context.Context, userName, assetName string, count, expectedPrice decimal.Decimal) (*domain.Trade, error) {
	trade, err := s.sell(ctx, userName, assetName, count, expectedPrice)
	s.observeTrade(domain.OperationSell, userName, assetName, err)
	return trade, err
}

func (s *ExchangeService) sell(ctx context.Context, userName, assetName string, count, expectedPrice decimal.Decimal) (*domain.Trade, error) {
	if err := validateTradeInput(userName, assetName, count, expectedPrice); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.GetByName(ctx, assetName)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByName(ctx, userName)
	if err != nil {
		return nil, err
	}

	holdings, err := s.portfolio.ComputeAsset(ctx, userName, assetName)
	if err != nil {
		return nil, err
	}
	if count.GreaterThan(holdings) {
		return nil, domain.ErrInsufficientHoldings
	}
	if !expectedPrice.Equal(asset.SellPrice) {
		return nil, domain.ErrPriceChanged
	}

	proceeds := asset.SellPrice.Mul(count)
	if err := s.userRepo.UpdateBalance(ctx, userName, user.Balance.Add(proceeds)); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		UserName:  userName,
		Operation: domain.OperationSell,
		AssetName: assetName,
		Count:     count,
		CreatedAt: time.Now(),
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	return &domain.Trade{
		UserName:  userName,
		Operation: domain.OperationSell,
		AssetName: assetName,
		Count:     count,
	}, nil
}

// Portfolio returns the user's net holdings per asset, positives only.
func (s *ExchangeService) Portfolio(ctx context.Context, userName string) (map[string]decimal.Decimal, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, domain.ErrEmptyInput
	}
	return s.portfolio.Compute(ctx, userName)
}

// History returns up to limit ledger entries for the user with ID strictly
// greater than limit*page, ascending. This value-range paging assumes dense
// sequential ledger IDs.
func (s *ExchangeService) History(ctx context.Context, userName string, limit, page int) ([]*domain.LedgerEntry, error) {
	if strings.TrimSpace(userName) == "" || limit < 0 || page < 0 {
		return nil, domain.ErrEmptyInput
	}
	return s.ledgerRepo.ListByUser(ctx, userName, int64(limit)*int64(page), limit)
}

func (s *ExchangeService) observeTrade(operation, userName, assetName string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
		s.logger.Warn().
			Err(err).
			Str("operation", operation).
			Str("user", userName).
			Str("asset", assetName).
			Msg("trade rejected")
	} else {
		s.logger.Info().
			Str("operation", operation).
			Str("user", userName).
			Str("asset", assetName).
			Msg("trade executed")
	}
	s.metrics.Trades.WithLabelValues(operation, result).Inc()
}

func validateTradeInput(userName, assetName string, count, expectedPrice decimal.Decimal) error {
	if strings.TrimSpace(userName) == "" || strings.TrimSpace(assetName) == "" {
		return domain.ErrEmptyInput
	}
	if !count.IsPositive() || expectedPrice.IsNegative() {
		return domain.ErrEmptyInput
	}
	return nil
}
