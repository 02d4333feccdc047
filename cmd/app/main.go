package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"cryptobay/configs"
	"cryptobay/internal/database"
	delivery "cryptobay/internal/delivery/http"
	"cryptobay/internal/infra"
	"cryptobay/internal/observability"
	"cryptobay/internal/repository"
	"cryptobay/internal/service"
	"cryptobay/internal/usecase"
)

func main() {
	logger := observability.NewLogger("main")

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg(".env file not found, using environment variables")
	}

	cfg := configs.Load()
	ctx := context.Background()

	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	logger.Info().Msg("database connected")

	if err := database.RunMigrations(ctx, db, observability.NewLogger("migrations")); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	assetRepo := repository.NewAssetRepository(db)
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	portfolio := service.NewPortfolioService(ledgerRepo)
	exchange := usecase.NewExchangeService(
		assetRepo,
		userRepo,
		ledgerRepo,
		portfolio,
		metrics,
		cfg.Exchange.StartingBalance,
	)

	updater := service.NewPriceUpdater(assetRepo, metrics, cfg.Exchange.PriceDecimalPlaces)
	scheduler := infra.NewScheduler(updater, cfg.Exchange.PriceUpdateInterval)
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start price update scheduler")
	}
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true
	delivery.SetupRoutes(e, &delivery.RouterConfig{
		MarketHandler: delivery.NewMarketHandler(exchange),
		UserHandler:   delivery.NewUserHandler(exchange),
		TradeHandler:  delivery.NewTradeHandler(exchange),
		DB:            db,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().
		Str("addr", addr).
		Str("env", cfg.Server.Env).
		Str("starting_balance", cfg.Exchange.StartingBalance.String()).
		Dur("price_update_interval", cfg.Exchange.PriceUpdateInterval).
		Msg("starting server")

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}
