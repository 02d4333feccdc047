package configs

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Exchange ExchangeConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// ExchangeConfig holds the exchange's tunables
type ExchangeConfig struct {
	// Balance granted on registration
	StartingBalance decimal.Decimal

	// Interval between background price-update ticks
	PriceUpdateInterval time.Duration

	// Decimal places prices are rounded to after each tick
	PriceDecimalPlaces int32
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Exchange: ExchangeConfig{
			StartingBalance:     getEnvDecimal("STARTING_BALANCE", "5000"),
			PriceUpdateInterval: time.Duration(getEnvInt("PRICE_UPDATE_INTERVAL_SECONDS", 10)) * time.Second,
			PriceDecimalPlaces:  int32(getEnvInt("PRICE_DECIMAL_PLACES", 4)),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if parsed, err := decimal.NewFromString(value); err == nil {
			return parsed
		}
	}
	return decimal.RequireFromString(defaultValue)
}
