package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger is the slice of the connection pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	MarketHandler *MarketHandler
	UserHandler   *UserHandler
	TradeHandler  *TradeHandler
	DB            Pinger
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for scrape/probe endpoints to reduce noise
			path := c.Request().URL.Path
			return path == "/health" || path == "/metrics"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		dbStatus := "healthy"
		if err := config.DB.Ping(ctx); err != nil {
			dbStatus = "unhealthy"
		}

		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "cryptobay",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/", config.MarketHandler.ListAssets)
	e.POST("/add", config.MarketHandler.AddAsset)
	e.POST("/register", config.UserHandler.Register)

	user := e.Group("/:user")
	{
		user.GET("/balance", config.UserHandler.Balance)
		user.GET("/portfolio", config.UserHandler.Portfolio)
		user.GET("/history", config.UserHandler.History)
		user.POST("/buy", config.TradeHandler.Buy)
		user.POST("/sell", config.TradeHandler.Sell)
	}
}
