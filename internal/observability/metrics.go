package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the exchange's Prometheus collectors.
type Metrics struct {
	// Trades by operation (buy|sell) and result (ok|rejected)
	Trades *prometheus.CounterVec

	// Completed price-update ticks
	PriceTicks prometheus.Counter

	// User registrations (re-registrations included)
	Registrations prometheus.Counter
}

// NewMetrics registers the exchange collectors with the given registerer.
// Pass prometheus.DefaultRegisterer in main; tests use a fresh registry so
// repeated construction does not panic on duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Trades: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "exchange_trades_total",
			Help: "Trade attempts by operation and result.",
		}, []string{"operation", "result"}),
		PriceTicks: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_price_update_ticks_total",
			Help: "Completed background price-update ticks.",
		}),
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_users_registered_total",
			Help: "User registrations, including balance-resetting re-registrations.",
		}),
	}
}
