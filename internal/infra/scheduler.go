package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"cryptobay/internal/observability"
	"cryptobay/internal/service"
)

// Scheduler runs the price updater on a fixed interval for the lifetime of
// the process.
type Scheduler struct {
	cron     *cron.Cron
	updater  *service.PriceUpdater
	interval time.Duration
	logger   zerolog.Logger
}

// NewScheduler creates a new scheduler ticking the price updater every
// interval.
func NewScheduler(updater *service.PriceUpdater, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		updater:  updater,
		interval: interval,
		logger:   observability.NewLogger("scheduler"),
	}
}

// Start registers the price-update job and starts the cron loop.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)

	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		if err := s.updater.Tick(ctx); err != nil {
			s.logger.Error().Err(err).Msg("price update tick failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add price update job: %w", err)
	}

	s.cron.Start()
	s.logger.Info().Dur("interval", s.interval).Msg("price update scheduler started")
	return nil
}

// Stop stops the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("scheduler stopped")
}
