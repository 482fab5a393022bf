// Package scheduler runs the daily stock-health sweep: it walks the
// inventory, derives each drug's status and publishes the low-stock and
// expired counts so dashboards and alerts can watch them drift.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/domain"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/interfaces"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/logging"
	"github.com/abrahamolatubosun1973/pharma-track-ngo-care/metrics"
)

// Compile-time check to ensure Scheduler implements the Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler owns the cron instance and the store it sweeps.
type Scheduler struct {
	store     interfaces.DataStore
	scheduler *gocron.Scheduler
}

// NewScheduler creates a scheduler bound to the given store.
func NewScheduler(store interfaces.DataStore) *Scheduler {
	return &Scheduler{
		store:     store,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start runs an immediate sweep so the gauges are populated from boot, then
// schedules the daily run at 06:00.
func (s *Scheduler) Start() error {
	s.sweep()

	_, err := s.scheduler.Every(1).Days().At("06:00").Do(s.sweep)
	if err != nil {
		logging.Error("Failed to schedule stock-health sweep", "error", err)
		return fmt.Errorf("failed to schedule stock-health sweep: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sweep derives every drug's status as of today and publishes the counts.
func (s *Scheduler) sweep() {
	start := time.Now()
	today := start

	var low, expired int
	drugs := s.store.Drugs()
	for _, d := range drugs {
		switch domain.StatusOf(d, today) {
		case domain.StatusLow:
			low++
		case domain.StatusExpired:
			expired++
		}
	}

	metrics.DrugsLowStock.Set(float64(low))
	metrics.DrugsExpired.Set(float64(expired))

	logging.Info("Stock-health sweep completed",
		"drugs", len(drugs),
		"low_stock", low,
		"expired", expired,
		"duration", time.Since(start).String(),
	)

	if expired > 0 {
		logging.Warn("Expired drugs present in inventory", "count", expired)
	}
}
