// Package scheduler drives the background jobs: periodic price refresh and
// the daily valuation snapshot. The host process starts and stops it
// explicitly; Stop waits for in-flight jobs so shutdown leaves no orphaned
// timers.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Mayank-31k/portfolio-tracker/internal/service"
)

// jobTimeout bounds a single scheduled run; a hung price source must not
// pile up overlapping refreshes.
const jobTimeout = 2 * time.Minute

// Scheduler owns the cron runner and the job wiring.
type Scheduler struct {
	cron             *cron.Cron
	portfolioService *service.PortfolioService
	snapshotService  *service.SnapshotService
}

// New creates a Scheduler with the refresh and snapshot jobs registered on
// the given cron schedules (standard 5-field specs or @every intervals).
func New(
	portfolioService *service.PortfolioService,
	snapshotService *service.SnapshotService,
	refreshSchedule, snapshotSchedule string,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:             cron.New(),
		portfolioService: portfolioService,
		snapshotService:  snapshotService,
	}

	if _, err := s.cron.AddFunc(refreshSchedule, s.refreshJob); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", refreshSchedule, err)
	}
	if _, err := s.cron.AddFunc(snapshotSchedule, s.snapshotJob); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", snapshotSchedule, err)
	}

	return s, nil
}

// Start begins running the scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and blocks until running jobs have finished.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// refreshJob refreshes prices for all open positions. A failed cycle keeps
// the previous prices and waits for the next tick; there is no retry storm.
func (s *Scheduler) refreshJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	summary, err := s.portfolioService.RefreshPrices(ctx)
	if err != nil {
		log.Printf("scheduled price refresh failed: %v", err)
		return
	}
	if len(summary.FailedTickers) > 0 {
		log.Printf("scheduled price refresh skipped tickers: %v", summary.FailedTickers)
	}
}

// snapshotJob records the daily portfolio valuation.
func (s *Scheduler) snapshotJob() {
	snapshot, err := s.snapshotService.CaptureSnapshot()
	if err != nil {
		log.Printf("scheduled snapshot capture failed: %v", err)
		return
	}
	log.Printf("captured snapshot for %s: value %.2f", snapshot.Date.Format("2006-01-02"), snapshot.TotalValue)
}
