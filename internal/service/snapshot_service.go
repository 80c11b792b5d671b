package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/Mayank-31k/portfolio-tracker/internal/model"
	"github.com/Mayank-31k/portfolio-tracker/internal/repository"
)

// SnapshotService records daily portfolio valuations and serves the history
// series the analytics engine consumes. Snapshot values cover open positions
// only; cash is excluded by convention, enforced here at the single place
// where snapshots are created.
type SnapshotService struct {
	snapshotRepo     *repository.SnapshotRepository
	portfolioService *PortfolioService
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	portfolioService *PortfolioService,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:     snapshotRepo,
		portfolioService: portfolioService,
	}
}

// CaptureSnapshot values the portfolio at its stored prices and records
// today's snapshot. Running it more than once per day replaces the day's
// record, keeping the series at one point per calendar date.
func (s *SnapshotService) CaptureSnapshot() (model.Snapshot, error) {
	summary, err := s.portfolioService.Summarize()
	if err != nil {
		return model.Snapshot{}, err
	}

	snapshot := model.Snapshot{
		ID:              uuid.New().String(),
		Date:            time.Now().UTC().Truncate(24 * time.Hour),
		TotalValue:      summary.TotalValue,
		TotalCost:       summary.TotalCostBasis,
		TotalPnL:        summary.TotalPnL,
		TotalPnLPercent: summary.TotalPnLPercent,
	}

	if err := s.snapshotRepo.AppendSnapshot(snapshot); err != nil {
		return model.Snapshot{}, err
	}

	return snapshot, nil
}

// GetHistory returns the snapshots of the last N days, ascending by date.
// A days value <= 0 returns the whole series.
func (s *SnapshotService) GetHistory(days int) ([]model.Snapshot, error) {
	var since time.Time
	if days > 0 {
		since = time.Now().UTC().AddDate(0, 0, -days)
	}
	return s.snapshotRepo.ListSnapshots(since)
}
