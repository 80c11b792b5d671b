package testutil

import (
	"database/sql"
	"testing"

	"github.com/Mayank-31k/portfolio-tracker/internal/repository"
	"github.com/Mayank-31k/portfolio-tracker/internal/service"
)

// NewTestPortfolioService wires a PortfolioService against the test database
// and the given quote source, with the account seeded at 10000.
func NewTestPortfolioService(t *testing.T, db *sql.DB, quotes service.QuoteSource) *service.PortfolioService {
	t.Helper()

	SeedAccount(t, db, 10000)

	return service.NewPortfolioService(
		repository.NewPositionRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewAccountRepository(db),
		quotes,
	)
}

// NewTestSnapshotService wires a SnapshotService on top of a freshly wired
// portfolio service.
func NewTestSnapshotService(t *testing.T, db *sql.DB, quotes service.QuoteSource) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewSnapshotRepository(db),
		NewTestPortfolioService(t, db, quotes),
	)
}

// NewTestAnalyticsService wires an AnalyticsService with a zero risk-free
// rate and the given benchmark symbol.
func NewTestAnalyticsService(t *testing.T, db *sql.DB, quotes service.QuoteSource, benchmark string) *service.AnalyticsService {
	t.Helper()

	return service.NewAnalyticsService(
		repository.NewSnapshotRepository(db),
		repository.NewPositionRepository(db),
		quotes,
		benchmark,
		0,
	)
}
