package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Mayank-31k/portfolio-tracker/internal/model"
	"github.com/Mayank-31k/portfolio-tracker/internal/repository"
)

// MakeID generates a unique identifier for test entities.
func MakeID() string {
	return uuid.New().String()
}

// PositionBuilder provides a fluent interface for seeding test positions.
//
// Example usage:
//
//	position := testutil.NewPosition("AAPL").
//	    WithQuantity(10).
//	    WithAvgCost(150).
//	    WithLastPrice(160).
//	    Build(t, db)
type PositionBuilder struct {
	Ticker    string
	Quantity  float64
	AvgCost   float64
	LastPrice *float64
	Name      string
	Currency  string
}

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition(ticker string) *PositionBuilder {
	return &PositionBuilder{
		Ticker:   ticker,
		Quantity: 10,
		AvgCost:  100,
		Name:     ticker + " Inc.",
		Currency: "USD",
	}
}

// WithQuantity sets the position size.
func (b *PositionBuilder) WithQuantity(quantity float64) *PositionBuilder {
	b.Quantity = quantity
	return b
}

// WithAvgCost sets the average cost per unit.
func (b *PositionBuilder) WithAvgCost(avgCost float64) *PositionBuilder {
	b.AvgCost = avgCost
	return b
}

// WithLastPrice sets the cached market price.
func (b *PositionBuilder) WithLastPrice(price float64) *PositionBuilder {
	b.LastPrice = &price
	return b
}

// Build persists the position and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	p := model.Position{
		Ticker:    b.Ticker,
		Quantity:  b.Quantity,
		AvgCost:   b.AvgCost,
		LastPrice: b.LastPrice,
		Name:      b.Name,
		Currency:  b.Currency,
	}
	if err := repository.NewPositionRepository(db).SavePosition(p); err != nil {
		t.Fatalf("Failed to seed position %s: %v", b.Ticker, err)
	}
	return p
}

// SnapshotBuilder provides a fluent interface for seeding test snapshots.
type SnapshotBuilder struct {
	Date       time.Time
	TotalValue float64
	TotalCost  float64
}

// NewSnapshot creates a SnapshotBuilder for the given date.
func NewSnapshot(date time.Time, totalValue float64) *SnapshotBuilder {
	return &SnapshotBuilder{
		Date:       date,
		TotalValue: totalValue,
		TotalCost:  totalValue,
	}
}

// WithTotalCost sets the aggregate cost basis.
func (b *SnapshotBuilder) WithTotalCost(totalCost float64) *SnapshotBuilder {
	b.TotalCost = totalCost
	return b
}

// Build persists the snapshot and returns it.
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.Snapshot {
	t.Helper()

	pnl := b.TotalValue - b.TotalCost
	pnlPercent := 0.0
	if b.TotalCost != 0 {
		pnlPercent = pnl / b.TotalCost * 100
	}

	snap := model.Snapshot{
		ID:              MakeID(),
		Date:            b.Date,
		TotalValue:      b.TotalValue,
		TotalCost:       b.TotalCost,
		TotalPnL:        pnl,
		TotalPnLPercent: pnlPercent,
	}
	if err := repository.NewSnapshotRepository(db).AppendSnapshot(snap); err != nil {
		t.Fatalf("Failed to seed snapshot for %s: %v", b.Date.Format("2006-01-02"), err)
	}
	return snap
}

// SeedSnapshotSeries persists one snapshot per day for the given values,
// ending today and walking backwards one calendar day per value. The values
// are stored in chronological order (values[0] is the oldest).
func SeedSnapshotSeries(t *testing.T, db *sql.DB, values []float64) {
	t.Helper()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for i, v := range values {
		date := today.AddDate(0, 0, i-len(values)+1)
		NewSnapshot(date, v).Build(t, db)
	}
}

// SeedAccount initializes the singleton account row with the given balance.
func SeedAccount(t *testing.T, db *sql.DB, initialBalance float64) model.Account {
	t.Helper()

	account, err := repository.NewAccountRepository(db).EnsureAccount(initialBalance)
	if err != nil {
		t.Fatalf("Failed to seed account: %v", err)
	}
	return account
}

// SeedTransaction appends a journal entry directly, bypassing the engine.
func SeedTransaction(t *testing.T, db *sql.DB, ticker, txType string, quantity, price float64) model.Transaction {
	t.Helper()

	tx := model.Transaction{
		ID:        MakeID(),
		Ticker:    ticker,
		Type:      txType,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}
	if err := repository.NewTransactionRepository(db).AppendTransaction(tx); err != nil {
		t.Fatalf("Failed to seed transaction: %v", err)
	}
	return tx
}
