package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Mayank-31k/portfolio-tracker/internal/model"
)

// SnapshotRepository provides data access methods for the snapshot table.
// Snapshots hold one portfolio valuation per calendar date; within a day the
// record is last-write-wins, across days the table is append-only.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// AppendSnapshot records the valuation for the snapshot's date. If a record
// already exists for that date it is replaced, keeping the series at one
// point per day regardless of how often the capture job runs.
func (s *SnapshotRepository) AppendSnapshot(snap model.Snapshot) error {
	query := `
		INSERT INTO snapshot (id, date, total_value, total_cost, total_pnl, total_pnl_percent)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_value = excluded.total_value,
			total_cost = excluded.total_cost,
			total_pnl = excluded.total_pnl,
			total_pnl_percent = excluded.total_pnl_percent
	`

	_, err := s.db.Exec(
		query,
		snap.ID,
		snap.Date.UTC().Format("2006-01-02"),
		snap.TotalValue,
		snap.TotalCost,
		snap.TotalPnL,
		snap.TotalPnLPercent,
	)
	if err != nil {
		return fmt.Errorf("failed to append snapshot: %w", err)
	}

	return nil
}

// ListSnapshots retrieves snapshots on or after the given date, ascending by
// date. A zero since returns the whole series.
func (s *SnapshotRepository) ListSnapshots(since time.Time) ([]model.Snapshot, error) {
	query := `
		SELECT id, date, total_value, total_cost, total_pnl, total_pnl_percent, created_at
		FROM snapshot
	`

	var args []any
	if !since.IsZero() {
		query += " WHERE date >= ?"
		args = append(args, since.UTC().Format("2006-01-02"))
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.Snapshot{}

	for rows.Next() {
		var snap model.Snapshot
		var dateStr, createdAtStr string

		err := rows.Scan(
			&snap.ID,
			&dateStr,
			&snap.TotalValue,
			&snap.TotalCost,
			&snap.TotalPnL,
			&snap.TotalPnLPercent,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot table results: %w", err)
		}

		snap.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		snap.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snap)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot table: %w", err)
	}

	return snapshots, nil
}
