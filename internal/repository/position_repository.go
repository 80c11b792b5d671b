package repository

import (
	"database/sql"
	"fmt"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
)

// PositionRepository provides data access methods for the position table.
// One row per ticker; a position whose quantity reaches zero is deleted
// rather than zeroed out.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// GetPositions retrieves all open positions ordered by ticker.
// Returns an empty slice when the portfolio is empty.
func (s *PositionRepository) GetPositions() ([]model.Position, error) {
	query := `
		SELECT ticker, quantity, avg_cost, last_price, name, currency, exchange, created_at, updated_at
		FROM position
		ORDER BY ticker ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}

	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetPositionOnTicker retrieves a single position by its ticker.
// Returns apperrors.ErrNoSuchPosition when the ticker has no open position.
func (s *PositionRepository) GetPositionOnTicker(ticker string) (model.Position, error) {
	query := `
		SELECT ticker, quantity, avg_cost, last_price, name, currency, exchange, created_at, updated_at
		FROM position
		WHERE ticker = ?
	`

	row := s.db.QueryRow(query, ticker)
	p, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return model.Position{}, apperrors.ErrNoSuchPosition
	}
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// SavePosition inserts or updates a position keyed by ticker.
func (s *PositionRepository) SavePosition(p model.Position) error {
	query := `
		INSERT INTO position (ticker, quantity, avg_cost, last_price, name, currency, exchange, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(ticker) DO UPDATE SET
			quantity = excluded.quantity,
			avg_cost = excluded.avg_cost,
			last_price = excluded.last_price,
			name = excluded.name,
			currency = excluded.currency,
			exchange = excluded.exchange,
			updated_at = CURRENT_TIMESTAMP
	`

	var lastPrice sql.NullFloat64
	if p.LastPrice != nil {
		lastPrice = sql.NullFloat64{Float64: *p.LastPrice, Valid: true}
	}

	_, err := s.db.Exec(query, p.Ticker, p.Quantity, p.AvgCost, lastPrice, p.Name, p.Currency, p.Exchange)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}

	return nil
}

// UpdateLastPrice updates only the last observed price of a position.
func (s *PositionRepository) UpdateLastPrice(ticker string, price float64) error {
	query := `
		UPDATE position
		SET last_price = ?, updated_at = CURRENT_TIMESTAMP
		WHERE ticker = ?
	`

	result, err := s.db.Exec(query, price, ticker)
	if err != nil {
		return fmt.Errorf("failed to update last price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNoSuchPosition
	}

	return nil
}

// DeletePosition removes the position for a ticker.
func (s *PositionRepository) DeletePosition(ticker string) error {
	result, err := s.db.Exec(`DELETE FROM position WHERE ticker = ?`, ticker)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNoSuchPosition
	}

	return nil
}

// DeleteAllPositions removes every open position. Used by account reset.
func (s *PositionRepository) DeleteAllPositions() error {
	if _, err := s.db.Exec(`DELETE FROM position`); err != nil {
		return fmt.Errorf("failed to delete positions: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPosition(row scanner) (model.Position, error) {
	var p model.Position
	var lastPrice sql.NullFloat64
	var name, currency, exchange sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.Ticker,
		&p.Quantity,
		&p.AvgCost,
		&lastPrice,
		&name,
		&currency,
		&exchange,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Position{}, err
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position table results: %w", err)
	}

	if lastPrice.Valid {
		price := lastPrice.Float64
		p.LastPrice = &price
	}
	p.Name = name.String
	p.Currency = currency.String
	p.Exchange = exchange.String

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Position{}, err
	}
	p.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}
