package repository

import (
	"database/sql"
	"fmt"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// table. The table is strictly append-only: rows are never updated or
// deleted, including across account resets.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// AppendTransaction inserts a new transaction record.
func (s *TransactionRepository) AppendTransaction(t model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, ticker, type, quantity, price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	// Fractional seconds keep the newest-first ordering stable for entries
	// created within the same second.
	_, err := s.db.Exec(query, t.ID, t.Ticker, t.Type, t.Quantity, t.Price, t.CreatedAt.UTC().Format("2006-01-02 15:04:05.999999999"))
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	return nil
}

// ListTransactions retrieves transactions ordered most recent first.
// A limit <= 0 returns the full ledger.
func (s *TransactionRepository) ListTransactions(limit int) ([]model.Transaction, error) {
	query := `
		SELECT id, ticker, type, quantity, price, created_at
		FROM "transaction"
		ORDER BY created_at DESC, id DESC
	`

	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var t model.Transaction
		var createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.Ticker,
			&t.Type,
			&t.Quantity,
			&t.Price,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	query := `
		SELECT id, ticker, type, quantity, price, created_at
		FROM "transaction"
		WHERE id = ?
	`

	var t model.Transaction
	var createdAtStr string

	err := s.db.QueryRow(query, id).Scan(
		&t.ID,
		&t.Ticker,
		&t.Type,
		&t.Quantity,
		&t.Price,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
