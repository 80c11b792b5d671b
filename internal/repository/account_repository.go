package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
)

// AccountRepository provides data access methods for the singleton account
// row holding the simulated cash balance.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// LoadAccount retrieves the account. Returns apperrors.ErrAccountNotFound
// when the row has not been initialized yet.
func (s *AccountRepository) LoadAccount() (model.Account, error) {
	query := `
		SELECT cash_balance, initial_balance, created_at, updated_at
		FROM account
		WHERE id = 1
	`

	var a model.Account
	var createdAtStr, updatedAtStr string

	err := s.db.QueryRow(query).Scan(
		&a.CashBalance,
		&a.InitialBalance,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to scan account table results: %w", err)
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Account{}, err
	}
	a.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Account{}, err
	}

	return a, nil
}

// SaveAccount inserts or updates the singleton account row.
func (s *AccountRepository) SaveAccount(a model.Account) error {
	query := `
		INSERT INTO account (id, cash_balance, initial_balance, created_at, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			cash_balance = excluded.cash_balance,
			initial_balance = excluded.initial_balance,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.Exec(query, a.CashBalance, a.InitialBalance); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}

// EnsureAccount initializes the account row with the given starting balance
// when it does not exist yet. Idempotent.
func (s *AccountRepository) EnsureAccount(initialBalance float64) (model.Account, error) {
	account, err := s.LoadAccount()
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		return model.Account{}, err
	}

	account = model.Account{
		CashBalance:    initialBalance,
		InitialBalance: initialBalance,
	}
	if err := s.SaveAccount(account); err != nil {
		return model.Account{}, err
	}

	return s.LoadAccount()
}
