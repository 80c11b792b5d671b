package repository_test

import (
	"errors"
	"testing"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/repository"
	"github.com/Mayank-31k/portfolio-tracker/internal/testutil"
)

// TestAccountRepository tests the singleton account row.
//
// WHY: The engine assumes exactly one account. EnsureAccount must create it
// once and then leave an existing balance alone on every later startup.
func TestAccountRepository(t *testing.T) {
	t.Run("load before initialization fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAccountRepository(db)

		_, err := repo.LoadAccount()
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("ensure creates the row with the initial balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAccountRepository(db)

		account, err := repo.EnsureAccount(10000)
		if err != nil {
			t.Fatalf("EnsureAccount() returned unexpected error: %v", err)
		}
		if account.CashBalance != 10000 || account.InitialBalance != 10000 {
			t.Errorf("Unexpected account state: %+v", account)
		}
	})

	t.Run("ensure is idempotent and preserves a spent balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAccountRepository(db)

		if _, err := repo.EnsureAccount(10000); err != nil {
			t.Fatalf("EnsureAccount() returned unexpected error: %v", err)
		}

		account, err := repo.LoadAccount()
		if err != nil {
			t.Fatalf("LoadAccount() returned unexpected error: %v", err)
		}
		account.CashBalance = 7500
		if err := repo.SaveAccount(account); err != nil {
			t.Fatalf("SaveAccount() returned unexpected error: %v", err)
		}

		// Simulated restart: the balance must survive.
		account, err = repo.EnsureAccount(10000)
		if err != nil {
			t.Fatalf("EnsureAccount() returned unexpected error: %v", err)
		}
		if account.CashBalance != 7500 {
			t.Errorf("Expected preserved balance 7500, got %v", account.CashBalance)
		}
	})

	t.Run("save round-trips the balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAccountRepository(db)

		account := testutil.SeedAccount(t, db, 10000)
		account.CashBalance = -250.5 // negative balances are allowed
		if err := repo.SaveAccount(account); err != nil {
			t.Fatalf("SaveAccount() returned unexpected error: %v", err)
		}

		got, err := repo.LoadAccount()
		if err != nil {
			t.Fatalf("LoadAccount() returned unexpected error: %v", err)
		}
		if got.CashBalance != -250.5 {
			t.Errorf("Expected balance -250.5, got %v", got.CashBalance)
		}
	})
}
