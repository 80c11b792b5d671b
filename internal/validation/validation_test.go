package validation_test

import (
	"errors"
	"testing"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/validation"
)

// TestValidateTicker tests symbol syntax checks.
//
// WHY: The pattern gates every trade and quote lookup. It must accept real
// exchange symbols including class and exchange suffixes while rejecting
// injection-prone input.
func TestValidateTicker(t *testing.T) {
	t.Run("accepts well-formed symbols", func(t *testing.T) {
		for _, ticker := range []string{"A", "AAPL", "BRK.B", "RDS-A", "MSFT", "V", "ASML.AS"} {
			if err := validation.ValidateTicker(ticker); err != nil {
				t.Errorf("Expected %q to be valid, got %v", ticker, err)
			}
		}
	})

	t.Run("rejects malformed symbols", func(t *testing.T) {
		for _, ticker := range []string{"", "  ", "aapl", "1AAPL", ".AAPL", "AAPL!!", "WAYTOOLONGNAME", "AA PL"} {
			err := validation.ValidateTicker(ticker)
			if !errors.Is(err, apperrors.ErrInvalidTicker) {
				t.Errorf("Expected %q to fail with ErrInvalidTicker, got %v", ticker, err)
			}
		}
	})
}

// TestValidateBuy tests buy preconditions.
//
// WHY: Invalid buys must be rejected with messages naming every bad field at
// once, so the client can fix them in one round trip.
func TestValidateBuy(t *testing.T) {
	t.Run("accepts a valid buy", func(t *testing.T) {
		if err := validation.ValidateBuy("AAPL", 10, 150); err != nil {
			t.Errorf("Expected valid buy, got %v", err)
		}
	})

	t.Run("collects all field errors", func(t *testing.T) {
		err := validation.ValidateBuy("bad ticker", 0, -5)
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}
		for _, field := range []string{"ticker", "quantity", "price"} {
			if _, ok := vErr.Fields[field]; !ok {
				t.Errorf("Expected error for field %q, got %v", field, vErr.Fields)
			}
		}
	})

	t.Run("rejects fractional edge values", func(t *testing.T) {
		if err := validation.ValidateBuy("AAPL", 0.5, 0.01); err != nil {
			t.Errorf("Fractional positive values are valid, got %v", err)
		}
	})
}

// TestValidateSell tests sell preconditions.
//
// WHY: nil means sell-all and is legal; an explicit non-positive quantity
// is not. The holdings check belongs to the engine, not here.
func TestValidateSell(t *testing.T) {
	t.Run("nil quantity is valid", func(t *testing.T) {
		if err := validation.ValidateSell("AAPL", nil); err != nil {
			t.Errorf("Expected nil quantity to be valid, got %v", err)
		}
	})

	t.Run("positive quantity is valid", func(t *testing.T) {
		qty := 3.0
		if err := validation.ValidateSell("AAPL", &qty); err != nil {
			t.Errorf("Expected valid sell, got %v", err)
		}
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		for _, q := range []float64{0, -1} {
			qty := q
			err := validation.ValidateSell("AAPL", &qty)

			var vErr *validation.Error
			if !errors.As(err, &vErr) {
				t.Errorf("Expected *validation.Error for quantity %v, got %v", q, err)
			}
		}
	})
}
