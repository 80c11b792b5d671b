package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
)

// tickerPattern matches exchange-style symbols: 1-10 characters, leading
// letter, then letters/digits with optional class or exchange suffix
// separators (BRK.B, RDS-A).
var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// ValidateTicker checks that a symbol is syntactically valid. Symbols are
// expected to be normalized to upper case before validation.
func ValidateTicker(ticker string) error {
	if strings.TrimSpace(ticker) == "" {
		return fmt.Errorf("%w: ticker is required", apperrors.ErrInvalidTicker)
	}
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidTicker, ticker)
	}
	return nil
}

// ValidateBuy validates the preconditions of a buy: positive quantity,
// positive price, well-formed ticker.
func ValidateBuy(ticker string, quantity, price float64) error {
	errs := make(map[string]string)

	if err := ValidateTicker(ticker); err != nil {
		errs["ticker"] = err.Error()
	}
	if quantity <= 0 {
		errs["quantity"] = "quantity must be positive"
	}
	if price <= 0 {
		errs["price"] = "price must be positive"
	}

	if len(errs) > 0 {
		return &Error{Fields: errs}
	}
	return nil
}

// ValidateSell validates the preconditions of a sell. A nil quantity means
// "sell the entire position" and is always acceptable here; holdings checks
// happen in the portfolio engine.
func ValidateSell(ticker string, quantity *float64) error {
	errs := make(map[string]string)

	if err := ValidateTicker(ticker); err != nil {
		errs["ticker"] = err.Error()
	}
	if quantity != nil && *quantity <= 0 {
		errs["quantity"] = "quantity must be positive"
	}

	if len(errs) > 0 {
		return &Error{Fields: errs}
	}
	return nil
}
