package service

import (
	"context"
	"time"

	"github.com/Mayank-31k/portfolio-tracker/internal/model"
)

// QuoteSource is the price source contract consumed by the engine. The
// production implementation is yahoo.FinanceClient; tests substitute a mock.
//
// Quote resolves a ticker to its latest price and metadata, failing with
// apperrors.ErrUnknownTicker for unresolvable symbols and
// apperrors.ErrPriceSourceUnavailable for transport failures. History
// returns daily closes in [start, end], ascending by date.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (model.Quote, error)
	History(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error)
}
