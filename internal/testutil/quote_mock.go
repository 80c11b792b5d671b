package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
)

// MockQuoteSource is an in-memory stand-in for the market data client.
// Prices are configured per ticker; unconfigured tickers resolve to
// apperrors.ErrUnknownTicker, matching the real client's behavior.
//
// Example usage:
//
//	quotes := testutil.NewMockQuoteSource().
//	    WithPrice("AAPL", 150).
//	    WithQuoteError("MSFT", apperrors.ErrPriceSourceUnavailable)
type MockQuoteSource struct {
	mu sync.Mutex

	prices      map[string]float64
	quoteErrs   map[string]error
	history     map[string][]model.PricePoint
	historyErrs map[string]error

	// QuoteCalls counts Quote invocations across all tickers.
	QuoteCalls int
}

// NewMockQuoteSource creates an empty mock. Configure it with the With*
// methods before handing it to a service.
func NewMockQuoteSource() *MockQuoteSource {
	return &MockQuoteSource{
		prices:      make(map[string]float64),
		quoteErrs:   make(map[string]error),
		history:     make(map[string][]model.PricePoint),
		historyErrs: make(map[string]error),
	}
}

// WithPrice sets the quote price for a ticker.
func (m *MockQuoteSource) WithPrice(ticker string, price float64) *MockQuoteSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[ticker] = price
	return m
}

// WithQuoteError makes Quote fail for the given ticker.
func (m *MockQuoteSource) WithQuoteError(ticker string, err error) *MockQuoteSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteErrs[ticker] = err
	return m
}

// WithHistory sets the historical series returned for a ticker.
func (m *MockQuoteSource) WithHistory(ticker string, points []model.PricePoint) *MockQuoteSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[ticker] = points
	return m
}

// WithHistoryError makes History fail for the given ticker.
func (m *MockQuoteSource) WithHistoryError(ticker string, err error) *MockQuoteSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyErrs[ticker] = err
	return m
}

// Quote returns the configured price or ErrUnknownTicker.
func (m *MockQuoteSource) Quote(_ context.Context, symbol string) (model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QuoteCalls++

	if err, ok := m.quoteErrs[symbol]; ok {
		return model.Quote{}, err
	}
	price, ok := m.prices[symbol]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, symbol)
	}

	return model.Quote{
		Ticker:   symbol,
		Price:    price,
		Currency: "USD",
		Name:     symbol + " Inc.",
		Exchange: "NMS",
	}, nil
}

// History returns the configured series or ErrUnknownTicker.
func (m *MockQuoteSource) History(_ context.Context, symbol string, _, _ time.Time) ([]model.PricePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.historyErrs[symbol]; ok {
		return nil, err
	}
	points, ok := m.history[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, symbol)
	}
	return points, nil
}
