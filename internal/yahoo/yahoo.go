package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Mayank-31k/portfolio-tracker/internal/apperrors"
	"github.com/Mayank-31k/portfolio-tracker/internal/model"
)

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance chart API. It wraps an HTTP client with a request timeout and
// implements the quote-source contract consumed by the portfolio engine.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with a default
// 10-second request timeout.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewFinanceClientWithBaseURL creates a client pointed at an alternate
// endpoint. Used by tests to target an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Quote fetches the latest price and descriptive metadata for a symbol.
// Returns apperrors.ErrUnknownTicker when the symbol cannot be resolved and
// apperrors.ErrPriceSourceUnavailable on transport or payload failures.
func (c *FinanceClient) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	resp, err := c.queryFiveDaySymbol(ctx, symbol)
	if err != nil {
		return model.Quote{}, err
	}

	chart, err := c.ParseChart(resp)
	if err != nil {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrPriceSourceUnavailable, err)
	}

	price := chart.LatestPrice
	if price <= 0 {
		// Meta omits the regular market price on some instruments; fall
		// back to the most recent daily close.
		if len(chart.Indicators) == 0 {
			return model.Quote{}, fmt.Errorf("%w: no price data for %s", apperrors.ErrUnknownTicker, symbol)
		}
		price = chart.Indicators[len(chart.Indicators)-1].PriceClose
	}
	if price <= 0 {
		return model.Quote{}, fmt.Errorf("%w: no price data for %s", apperrors.ErrUnknownTicker, symbol)
	}

	name := chart.LongName
	if name == "" {
		name = chart.Shortname
	}

	return model.Quote{
		Ticker:     chart.Symbol,
		Price:      price,
		Currency:   chart.Currency,
		Name:       name,
		Exchange:   chart.FullExchangeName,
		Week52High: chart.Week52High,
		Week52Low:  chart.Week52Low,
	}, nil
}

// History fetches daily closes for a symbol within [start, end], ascending
// by date. Used for benchmark series in analytics.
func (c *FinanceClient) History(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error) {
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, symbol, start.Unix(), end.Unix(),
	)
	resp, err := c.queryYahoo(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: no results returned for symbol %s", apperrors.ErrUnknownTicker, symbol)
	}

	chart, err := c.ParseChart(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPriceSourceUnavailable, err)
	}

	points := make([]model.PricePoint, 0, len(chart.Indicators))
	for _, ind := range chart.Indicators {
		if ind.PriceClose <= 0 {
			continue
		}
		points = append(points, model.PricePoint{Date: ind.Date, Close: ind.PriceClose})
	}
	return points, nil
}

// ParseChart converts a raw chart API response into a structured price
// chart, validating that timestamp and close arrays are present and aligned.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no results in response")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, len(result.Timestamp))
	for i, v := range result.Timestamp {
		indicators[i].Date = time.Unix(v, 0).UTC()
		indicators[i].PriceOpen = result.Indicators.Quote[0].Open[i]
		indicators[i].PriceClose = result.Indicators.Quote[0].Close[i]
		indicators[i].Volume = result.Indicators.Quote[0].Volume[i]
		indicators[i].PriceHigh = result.Indicators.Quote[0].High[i]
		indicators[i].PriceLow = result.Indicators.Quote[0].Low[i]
	}

	return PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		LatestPrice:      result.Meta.RegularMarketPrice,
		Week52High:       result.Meta.FiftyTwoWeekHigh,
		Week52Low:        result.Meta.FiftyTwoWeekLow,
		Indicators:       indicators,
	}, nil
}

// queryFiveDaySymbol fetches the last 5 trading days of daily data for a
// symbol, the cheapest query that carries both the latest close and the
// symbol metadata.
func (c *FinanceClient) queryFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)
	result, err := c.queryYahoo(ctx, url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("%w: no results returned for symbol %s", apperrors.ErrUnknownTicker, symbol)
	}

	return result, nil
}

// queryYahoo executes an HTTP request against the chart API, reads and
// parses the response, and translates error shapes into the application's
// error taxonomy: a chart-level error means the symbol does not exist, a
// transport or decoding failure means the source is unavailable.
func (c *FinanceClient) queryYahoo(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %s", apperrors.ErrPriceSourceUnavailable, err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Response{}, err
		}
		return Response{}, fmt.Errorf("%w: %s", apperrors.ErrPriceSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Response{}, apperrors.ErrUnknownTicker
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("%w: unexpected status %d", apperrors.ErrPriceSourceUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %s", apperrors.ErrPriceSourceUnavailable, err)
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("%w: %s", apperrors.ErrPriceSourceUnavailable, err)
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, *response.Chart.Error)
	}

	return response, nil
}
