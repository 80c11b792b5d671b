package yahoo

import "time"

// Response represents the raw JSON response structure from Yahoo Finance API.
// This type maps directly to the Yahoo Finance chart API response format,
// containing nested structures for metadata, timestamps, and price indicators.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level payload of a chart API response.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result is a single chart result: symbol metadata plus aligned arrays of
// timestamps and quote indicators.
type Result struct {
	Meta struct {
		Currency           string  `json:"currency"`
		Symbol             string  `json:"symbol"`
		ExchangeName       string  `json:"exchangeName"`
		FullExchangeName   string  `json:"fullExchangeName"`
		LongName           string  `json:"longName"`
		Shortname          string  `json:"shortName"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []float64 `json:"open"`
			Close  []float64 `json:"close"`
			Volume []int64   `json:"volume"`
			High   []float64 `json:"high"`
			Low    []float64 `json:"low"`
		} `json:"quote"`
	} `json:"indicators"`
}

// PriceChart represents a parsed and structured price chart. This is the
// application's internal representation after parsing the raw Response.
type PriceChart struct {
	Currency         string       `json:"currency"`
	Symbol           string       `json:"symbol"`
	ExchangeName     string       `json:"exchangeName"`
	FullExchangeName string       `json:"fullExchangeName"`
	LongName         string       `json:"longName"`
	Shortname        string       `json:"shortName"`
	LatestPrice      float64      `json:"latestPrice"`
	Week52High       float64      `json:"week52High"`
	Week52Low        float64      `json:"week52Low"`
	Indicators       []Indicators `json:"indicators"`
}

// Indicators represents a single day's OHLCV data for an instrument.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}
