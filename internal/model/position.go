package model

import "time"

// Position represents one aggregated holding per ticker. All buys of a ticker
// collapse into a single quantity and weighted-average cost; sells reduce the
// quantity without touching the average cost.
type Position struct {
	Ticker    string    `json:"ticker"`
	Quantity  float64   `json:"quantity"`
	AvgCost   float64   `json:"avgCost"`
	LastPrice *float64  `json:"lastPrice"` // nil until a quote has been fetched
	Name      string    `json:"name,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	Exchange  string    `json:"exchange,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CostBasis returns the total amount invested in the position.
func (p Position) CostBasis() float64 {
	return p.Quantity * p.AvgCost
}

// CurrentValue returns the market value at the last known price.
// Falls back to cost basis when no price has been observed yet.
func (p Position) CurrentValue() float64 {
	if p.LastPrice == nil {
		return p.CostBasis()
	}
	return p.Quantity * *p.LastPrice
}

// UnrealizedPnL returns current value minus cost basis.
func (p Position) UnrealizedPnL() float64 {
	return p.CurrentValue() - p.CostBasis()
}

// UnrealizedPnLPercent returns the unrealized P&L as a percentage of cost
// basis, 0 when the cost basis is 0.
func (p Position) UnrealizedPnLPercent() float64 {
	basis := p.CostBasis()
	if basis == 0 {
		return 0
	}
	return p.UnrealizedPnL() / basis * 100
}

// PositionView is a position enriched with derived valuation fields for
// API responses.
type PositionView struct {
	Ticker               string   `json:"ticker"`
	Quantity             float64  `json:"quantity"`
	AvgCost              float64  `json:"avgCost"`
	LastPrice            *float64 `json:"lastPrice"`
	Name                 string   `json:"name,omitempty"`
	Currency             string   `json:"currency,omitempty"`
	CostBasis            float64  `json:"costBasis"`
	CurrentValue         float64  `json:"currentValue"`
	UnrealizedPnL        float64  `json:"unrealizedPnl"`
	UnrealizedPnLPercent float64  `json:"unrealizedPnlPercent"`
}
