package model

import "time"

// Snapshot is a point-in-time record of portfolio valuation, one per calendar
// date (UTC). TotalValue is the market value of open positions with cash
// excluded; the analytics engine consumes the resulting series.
type Snapshot struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	TotalValue      float64   `json:"totalValue"`
	TotalCost       float64   `json:"totalCost"`
	TotalPnL        float64   `json:"totalPnl"`
	TotalPnLPercent float64   `json:"totalPnlPercent"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}
