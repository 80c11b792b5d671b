package model

import "time"

// Quote is the price source's answer for a single ticker: the latest price
// plus descriptive metadata. Sector/industry are not exposed by the chart
// endpoint and are intentionally absent.
type Quote struct {
	Ticker     string  `json:"ticker"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Name       string  `json:"name"`
	Exchange   string  `json:"exchange"`
	Week52High float64 `json:"week52High"`
	Week52Low  float64 `json:"week52Low"`
}

// PricePoint is a single daily close in a historical series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}
