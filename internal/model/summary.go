package model

// Summary bundles the current state of the portfolio: every open position
// with its valuation, account-level totals, and the asset allocation
// breakdown. All derived values are computed from current state only, no I/O.
type Summary struct {
	Positions       []PositionView     `json:"positions"`
	TotalValue      float64            `json:"totalValue"`
	TotalCostBasis  float64            `json:"totalCostBasis"`
	TotalPnL        float64            `json:"totalPnl"`
	TotalPnLPercent float64            `json:"totalPnlPercent"`
	NumPositions    int                `json:"numPositions"`
	AssetAllocation map[string]float64 `json:"assetAllocation"` // ticker -> % of total value
	CashBalance     float64            `json:"cashBalance"`
	AccountPnL      float64            `json:"accountPnl"` // (total value + cash) - initial balance

	// FailedTickers lists symbols that could not be refreshed in the most
	// recent price refresh. Empty outside of refresh responses.
	FailedTickers []string `json:"failedTickers,omitempty"`
}
