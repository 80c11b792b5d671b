package model

// Metrics holds the risk/performance statistics derived from the snapshot
// series. Volatility, max drawdown, alpha, and VaR are percentages; Sharpe,
// Sortino, and beta are ratios.
//
// VaR95 follows the historical-simulation convention: it is the 5th
// percentile of the daily-return distribution, so a loss is negative.
type Metrics struct {
	Available   bool    `json:"available"`
	SharpeRatio float64 `json:"sharpeRatio"`
	Sortino     float64 `json:"sortinoRatio"`
	Volatility  float64 `json:"volatility"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	Beta        float64 `json:"beta"`
	Alpha       float64 `json:"alpha"`
	VaR95       float64 `json:"var95"`
}

// CorrelationMatrix holds pairwise Pearson correlations of daily returns
// between the open holdings. Matrix is square and indexed by Tickers in both
// dimensions; the diagonal is 1. Available is false when fewer than two
// holdings have enough overlapping price history to correlate.
type CorrelationMatrix struct {
	Available bool        `json:"available"`
	Tickers   []string    `json:"tickers"`
	Matrix    [][]float64 `json:"matrix"`
}
