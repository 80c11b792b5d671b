package service

import "math"

// round2 rounds to two decimal places for presentation-level monetary and
// percentage values. Stored ledger values are never rounded.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
