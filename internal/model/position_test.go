package model_test

import (
	"testing"

	"github.com/Mayank-31k/portfolio-tracker/internal/model"
)

// TestPosition_Valuation tests the derived valuation methods.
//
// WHY: These four methods feed every summary and snapshot figure. The
// no-price fallback to cost basis and the zero-basis guard are the edge
// cases that break dashboards when wrong.
func TestPosition_Valuation(t *testing.T) {
	price := 160.0

	t.Run("with an observed price", func(t *testing.T) {
		p := model.Position{Ticker: "AAPL", Quantity: 10, AvgCost: 150, LastPrice: &price}

		if got := p.CostBasis(); got != 1500 {
			t.Errorf("Expected cost basis 1500, got %v", got)
		}
		if got := p.CurrentValue(); got != 1600 {
			t.Errorf("Expected current value 1600, got %v", got)
		}
		if got := p.UnrealizedPnL(); got != 100 {
			t.Errorf("Expected P&L 100, got %v", got)
		}
		if got := p.UnrealizedPnLPercent(); got != 100.0/1500*100 {
			t.Errorf("Expected P&L percent %v, got %v", 100.0/1500*100, got)
		}
	})

	t.Run("without a price values at cost", func(t *testing.T) {
		p := model.Position{Ticker: "AAPL", Quantity: 10, AvgCost: 150}

		if got := p.CurrentValue(); got != 1500 {
			t.Errorf("Expected fallback to cost basis 1500, got %v", got)
		}
		if got := p.UnrealizedPnL(); got != 0 {
			t.Errorf("Expected zero P&L without a price, got %v", got)
		}
	})

	t.Run("zero cost basis yields zero percent", func(t *testing.T) {
		p := model.Position{Ticker: "FREE", Quantity: 10, AvgCost: 0, LastPrice: &price}

		if got := p.UnrealizedPnLPercent(); got != 0 {
			t.Errorf("Expected 0 percent on zero basis, got %v", got)
		}
	})
}
