package model

import "time"

// Account is the singleton cash account backing the simulated portfolio.
// Cash decreases on buys and increases on sells; it may go negative since
// there is no margin check in scope.
type Account struct {
	CashBalance    float64   `json:"cashBalance"`
	InitialBalance float64   `json:"initialBalance"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}
