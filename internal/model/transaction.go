package model

import "time"

// Transaction types.
const (
	TransactionBuy  = "BUY"
	TransactionSell = "SELL"
)

// Transaction is an immutable record of a single buy or sell. The transaction
// table is append-only and forms the audit trail of all ledger mutations.
type Transaction struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Type      string    `json:"type"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}
