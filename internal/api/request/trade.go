package request

// BuyRequest is the payload for opening or adding to a position.
type BuyRequest struct {
	Ticker   string  `json:"ticker"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// SellRequest is the optional payload for reducing a position. A nil or
// absent Quantity sells the entire position.
type SellRequest struct {
	Quantity *float64 `json:"quantity,omitempty"`
}
