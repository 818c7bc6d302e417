package model

// Side is the order direction.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// PriceType selects market or limit execution.
type PriceType string

const (
	Market PriceType = "market"
	Limit  PriceType = "limit"
)

// OrderRequest is the payload posted to the order endpoint. LimitPrice is
// present only for limit orders; the server rejects qty < 1 or approve=false,
// and the client refuses to send either.
type OrderRequest struct {
	Symbol     string    `json:"symbol"`
	Side       Side      `json:"side"`
	Qty        int       `json:"qty"`
	PriceType  PriceType `json:"price_type"`
	LimitPrice *float64  `json:"limit_price,omitempty"`
	Approve    bool      `json:"approve"`
}

// OrderResponse is the order endpoint result. Message is shown to the user
// verbatim, prefixed by the submission outcome.
type OrderResponse struct {
	OK      bool   `json:"ok"`
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message"`
}
