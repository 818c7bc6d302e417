package model

// HoldingRow is one position as returned by the holdings endpoint.
// Qty is never negative; PnLPct is a ratio, not a percentage literal.
type HoldingRow struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Qty        int     `json:"qty"`
	AvgPrice   float64 `json:"avg_price"`
	LastPrice  float64 `json:"last_price"`
	PnLPct     float64 `json:"pnl_pct"`
	ExitSignal string  `json:"exit_signal,omitempty"`
}

// Holdings is the full holdings endpoint response.
type Holdings struct {
	Positions []HoldingRow `json:"positions"`
	Cash      float64      `json:"cash"`
}
