package model

// Settings is the operator-configured parameter snapshot served by the
// settings endpoint. Views load it once per mount and treat it as immutable
// for their lifetime; there are no partial-update merge semantics.
type Settings struct {
	Watch struct {
		TopN       int `json:"top_n"`
		RefreshSec int `json:"refresh_sec"`
	} `json:"watch"`
	Trade struct {
		QuickPct         []int     `json:"quick_pct"`
		Tick             float64   `json:"tick"`
		DefaultPriceType PriceType `json:"default_price_type"`
		ConfirmPhrase    string    `json:"confirm_phrase"`
	} `json:"trade"`
	Chart struct {
		Periods    []int    `json:"periods"`
		Indicators []string `json:"indicators"`
	} `json:"chart"`
	Risk struct {
		TakeProfitPct float64 `json:"take_profit_pct"`
		StopLossPct   float64 `json:"stop_loss_pct"`
		TrailingPct   float64 `json:"trailing_pct"`
	} `json:"risk"`
}
