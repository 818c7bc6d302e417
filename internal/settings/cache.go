// Package settings loads the operator-configured parameter snapshot that
// every view consumes. A view fetches once per mount and treats the result
// as immutable for its lifetime.
package settings

import (
	"context"
	"log"
	"sync"

	"TradeDesk/internal/api"
	"TradeDesk/internal/model"
)

// Cache fetches remote settings and keeps the last good snapshot around so
// a failed fetch degrades to known values instead of an error.
type Cache struct {
	gateway api.Gateway

	mu       sync.Mutex
	lastGood *model.Settings
}

// NewCache creates a settings cache over the given gateway.
func NewCache(gateway api.Gateway) *Cache {
	return &Cache{gateway: gateway}
}

// Load fetches a fresh settings snapshot. On failure it logs and falls back
// to the last successful fetch, or to compiled-in defaults. The returned
// value is always a private copy; callers can hold it for their lifetime.
func (c *Cache) Load(ctx context.Context) model.Settings {
	fetched, err := c.gateway.Settings(ctx)
	if err != nil {
		log.Printf("[WARN] settings fetch failed, using fallback: %v", err)
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.lastGood != nil {
			return clone(c.lastGood)
		}
		return Defaults()
	}

	c.mu.Lock()
	c.lastGood = fetched
	c.mu.Unlock()
	return clone(fetched)
}

// Defaults returns the compiled-in operator settings used when the remote
// snapshot is unavailable.
func Defaults() model.Settings {
	var s model.Settings
	s.Watch.TopN = 5
	s.Watch.RefreshSec = 60
	s.Trade.QuickPct = []int{10, 25, 50, 100}
	s.Trade.Tick = 50
	s.Trade.DefaultPriceType = model.Market
	s.Trade.ConfirmPhrase = "자동매매 금지 정책에 동의합니다"
	s.Chart.Periods = []int{60, 120, 250}
	s.Chart.Indicators = []string{"SMA20", "SMA60", "RSI14"}
	s.Risk.TakeProfitPct = 0.18
	s.Risk.StopLossPct = 0.07
	s.Risk.TrailingPct = 0.03
	return s
}

func clone(s *model.Settings) model.Settings {
	out := *s
	out.Trade.QuickPct = append([]int(nil), s.Trade.QuickPct...)
	out.Chart.Periods = append([]int(nil), s.Chart.Periods...)
	out.Chart.Indicators = append([]string(nil), s.Chart.Indicators...)
	return out
}
