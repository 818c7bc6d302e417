package view

import (
	"context"
	"log"
	"sync"

	"TradeDesk/internal/api"
	"TradeDesk/internal/indicator"
	"TradeDesk/internal/model"
	"TradeDesk/internal/poll"
	"TradeDesk/internal/settings"
	"TradeDesk/internal/store"
)

const (
	sparkCandleLimit = 30
	maxReasonsShown  = 3
)

// RecoView shows the server-ranked recommendation cards with per-card
// sparklines fetched independently after the list resolves.
type RecoView struct {
	gateway api.Gateway
	cache   *settings.Cache
	shared  *store.Store

	gate poll.Gate

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	top    int
	cards  []model.RecommendationCard
	sparks map[string]model.Sparkline
}

// NewRecoView wires the view; it stays inert until Mount.
func NewRecoView(gateway api.Gateway, cache *settings.Cache, shared *store.Store) *RecoView {
	return &RecoView{gateway: gateway, cache: cache, shared: shared, top: 5}
}

// Mount loads settings and issues the primary list fetch.
func (v *RecoView) Mount(ctx context.Context) {
	cfg := v.cache.Load(ctx)

	v.mu.Lock()
	v.ctx, v.cancel = context.WithCancel(ctx)
	if cfg.Watch.TopN > 0 {
		v.top = cfg.Watch.TopN
	}
	v.sparks = make(map[string]model.Sparkline)
	v.mu.Unlock()

	go v.load()
}

// Unmount discards in-flight results, including unresolved sparklines.
func (v *RecoView) Unmount() {
	v.mu.Lock()
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	v.gate.Invalidate()
}

// Cards returns the cards in server arrival order, reasons trimmed for
// display.
func (v *RecoView) Cards() []model.RecommendationCard {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.RecommendationCard(nil), v.cards...)
}

// Spark returns the normalized sparkline for a symbol, if resolved yet.
func (v *RecoView) Spark(symbol string) (model.Sparkline, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.sparks[symbol]
	return s, ok
}

// GoTrade selects the card's instrument and jumps to the trade view.
func (v *RecoView) GoTrade(symbol, name string) {
	v.shared.SetSelection(model.SymbolSelection{Symbol: symbol, Name: name})
	v.shared.SetActiveTab(store.TabTrade)
}

// load fetches the recommendation list, then fans out one independent
// candle fetch per card. Sparklines merge as they resolve with no
// cross-card ordering; the gate drops anything arriving after teardown.
func (v *RecoView) load() {
	v.mu.Lock()
	ctx := v.ctx
	top := v.top
	v.mu.Unlock()
	if ctx == nil {
		return
	}

	ticket := v.gate.Issue()
	cards, err := v.gateway.Recommendations(ctx, top)
	if err != nil {
		log.Printf("[WARN] recommendations fetch failed: %v", err)
		return
	}
	for i := range cards {
		if len(cards[i].Reasons) > maxReasonsShown {
			cards[i].Reasons = cards[i].Reasons[:maxReasonsShown]
		}
	}

	if !ticket.Commit(func() {
		v.mu.Lock()
		v.cards = cards
		v.mu.Unlock()
	}) {
		return
	}

	symbols := make([]string, len(cards))
	for i, card := range cards {
		symbols[i] = card.Symbol
	}
	poll.FanOut(symbols, func(symbol string) {
		candles, err := v.gateway.Candles(ctx, symbol, sparkCandleLimit)
		if err != nil {
			log.Printf("[WARN] sparkline fetch failed for %s: %v", symbol, err)
			return
		}
		points := indicator.Normalize(model.Closes(candles))
		ticket.Commit(func() {
			v.mu.Lock()
			v.sparks[symbol] = model.Sparkline{Symbol: symbol, Points: points}
			v.mu.Unlock()
		})
	})
}
