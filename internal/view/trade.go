package view

import (
	"context"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"TradeDesk/internal/api"
	"TradeDesk/internal/model"
	"TradeDesk/internal/order"
	"TradeDesk/internal/poll"
	"TradeDesk/internal/settings"
	"TradeDesk/internal/store"
)

// TradeView drives the order form for the entered symbol: it resolves the
// display name and last traded price, builds a ticket from the operator
// trade settings, and submits through the order submitter.
type TradeView struct {
	gateway   api.Gateway
	cache     *settings.Cache
	shared    *store.Store
	submitter *order.Submitter

	gate poll.Gate

	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       model.Settings
	symbol    string
	name      string
	lastPrice float64
	ticket    *order.Ticket
	message   string
}

// NewTradeView wires the view with a fallback symbol used when nothing is
// selected yet.
func NewTradeView(gateway api.Gateway, cache *settings.Cache, shared *store.Store, submitter *order.Submitter, defaultSymbol string) *TradeView {
	v := &TradeView{gateway: gateway, cache: cache, shared: shared, submitter: submitter, symbol: defaultSymbol}
	if sel, ok := shared.Selection(); ok {
		v.symbol = sel.Symbol
		v.name = sel.Name
	}
	return v
}

// Mount loads settings and issues the first symbol load.
func (v *TradeView) Mount(ctx context.Context) {
	cfg := v.cache.Load(ctx)

	v.mu.Lock()
	v.ctx, v.cancel = context.WithCancel(ctx)
	v.cfg = cfg
	v.rebuildTicketLocked(model.Buy)
	v.mu.Unlock()

	go v.load()
}

// Unmount discards in-flight results.
func (v *TradeView) Unmount() {
	v.mu.Lock()
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	v.gate.Invalidate()
}

// SetSymbol switches the instrument, resets the side to BUY and reloads
// name and last price.
func (v *TradeView) SetSymbol(symbol string) {
	symbol = strings.ToUpper(symbol)
	v.mu.Lock()
	if v.symbol == symbol {
		v.mu.Unlock()
		return
	}
	v.symbol = symbol
	v.name = ""
	v.lastPrice = 0
	v.rebuildTicketLocked(model.Buy)
	v.ticket.MaxQty = 0
	v.mu.Unlock()
	go v.load()
}

// SetSide flips the order direction and rebuilds the ticket defaults.
func (v *TradeView) SetSide(side model.Side) {
	v.mu.Lock()
	v.rebuildTicketLocked(side)
	v.mu.Unlock()
}

// Ticket exposes the mutable order form. Callers adjust it and then call
// Submit.
func (v *TradeView) Ticket() *order.Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ticket
}

// ConfirmPhrase returns the literal phrase the user must acknowledge.
func (v *TradeView) ConfirmPhrase() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cfg.Trade.ConfirmPhrase
}

// QuickPct returns the operator-configured quick-percentage presets.
func (v *TradeView) QuickPct() []int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]int(nil), v.cfg.Trade.QuickPct...)
}

// Symbol returns the entered symbol.
func (v *TradeView) Symbol() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.symbol
}

// Name returns the resolved display name, empty while unknown.
func (v *TradeView) Name() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.name
}

// LastPrice returns the last traded price, 0 while unknown. An unknown
// price never blocks submission.
func (v *TradeView) LastPrice() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastPrice
}

// Message returns the last submission outcome message.
func (v *TradeView) Message() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message
}

// Submit sends the current ticket and records the outcome message.
func (v *TradeView) Submit(ctx context.Context) order.Result {
	v.mu.Lock()
	t := v.ticket
	v.mu.Unlock()

	result := v.submitter.Submit(ctx, t)

	v.mu.Lock()
	v.message = result.Message
	v.mu.Unlock()
	return result
}

// load resolves the display name and last close together. Only the most
// recently issued load may commit its result.
func (v *TradeView) load() {
	v.mu.Lock()
	ctx := v.ctx
	symbol := v.symbol
	v.mu.Unlock()
	if ctx == nil {
		return
	}

	ticket := v.gate.Issue()

	var (
		name    string
		candles []model.Candle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		name, err = v.gateway.ResolveName(gctx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		candles, err = v.gateway.Candles(gctx, symbol, 1)
		return err
	})
	if err := g.Wait(); err != nil {
		// Name and price stay unknown; the form still works.
		log.Printf("[WARN] trade symbol load failed for %s: %v", symbol, err)
		return
	}

	committed := ticket.Commit(func() {
		v.mu.Lock()
		v.name = name
		v.lastPrice = model.LastClose(candles)
		v.refreshTicketPriceLocked()
		v.mu.Unlock()
	})
	if committed {
		v.shared.SetSelection(model.SymbolSelection{Symbol: symbol, Name: name})
	}
}

// rebuildTicketLocked resets the form for the current symbol and side;
// callers hold v.mu.
func (v *TradeView) rebuildTicketLocked(side model.Side) {
	maxQty := 0
	if v.ticket != nil {
		maxQty = v.ticket.MaxQty
	}
	v.ticket = order.NewTicket(v.symbol, v.name, side, v.lastPrice, maxQty, v.cfg.Trade.Tick, v.cfg.Trade.DefaultPriceType)
	v.message = ""
}

// refreshTicketPriceLocked pushes a freshly resolved name/price into the
// existing form without clobbering user input; callers hold v.mu.
func (v *TradeView) refreshTicketPriceLocked() {
	if v.ticket == nil {
		return
	}
	v.ticket.Name = v.name
	v.ticket.LastPrice = v.lastPrice
	if v.ticket.LimitPrice == 0 {
		v.ticket.LimitPrice = v.lastPrice
	}
}
