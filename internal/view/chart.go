package view

import (
	"context"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"TradeDesk/internal/api"
	"TradeDesk/internal/indicator"
	"TradeDesk/internal/model"
	"TradeDesk/internal/poll"
	"TradeDesk/internal/settings"
	"TradeDesk/internal/store"
)

// Indicator windows offered by the chart view.
const (
	smaShortWindow = 20
	smaLongWindow  = 60
	rsiPeriod      = 14
)

// ChartView loads the candle series for the entered symbol and lookback
// period and derives the enabled indicator overlays from it.
type ChartView struct {
	gateway api.Gateway
	cache   *settings.Cache
	shared  *store.Store

	gate poll.Gate

	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       model.Settings
	symbol    string
	name      string
	period    int
	candles   []model.Candle
	showSMA20 bool
	showSMA60 bool
	showRSI   bool
	sma20     []indicator.Point
	sma60     []indicator.Point
	rsi       []indicator.Point
}

// NewChartView wires the view with a fallback symbol used when nothing is
// selected yet.
func NewChartView(gateway api.Gateway, cache *settings.Cache, shared *store.Store, defaultSymbol string) *ChartView {
	v := &ChartView{
		gateway:   gateway,
		cache:     cache,
		shared:    shared,
		symbol:    defaultSymbol,
		period:    120,
		showSMA20: true,
		showSMA60: true,
	}
	if sel, ok := shared.Selection(); ok {
		v.symbol = sel.Symbol
		v.name = sel.Name
	}
	return v
}

// Mount loads settings, picks the middle configured period and issues the
// first load.
func (v *ChartView) Mount(ctx context.Context) {
	cfg := v.cache.Load(ctx)

	v.mu.Lock()
	v.ctx, v.cancel = context.WithCancel(ctx)
	v.cfg = cfg
	if len(cfg.Chart.Periods) > 1 {
		v.period = cfg.Chart.Periods[1]
	} else if len(cfg.Chart.Periods) == 1 {
		v.period = cfg.Chart.Periods[0]
	}
	v.mu.Unlock()

	go v.load()
}

// Unmount discards in-flight results.
func (v *ChartView) Unmount() {
	v.mu.Lock()
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	v.gate.Invalidate()
}

// SetSymbol switches the charted instrument and refetches.
func (v *ChartView) SetSymbol(symbol string) {
	symbol = strings.ToUpper(symbol)
	v.mu.Lock()
	if v.symbol == symbol {
		v.mu.Unlock()
		return
	}
	v.symbol = symbol
	v.mu.Unlock()
	go v.load()
}

// SetPeriod switches the lookback window and refetches.
func (v *ChartView) SetPeriod(period int) {
	v.mu.Lock()
	if v.period == period {
		v.mu.Unlock()
		return
	}
	v.period = period
	v.mu.Unlock()
	go v.load()
}

// SetIndicators toggles the overlay set and recomputes it in full from
// the current candles.
func (v *ChartView) SetIndicators(sma20, sma60, rsi bool) {
	v.mu.Lock()
	v.showSMA20, v.showSMA60, v.showRSI = sma20, sma60, rsi
	v.recomputeLocked()
	v.mu.Unlock()
}

// Snapshot accessors.

func (v *ChartView) Symbol() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.symbol
}

func (v *ChartView) Name() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.name
}

func (v *ChartView) Period() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.period
}

func (v *ChartView) Candles() []model.Candle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Candle(nil), v.candles...)
}

// Overlays returns the currently enabled indicator series. Disabled
// overlays are nil.
func (v *ChartView) Overlays() (sma20, sma60, rsi []indicator.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sma20, v.sma60, v.rsi
}

// load fetches the display name and candle series together. Only the most
// recently issued load may commit; a superseded load is dropped even when
// it resolves later.
func (v *ChartView) load() {
	v.mu.Lock()
	ctx := v.ctx
	symbol := v.symbol
	period := v.period
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
		candles, err = v.gateway.Candles(gctx, symbol, period)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[WARN] chart load failed for %s: %v", symbol, err)
		return
	}

	committed := ticket.Commit(func() {
		v.mu.Lock()
		v.name = name
		v.candles = candles
		v.recomputeLocked()
		v.mu.Unlock()
	})
	if committed {
		v.shared.SetSelection(model.SymbolSelection{Symbol: symbol, Name: name})
	}
}

// recomputeLocked rebuilds every enabled overlay from scratch; callers
// hold v.mu.
func (v *ChartView) recomputeLocked() {
	v.sma20, v.sma60, v.rsi = nil, nil, nil
	if v.showSMA20 {
		v.sma20 = indicator.SMA(v.candles, smaShortWindow)
	}
	if v.showSMA60 {
		v.sma60 = indicator.SMA(v.candles, smaLongWindow)
	}
	if v.showRSI {
		v.rsi = indicator.RSI(v.candles, rsiPeriod)
	}
}
