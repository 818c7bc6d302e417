// Package view implements the four terminal views as headless controllers:
// each one mounts, loads what it displays through the shared gateway, and
// exposes snapshots of its state. Rendering is out of scope.
package view

import (
	"context"
	"log"
	"sync"
	"time"

	"TradeDesk/internal/api"
	"TradeDesk/internal/model"
	"TradeDesk/internal/poll"
	"TradeDesk/internal/settings"
	"TradeDesk/internal/store"
)

const detailCandleLimit = 120

// HoldingsView shows the positions table with periodic refresh and a
// detail candle panel for the selected holding.
type HoldingsView struct {
	gateway api.Gateway
	cache   *settings.Cache
	shared  *store.Store

	rowsGate   poll.Gate
	detailGate poll.Gate

	mu       sync.Mutex
	mounted  bool
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      model.Settings
	rows     []model.HoldingRow
	cash     float64
	detail   []model.Candle
	repeater *poll.Repeater
}

// NewHoldingsView wires the view; it stays inert until Mount.
func NewHoldingsView(gateway api.Gateway, cache *settings.Cache, shared *store.Store) *HoldingsView {
	v := &HoldingsView{gateway: gateway, cache: cache, shared: shared}
	shared.WatchSelection(v.onSelectionChange)
	return v
}

// Mount loads settings, fetches holdings immediately and starts the
// periodic refresh.
func (v *HoldingsView) Mount(ctx context.Context) error {
	cfg := v.cache.Load(ctx)

	v.mu.Lock()
	v.mounted = true
	v.ctx, v.cancel = context.WithCancel(ctx)
	v.cfg = cfg
	v.mu.Unlock()

	interval := time.Duration(cfg.Watch.RefreshSec) * time.Second
	rep, err := poll.StartRepeater(interval, v.refresh)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.repeater = rep
	v.mu.Unlock()

	if sel, ok := v.shared.Selection(); ok {
		go v.reloadDetail(sel.Symbol)
	}
	return nil
}

// Unmount stops the refresh timer and discards any in-flight results.
func (v *HoldingsView) Unmount() {
	v.mu.Lock()
	v.mounted = false
	rep := v.repeater
	v.repeater = nil
	cancel := v.cancel
	v.mu.Unlock()

	if rep != nil {
		rep.Stop()
	}
	if cancel != nil {
		cancel()
	}
	v.rowsGate.Invalidate()
	v.detailGate.Invalidate()
}

// Rows returns the current positions snapshot.
func (v *HoldingsView) Rows() []model.HoldingRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.HoldingRow(nil), v.rows...)
}

// Cash returns the last fetched cash balance.
func (v *HoldingsView) Cash() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cash
}

// Detail returns the candle series for the selected holding.
func (v *HoldingsView) Detail() []model.Candle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Candle(nil), v.detail...)
}

// Settings returns the snapshot loaded at mount.
func (v *HoldingsView) Settings() model.Settings {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cfg
}

// Select marks a row as the shared selection.
func (v *HoldingsView) Select(row model.HoldingRow) {
	v.shared.SetSelection(model.SymbolSelection{Symbol: row.Symbol, Name: row.Name})
}

// refresh replaces the table with a fresh fetch. A fetch resolving after
// the view unmounted or after a newer fetch is discarded.
func (v *HoldingsView) refresh() {
	v.mu.Lock()
	ctx := v.ctx
	v.mu.Unlock()
	if ctx == nil {
		return
	}

	ticket := v.rowsGate.Issue()
	holdings, err := v.gateway.Holdings(ctx)
	if err != nil {
		log.Printf("[WARN] holdings fetch failed: %v", err)
		return
	}

	ticket.Commit(func() {
		v.mu.Lock()
		v.rows = holdings.Positions
		v.cash = holdings.Cash
		v.mu.Unlock()
	})

	// Default the shared selection to the first position.
	if _, ok := v.shared.Selection(); !ok && len(holdings.Positions) > 0 && ticket.Live() {
		first := holdings.Positions[0]
		v.shared.SetSelection(model.SymbolSelection{Symbol: first.Symbol, Name: first.Name})
	}
}

func (v *HoldingsView) onSelectionChange(sel model.SymbolSelection) {
	v.mu.Lock()
	mounted := v.mounted
	v.mu.Unlock()
	if !mounted {
		return
	}
	go v.reloadDetail(sel.Symbol)
}

// reloadDetail refetches detail candles for the selected symbol with
// last-issued-wins semantics across selection changes.
func (v *HoldingsView) reloadDetail(symbol string) {
	v.mu.Lock()
	ctx := v.ctx
	v.mu.Unlock()
	if ctx == nil {
		return
	}

	ticket := v.detailGate.Issue()
	candles, err := v.gateway.Candles(ctx, symbol, detailCandleLimit)
	if err != nil {
		log.Printf("[WARN] detail candles fetch failed for %s: %v", symbol, err)
		return
	}
	ticket.Commit(func() {
		v.mu.Lock()
		v.detail = candles
		v.mu.Unlock()
	})
}
