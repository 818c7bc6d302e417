// Package store holds the only state shared across views: the current
// symbol selection and the active view tab. Both fields are independent;
// setters are synchronous replacements with no failure mode.
package store

import (
	"sync"

	"TradeDesk/internal/model"
)

// Tab identifies one of the fixed set of views.
type Tab string

const (
	TabTrade    Tab = "trade"
	TabChart    Tab = "chart"
	TabReco     Tab = "reco"
	TabHoldings Tab = "holdings"
)

// Store is the shared selection/navigation state container. Mutation is
// guarded by a mutex per the single-writer rule; watchers run synchronously
// on the mutating goroutine and only when the value actually changed.
type Store struct {
	mu          sync.Mutex
	selection   *model.SymbolSelection
	activeTab   Tab
	tabWatchers []func(Tab)
	selWatchers []func(model.SymbolSelection)
}

// NewStore creates a store with no selection and the trade tab active.
func NewStore() *Store {
	return &Store{activeTab: TabTrade}
}

// Selection returns the current selection, if any.
func (s *Store) Selection() (model.SymbolSelection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == nil {
		return model.SymbolSelection{}, false
	}
	return *s.selection, true
}

// SetSelection replaces the current selection.
func (s *Store) SetSelection(sel model.SymbolSelection) {
	s.mu.Lock()
	changed := s.selection == nil || *s.selection != sel
	s.selection = &sel
	watchers := append([]func(model.SymbolSelection){}, s.selWatchers...)
	s.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range watchers {
		fn(sel)
	}
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selection = nil
	s.mu.Unlock()
}

// ActiveTab returns the currently active view key.
func (s *Store) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// SetActiveTab replaces the active view key.
func (s *Store) SetActiveTab(tab Tab) {
	s.mu.Lock()
	changed := s.activeTab != tab
	s.activeTab = tab
	watchers := append([]func(Tab){}, s.tabWatchers...)
	s.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range watchers {
		fn(tab)
	}
}

// WatchTab registers a callback for active-tab changes.
func (s *Store) WatchTab(fn func(Tab)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabWatchers = append(s.tabWatchers, fn)
}

// WatchSelection registers a callback for selection changes.
func (s *Store) WatchSelection(fn func(model.SymbolSelection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selWatchers = append(s.selWatchers, fn)
}
