package store

import "sync"

// routes is the fixed tab-to-route table. The first entry is the fallback
// for unknown paths.
var routes = []struct {
	Tab  Tab
	Path string
}{
	{TabTrade, "/"},
	{TabChart, "/chart"},
	{TabReco, "/reco"},
	{TabHoldings, "/holdings"},
}

// RouteFor returns the route for a view key.
func RouteFor(tab Tab) (string, bool) {
	for _, r := range routes {
		if r.Tab == tab {
			return r.Path, true
		}
	}
	return "", false
}

// TabFor returns the view key for a route, falling back to the trade tab.
func TabFor(path string) Tab {
	for _, r := range routes {
		if r.Path == path {
			return r.Tab
		}
	}
	return routes[0].Tab
}

// Navigator keeps the active tab and the displayed route in agreement.
// Whichever side changed last drives the other exactly once: a tab change
// navigates only when the route actually diverged, and a route change
// updates the tab without issuing a navigation, so the two reconciliation
// rules cannot oscillate and are idempotent when already consistent.
type Navigator struct {
	mu       sync.Mutex
	store    *Store
	path     string
	navigate func(path string)
}

// NewNavigator binds a store to the external routing chrome. The navigate
// callback performs the actual route change and may be nil in tests.
func NewNavigator(s *Store, navigate func(path string)) *Navigator {
	n := &Navigator{store: s, navigate: navigate}
	n.path, _ = RouteFor(s.ActiveTab())
	s.WatchTab(n.onTabChange)
	return n
}

// Path returns the route the navigator last resolved.
func (n *Navigator) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

// SetRoute records a route change coming from the routing chrome and
// aligns the active tab with it. It never navigates.
func (n *Navigator) SetRoute(path string) {
	n.mu.Lock()
	if n.path == path {
		n.mu.Unlock()
		return
	}
	n.path = path
	n.mu.Unlock()

	n.store.SetActiveTab(TabFor(path))
}

// onTabChange drives the route after a tab change. The path is updated
// before the callback fires so a chrome echo through SetRoute is a no-op.
func (n *Navigator) onTabChange(tab Tab) {
	target, ok := RouteFor(tab)
	if !ok {
		return
	}
	n.mu.Lock()
	if n.path == target {
		n.mu.Unlock()
		return
	}
	n.path = target
	navigate := n.navigate
	n.mu.Unlock()

	if navigate != nil {
		navigate(target)
	}
}
