// Package poll coordinates asynchronous loads so that resolutions arriving
// after their initiating context has moved on are discarded instead of
// overwriting newer state. There is no true in-flight cancellation; a
// still-relevant check runs before every state mutation.
package poll

import "sync"

// Gate serializes commits for one logical fetch stream (holdings polling,
// candle refetch for one view, ...). Only the most recently issued ticket
// may commit; earlier resolutions are dropped even if they resolve later.
type Gate struct {
	mu      sync.Mutex
	current uint64
}

// Ticket identifies one issued request against its gate.
type Ticket struct {
	gate *Gate
	id   uint64
}

// Issue marks the start of a new request, superseding all earlier tickets.
func (g *Gate) Issue() Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return Ticket{gate: g, id: g.current}
}

// Invalidate drops every outstanding ticket, e.g. on view teardown.
func (g *Gate) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
}

// Live reports whether the ticket is still the most recently issued.
func (t Ticket) Live() bool {
	if t.gate == nil {
		return false
	}
	t.gate.mu.Lock()
	defer t.gate.mu.Unlock()
	return t.gate.current == t.id
}

// Commit runs fn only while the ticket is still live, holding the gate so
// a newer issue cannot interleave with the mutation. It reports whether
// fn ran.
func (t Ticket) Commit(fn func()) bool {
	if t.gate == nil {
		return false
	}
	t.gate.mu.Lock()
	defer t.gate.mu.Unlock()
	if t.gate.current != t.id {
		return false
	}
	fn()
	return true
}
