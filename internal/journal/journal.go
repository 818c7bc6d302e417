// Package journal keeps an optional local record of submitted orders.
// With no journal path configured the client persists nothing, matching
// the default in-memory-only session surface.
package journal

import "TradeDesk/internal/model"

// OrderEntry is one submission attempt and its outcome.
type OrderEntry struct {
	Symbol     string
	Side       model.Side
	Qty        int
	PriceType  model.PriceType
	LimitPrice float64 // 0 for market orders
	OK         bool
	OrderID    string
	Message    string
}

// Recorder persists order history for later review.
type Recorder interface {
	RecordOrder(entry *OrderEntry) error
	Close() error
}
