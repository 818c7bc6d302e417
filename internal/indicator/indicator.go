// Package indicator computes chart overlays from an ordered candle
// sequence. All functions are pure and re-run in full on every input
// change; there is no cached partial state.
package indicator

import "time"

// Point is one emitted indicator value, stamped with its candle's time.
type Point struct {
	Time  time.Time
	Value float64
}
