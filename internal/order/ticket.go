// Package order converts user trade intent into a validated order payload
// and submits it to the remote order endpoint.
package order

import (
	"errors"
	"math"

	"TradeDesk/internal/model"
)

// Validation failures, in evaluation order. The first failure wins and
// blocks submission.
var (
	ErrTicketDisabled   = errors.New("ticket disabled")
	ErrApprovalRequired = errors.New("approval required")
	ErrQuantityInvalid  = errors.New("check quantity")
	ErrExceedsHoldings  = errors.New("exceeds holdings")
)

// Mode selects how the user expresses order size.
type Mode string

const (
	ModeQty    Mode = "qty"    // direct share count
	ModeAmount Mode = "amount" // cash amount, converted at the last price
)

// Ticket is an in-progress order form.
type Ticket struct {
	Symbol    string
	Name      string
	Side      model.Side
	Mode      Mode
	Qty       int
	Amount    float64
	LastPrice float64
	// MaxQty is the held position size; present (>0) for SELL tickets.
	MaxQty     int
	PriceType  model.PriceType
	LimitPrice float64
	Tick       float64
	Approved   bool
	// Disabled blocks submission silently, e.g. a SELL with zero holdings.
	Disabled bool
}

// NewTicket creates a ticket with the form's initial state: quantity
// defaults to the full position for a SELL, otherwise 1, and the limit
// price starts at the last traded price.
func NewTicket(symbol, name string, side model.Side, lastPrice float64, maxQty int, tick float64, priceType model.PriceType) *Ticket {
	qty := 1
	if side == model.Sell && maxQty > 0 {
		qty = maxQty
	}
	if priceType == "" {
		priceType = model.Market
	}
	return &Ticket{
		Symbol:     symbol,
		Name:       name,
		Side:       side,
		Mode:       ModeQty,
		Qty:        qty,
		LastPrice:  lastPrice,
		MaxQty:     maxQty,
		PriceType:  priceType,
		LimitPrice: lastPrice,
		Tick:       tick,
	}
}

// EffectiveQty derives the quantity to submit. In amount mode a positive
// cash amount is converted at max(lastPrice, 1) and floored; otherwise the
// quantity-mode value applies.
func (t *Ticket) EffectiveQty() int {
	if t.Mode == ModeAmount && t.Amount > 0 {
		qty := int(math.Floor(t.Amount / math.Max(t.LastPrice, 1)))
		if qty < 0 {
			qty = 0
		}
		return qty
	}
	return t.Qty
}

// ApplyQuickPct applies a quick-percentage preset to the quantity field.
// SELL sizes off the held position; BUY sizes off notional cash (the
// entered amount, or one share's worth when no amount is set).
func (t *Ticket) ApplyQuickPct(pct int) {
	switch {
	case t.Side == model.Sell && t.MaxQty > 0:
		qty := int(math.Floor(float64(t.MaxQty) * float64(pct) / 100))
		if qty < 1 {
			qty = 1
		}
		t.Qty = qty
	case t.Side == model.Buy && t.LastPrice > 0:
		base := t.Amount
		if base <= 0 {
			base = t.LastPrice
		}
		qty := int(math.Floor(base * float64(pct) / 100 / t.LastPrice))
		if qty < 1 {
			qty = 1
		}
		t.Qty = qty
	}
}

// NudgeLimit moves the limit price by steps ticks (negative for down),
// floored at 1.
func (t *Ticket) NudgeLimit(steps int) {
	t.LimitPrice += float64(steps) * t.Tick
	if t.LimitPrice < 1 {
		t.LimitPrice = 1
	}
}

// Validate checks the ticket in order; the first failure is returned and
// must block submission.
func (t *Ticket) Validate() error {
	if t.Disabled {
		return ErrTicketDisabled
	}
	if !t.Approved {
		return ErrApprovalRequired
	}
	qty := t.EffectiveQty()
	if qty < 1 {
		return ErrQuantityInvalid
	}
	if t.Side == model.Sell && t.MaxQty > 0 && qty > t.MaxQty {
		return ErrExceedsHoldings
	}
	return nil
}

// Request builds the order payload for a validated ticket. The limit price
// is attached only for limit orders; approve is always true because an
// unapproved ticket never reaches this point.
func (t *Ticket) Request() *model.OrderRequest {
	req := &model.OrderRequest{
		Symbol:    t.Symbol,
		Side:      t.Side,
		Qty:       t.EffectiveQty(),
		PriceType: t.PriceType,
		Approve:   true,
	}
	if t.PriceType == model.Limit {
		price := t.LimitPrice
		req.LimitPrice = &price
	}
	return req
}
