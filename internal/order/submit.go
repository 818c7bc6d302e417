package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"TradeDesk/internal/api"
	"TradeDesk/internal/journal"
	"TradeDesk/internal/model"
	"TradeDesk/internal/notify"
)

const notifyTitle = "TradeDesk"

// Result is the user-visible outcome of a submission attempt.
type Result struct {
	// Sent reports whether a request reached the wire.
	Sent bool
	// OK mirrors the server verdict; false for validation and transport failures.
	OK bool
	// Message is what the view displays. Empty for a silently rejected
	// (disabled) ticket.
	Message string
	// Response holds the raw server reply when one arrived.
	Response *model.OrderResponse
}

// Submitter validates tickets and executes the order call plus its
// best-effort side effects.
type Submitter struct {
	Gateway  api.Gateway
	Notifier notify.Notifier
	Journal  journal.Recorder
}

// NewSubmitter wires a submitter; notifier and recorder may be nil.
func NewSubmitter(gateway api.Gateway, notifier notify.Notifier, recorder journal.Recorder) *Submitter {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if recorder == nil {
		recorder = journal.NewNoopRecorder()
	}
	return &Submitter{Gateway: gateway, Notifier: notifier, Journal: recorder}
}

// Submit validates and sends a ticket. Validation failures block the
// request; transport failures are caught and surfaced as a message. The
// notification and journal side effects never alter the reported outcome.
func (s *Submitter) Submit(ctx context.Context, t *Ticket) Result {
	if err := t.Validate(); err != nil {
		if errors.Is(err, ErrTicketDisabled) {
			return Result{}
		}
		return Result{Message: err.Error()}
	}

	req := t.Request()
	resp, err := s.Gateway.SubmitOrder(ctx, req)
	if err != nil {
		log.Printf("[ERROR] submit order %s %s: %v", t.Side, t.Symbol, err)
		msg := err.Error()
		if msg == "" {
			msg = "order failed"
		}
		return Result{Sent: true, Message: msg}
	}

	s.record(req, resp)
	if resp.OK {
		s.notifyAsync(t, req.Qty, resp)
		return Result{Sent: true, OK: true, Message: "order sent: " + resp.Message, Response: resp}
	}
	return Result{Sent: true, Message: "order failed: " + resp.Message, Response: resp}
}

// notifyAsync fires the local notification without joining it into the
// submission outcome; failures are only logged.
func (s *Submitter) notifyAsync(t *Ticket, qty int, resp *model.OrderResponse) {
	name := t.Name
	if name == "" {
		name = t.Symbol
	}
	body := fmt.Sprintf("%s %s (%s) x%d %s - %s", t.Side, name, t.Symbol, qty, t.PriceType, resp.Message)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.Send(ctx, notifyTitle, body); err != nil {
			log.Printf("[WARN] order notification failed: %v", err)
		}
	}()
}

func (s *Submitter) record(req *model.OrderRequest, resp *model.OrderResponse) {
	entry := &journal.OrderEntry{
		Symbol:    req.Symbol,
		Side:      req.Side,
		Qty:       req.Qty,
		PriceType: req.PriceType,
		OK:        resp.OK,
		OrderID:   resp.OrderID,
		Message:   resp.Message,
	}
	if req.LimitPrice != nil {
		entry.LimitPrice = *req.LimitPrice
	}
	if err := s.Journal.RecordOrder(entry); err != nil {
		log.Printf("[ERROR] record order: %v", err)
	}
}
