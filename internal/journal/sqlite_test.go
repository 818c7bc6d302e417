package journal

import (
	"path/filepath"
	"testing"

	"TradeDesk/internal/model"
)

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	defer r.Close()

	err = r.RecordOrder(&OrderEntry{
		Symbol:     "005930.KS",
		Side:       model.Buy,
		Qty:        2,
		PriceType:  model.Limit,
		LimitPrice: 70100,
		OK:         true,
		OrderID:    "ord-1",
		Message:    "accepted",
	})
	if err != nil {
		t.Fatalf("RecordOrder: %v", err)
	}
	if err := r.RecordOrder(&OrderEntry{Symbol: "000660.KS", Side: model.Sell, Qty: 1, PriceType: model.Market}); err != nil {
		t.Fatalf("RecordOrder: %v", err)
	}

	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	var symbol, side string
	var qty int
	var ok int
	row := r.db.QueryRow("SELECT symbol, side, qty, ok FROM orders WHERE order_id = ?", "ord-1")
	if err := row.Scan(&symbol, &side, &qty, &ok); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if symbol != "005930.KS" || side != "BUY" || qty != 2 || ok != 1 {
		t.Errorf("row = %s %s %d %d", symbol, side, qty, ok)
	}
}

func TestSQLiteRecorderReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")

	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	if err := r.RecordOrder(&OrderEntry{Symbol: "A", Side: model.Buy, Qty: 1, PriceType: model.Market}); err != nil {
		t.Fatalf("RecordOrder: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Migrations are idempotent and prior rows survive reopening.
	r2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()

	var count int
	if err := r2.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
