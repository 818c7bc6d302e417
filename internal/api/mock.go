package api

import (
	"context"
	"time"

	"TradeDesk/internal/model"
)

// MockGateway returns controllable fixed data for development and testing.
type MockGateway struct {
	SettingsData *model.Settings
	HoldingsData *model.Holdings
	Cards        []model.RecommendationCard
	CandleData   map[string][]model.Candle
	Names        map[string]string
	OrderReply   *model.OrderResponse
	Err          error

	// SubmitOrderFn, when set, overrides the canned order reply.
	SubmitOrderFn func(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	Submitted []model.OrderRequest
}

func (m *MockGateway) Health(_ context.Context) (bool, error) {
	return m.Err == nil, m.Err
}

func (m *MockGateway) Settings(_ context.Context) (*model.Settings, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SettingsData, nil
}

func (m *MockGateway) Holdings(_ context.Context) (*model.Holdings, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.HoldingsData != nil {
		return m.HoldingsData, nil
	}
	return &model.Holdings{}, nil
}

func (m *MockGateway) Recommendations(_ context.Context, top int) ([]model.RecommendationCard, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if top < len(m.Cards) {
		return m.Cards[:top], nil
	}
	return m.Cards, nil
}

func (m *MockGateway) Candles(_ context.Context, symbol string, limit int) ([]model.Candle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	candles := m.CandleData[symbol]
	if candles == nil {
		candles = GenerateCandles(symbol, 100, limit)
	}
	if limit < len(candles) {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

func (m *MockGateway) ResolveName(_ context.Context, symbol string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if name, ok := m.Names[symbol]; ok {
		return name, nil
	}
	return symbol, nil
}

func (m *MockGateway) SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	m.Submitted = append(m.Submitted, *req)
	if m.SubmitOrderFn != nil {
		return m.SubmitOrderFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.OrderReply != nil {
		return m.OrderReply, nil
	}
	return &model.OrderResponse{OK: true, OrderID: "mock-1", Message: "accepted"}, nil
}

// GenerateCandles produces a deterministic ascending candle sequence around
// a base price, oldest first.
func GenerateCandles(symbol string, basePrice float64, count int) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		candles[i] = model.Candle{
			Symbol:    symbol,
			Timestamp: time.Now().AddDate(0, 0, -(count - i)),
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    1000000,
		}
	}
	return candles
}
