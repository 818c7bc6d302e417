package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"TradeDesk/internal/model"
	"TradeDesk/internal/order"
	"TradeDesk/internal/settings"
	"TradeDesk/internal/store"
)

// stubGateway is a controllable gateway for exercising fetch ordering.
type stubGateway struct {
	mu       sync.Mutex
	cfg      model.Settings
	holdings model.Holdings
	holdErr  error
	cards    []model.RecommendationCard
	names    map[string]string

	// candlesFn overrides candle fetches when set.
	candlesFn func(ctx context.Context, symbol string, limit int) ([]model.Candle, error)

	submitted []model.OrderRequest
}

func newStubGateway() *stubGateway {
	cfg := settings.Defaults()
	cfg.Watch.RefreshSec = 1
	return &stubGateway{cfg: cfg, names: map[string]string{}}
}

func (s *stubGateway) Health(context.Context) (bool, error) { return true, nil }

func (s *stubGateway) Settings(context.Context) (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg
	return &cfg, nil
}

func (s *stubGateway) Holdings(context.Context) (*model.Holdings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holdErr != nil {
		return nil, s.holdErr
	}
	h := s.holdings
	return &h, nil
}

func (s *stubGateway) Recommendations(context.Context, int) ([]model.RecommendationCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.RecommendationCard(nil), s.cards...), nil
}

func (s *stubGateway) Candles(ctx context.Context, symbol string, limit int) ([]model.Candle, error) {
	s.mu.Lock()
	fn := s.candlesFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, symbol, limit)
	}
	return testCandles(symbol, []float64{100, 101, 102}), nil
}

func (s *stubGateway) ResolveName(_ context.Context, symbol string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name, ok := s.names[symbol]; ok {
		return name, nil
	}
	return symbol, nil
}

func (s *stubGateway) SubmitOrder(_ context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, *req)
	return &model.OrderResponse{OK: true, OrderID: "t-1", Message: "accepted"}, nil
}

func (s *stubGateway) setHoldingsErr(err error) {
	s.mu.Lock()
	s.holdErr = err
	s.mu.Unlock()
}

func testCandles(symbol string, closes []float64) []model.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]model.Candle, len(closes))
	for i, c := range closes {
		candles[i] = model.Candle{Symbol: symbol, Timestamp: base.AddDate(0, 0, i), Close: c, Volume: 1}
	}
	return candles
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 3*time.Second, 10*time.Millisecond, msg)
}

func TestChartView_StaleFetchDiscarded(t *testing.T) {
	gw := newStubGateway()
	gw.names["AAA"] = "Alpha"
	gw.names["BBB"] = "Beta"

	release := make(chan struct{})
	gw.candlesFn = func(_ context.Context, symbol string, _ int) ([]model.Candle, error) {
		if symbol == "AAA" {
			<-release // A resolves only after B already committed
		}
		return testCandles(symbol, []float64{10, 20, 30}), nil
	}

	shared := store.NewStore()
	v := NewChartView(gw, settings.NewCache(gw), shared, "AAA")
	v.Mount(context.Background())
	defer v.Unmount()

	v.SetSymbol("BBB")
	eventually(t, func() bool {
		candles := v.Candles()
		return len(candles) > 0 && candles[0].Symbol == "BBB"
	}, "B's result should display")

	close(release)
	time.Sleep(100 * time.Millisecond)

	candles := v.Candles()
	require.Equal(t, "BBB", candles[0].Symbol, "A's late resolution must not overwrite B")
	require.Equal(t, "Beta", v.Name())

	sel, ok := shared.Selection()
	require.True(t, ok)
	require.Equal(t, "BBB", sel.Symbol)
}

func TestChartView_OverlaysFollowIndicatorSet(t *testing.T) {
	gw := newStubGateway()
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	gw.candlesFn = func(_ context.Context, symbol string, _ int) ([]model.Candle, error) {
		return testCandles(symbol, closes), nil
	}

	v := NewChartView(gw, settings.NewCache(gw), store.NewStore(), "AAA")
	v.Mount(context.Background())
	defer v.Unmount()

	eventually(t, func() bool { return len(v.Candles()) == 80 }, "candles should load")

	sma20, sma60, rsi := v.Overlays()
	require.Len(t, sma20, 61)
	require.Len(t, sma60, 21)
	require.Nil(t, rsi, "RSI starts disabled")

	v.SetIndicators(false, false, true)
	sma20, sma60, rsi = v.Overlays()
	require.Nil(t, sma20)
	require.Nil(t, sma60)
	require.Len(t, rsi, 80-14-1)
}

func TestChartView_PeriodFromSettings(t *testing.T) {
	gw := newStubGateway()
	v := NewChartView(gw, settings.NewCache(gw), store.NewStore(), "AAA")
	v.Mount(context.Background())
	defer v.Unmount()

	require.Equal(t, 120, v.Period(), "middle configured period is the default")
}

func TestHoldingsView_PollPopulatesAndAutoSelects(t *testing.T) {
	gw := newStubGateway()
	gw.holdings = model.Holdings{
		Positions: []model.HoldingRow{
			{Symbol: "005930.KS", Name: "삼성전자", Qty: 10, AvgPrice: 60000, LastPrice: 70000, PnLPct: 0.1667},
			{Symbol: "000660.KS", Name: "SK하이닉스", Qty: 3, AvgPrice: 90000, LastPrice: 85000, PnLPct: -0.0556},
		},
		Cash: 1234567,
	}

	shared := store.NewStore()
	v := NewHoldingsView(gw, settings.NewCache(gw), shared)
	require.NoError(t, v.Mount(context.Background()))
	defer v.Unmount()

	eventually(t, func() bool { return len(v.Rows()) == 2 }, "rows should populate")
	require.Equal(t, 1234567.0, v.Cash())

	sel, ok := shared.Selection()
	require.True(t, ok)
	require.Equal(t, "005930.KS", sel.Symbol, "first position becomes the default selection")

	eventually(t, func() bool { return len(v.Detail()) > 0 }, "detail candles should load for the selection")
}

func TestHoldingsView_FetchFailureKeepsPriorRows(t *testing.T) {
	gw := newStubGateway()
	gw.holdings = model.Holdings{Positions: []model.HoldingRow{{Symbol: "005930.KS", Name: "삼성전자", Qty: 1}}}

	v := NewHoldingsView(gw, settings.NewCache(gw), store.NewStore())
	require.NoError(t, v.Mount(context.Background()))
	defer v.Unmount()

	eventually(t, func() bool { return len(v.Rows()) == 1 }, "rows should populate")

	gw.setHoldingsErr(errors.New("service down"))
	time.Sleep(1500 * time.Millisecond) // at least one failing poll tick

	require.Len(t, v.Rows(), 1, "failed fetch leaves prior rows in place")
}

func TestRecoView_FanOutMergesIndependently(t *testing.T) {
	gw := newStubGateway()
	gw.cards = []model.RecommendationCard{
		{Symbol: "AAA", Name: "Alpha", Score: 2.5, Reasons: []string{"r1", "r2", "r3", "r4", "r5"}},
		{Symbol: "BBB", Name: "Beta", Score: 1.5, Reasons: []string{"x"}},
	}

	release := make(chan struct{})
	gw.candlesFn = func(_ context.Context, symbol string, _ int) ([]model.Candle, error) {
		if symbol == "AAA" {
			<-release
		}
		return testCandles(symbol, []float64{1, 3, 2}), nil
	}

	v := NewRecoView(gw, settings.NewCache(gw), store.NewStore())
	v.Mount(context.Background())
	defer v.Unmount()

	eventually(t, func() bool { return len(v.Cards()) == 2 }, "cards should load")
	require.Len(t, v.Cards()[0].Reasons, 3, "reasons trimmed for display")

	// The slow card must not block the fast one.
	eventually(t, func() bool { _, ok := v.Spark("BBB"); return ok }, "fast sparkline should resolve")
	_, ok := v.Spark("AAA")
	require.False(t, ok, "slow sparkline still pending")

	close(release)
	eventually(t, func() bool { _, ok := v.Spark("AAA"); return ok }, "slow sparkline should resolve")

	spark, _ := v.Spark("BBB")
	require.Equal(t, []float64{0, 1, 0.5}, spark.Points)
}

func TestRecoView_GoTradeSelectsAndSwitchesTab(t *testing.T) {
	gw := newStubGateway()
	shared := store.NewStore()
	shared.SetActiveTab(store.TabReco)

	v := NewRecoView(gw, settings.NewCache(gw), shared)
	v.GoTrade("005930.KS", "삼성전자")

	sel, ok := shared.Selection()
	require.True(t, ok)
	require.Equal(t, "005930.KS", sel.Symbol)
	require.Equal(t, store.TabTrade, shared.ActiveTab())
}

func TestTradeView_LoadsNameAndLastPrice(t *testing.T) {
	gw := newStubGateway()
	gw.names["005930.KS"] = "삼성전자"
	var gotLimit atomic.Int64
	gw.candlesFn = func(_ context.Context, symbol string, limit int) ([]model.Candle, error) {
		gotLimit.Store(int64(limit))
		return testCandles(symbol, []float64{70000}), nil
	}

	shared := store.NewStore()
	v := NewTradeView(gw, settings.NewCache(gw), shared, nil, "005930.KS")
	v.Mount(context.Background())
	defer v.Unmount()

	eventually(t, func() bool { return v.Name() == "삼성전자" }, "name should resolve")
	require.Equal(t, 70000.0, v.LastPrice())
	require.Equal(t, int64(1), gotLimit.Load(), "trade view only needs the last close")

	sel, ok := shared.Selection()
	require.True(t, ok)
	require.Equal(t, "삼성전자", sel.Name)
}

func TestTradeView_SymbolChangeResetsSide(t *testing.T) {
	gw := newStubGateway()
	v := NewTradeView(gw, settings.NewCache(gw), store.NewStore(), nil, "AAA")
	v.Mount(context.Background())
	defer v.Unmount()

	v.SetSide(model.Sell)
	require.Equal(t, model.Sell, v.Ticket().Side)

	v.SetSymbol("bbb")
	require.Equal(t, "BBB", v.Symbol(), "symbols are upper-cased")
	require.Equal(t, model.Buy, v.Ticket().Side, "side resets to BUY on symbol change")
}

func TestTradeView_UnknownPriceDoesNotBlockSubmission(t *testing.T) {
	gw := newStubGateway()
	gw.candlesFn = func(context.Context, string, int) ([]model.Candle, error) {
		return nil, errors.New("market data down")
	}

	v := NewTradeView(gw, settings.NewCache(gw), store.NewStore(), order.NewSubmitter(gw, nil, nil), "AAA")
	v.Mount(context.Background())
	defer v.Unmount()

	tk := v.Ticket()
	tk.Approved = true
	tk.Qty = 2
	res := v.Submit(context.Background())

	require.True(t, res.OK)
	require.Equal(t, "order sent: accepted", v.Message())
}
