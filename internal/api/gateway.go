package api

import (
	"context"

	"TradeDesk/internal/model"
)

// Gateway defines the remote trading/market-data service surface the client
// consumes. The exact wire format is owned by the server; this interface
// only mirrors the contract.
type Gateway interface {
	Health(ctx context.Context) (bool, error)
	Settings(ctx context.Context) (*model.Settings, error)
	Holdings(ctx context.Context) (*model.Holdings, error)
	Recommendations(ctx context.Context, top int) ([]model.RecommendationCard, error)
	Candles(ctx context.Context, symbol string, limit int) ([]model.Candle, error)
	ResolveName(ctx context.Context, symbol string) (string, error)
	SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
}
