package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"TradeDesk/internal/model"
)

// Client implements Gateway against the REST API.
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewClient creates a client with optional proxy support.
func NewClient(baseURL, apiKey, proxyURL string, timeout time.Duration) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Health probes the service liveness endpoint.
func (c *Client) Health(ctx context.Context) (bool, error) {
	var result struct {
		OK bool `json:"ok"`
	}
	if err := c.getJSON(ctx, "/api/health", nil, &result); err != nil {
		return false, err
	}
	return result.OK, nil
}

// Settings fetches the operator-configured parameter snapshot.
func (c *Client) Settings(ctx context.Context) (*model.Settings, error) {
	var result model.Settings
	if err := c.getJSON(ctx, "/api/settings", nil, &result); err != nil {
		return nil, fmt.Errorf("fetch settings: %w", err)
	}
	return &result, nil
}

// Holdings fetches the current positions and cash balance.
func (c *Client) Holdings(ctx context.Context) (*model.Holdings, error) {
	var result model.Holdings
	if err := c.getJSON(ctx, "/api/holdings", nil, &result); err != nil {
		return nil, fmt.Errorf("fetch holdings: %w", err)
	}
	return &result, nil
}

// Recommendations fetches the top-N server-ranked picks in arrival order.
func (c *Client) Recommendations(ctx context.Context, top int) ([]model.RecommendationCard, error) {
	q := url.Values{"top": {strconv.Itoa(top)}}
	var result struct {
		Items []model.RecommendationCard `json:"items"`
	}
	if err := c.getJSON(ctx, "/api/reco", q, &result); err != nil {
		return nil, fmt.Errorf("fetch recommendations: %w", err)
	}
	return result.Items, nil
}

// Candles fetches up to limit bars for a symbol, chronological ascending.
func (c *Client) Candles(ctx context.Context, symbol string, limit int) ([]model.Candle, error) {
	q := url.Values{"symbol": {symbol}, "limit": {strconv.Itoa(limit)}}
	var result struct {
		Candles []model.Candle `json:"candles"`
	}
	if err := c.getJSON(ctx, "/api/candles", q, &result); err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	candles := result.Candles
	// Ensure chronological order
	sort.Slice(candles, func(i, j int) bool { return candles[i].Timestamp.Before(candles[j].Timestamp) })
	return candles, nil
}

// ResolveName looks up the display name for a symbol.
func (c *Client) ResolveName(ctx context.Context, symbol string) (string, error) {
	q := url.Values{"symbol": {symbol}}
	var result struct {
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}
	if err := c.getJSON(ctx, "/api/name", q, &result); err != nil {
		return "", fmt.Errorf("resolve name: %w", err)
	}
	return result.Name, nil
}

// SubmitOrder posts a validated order payload to the order endpoint.
func (c *Client) SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("submit order: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	var result model.OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: status %d, body: %s", path, resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}
