// Package backend is a read-only HTTP client for the local quant-service.
// Every method performs a single GET and decodes the JSON body; there are no
// retries and no caching, so a failed call surfaces immediately to the caller.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client talks to one quant-service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New returns a client for the quant-service at baseURL. A non-positive
// timeout falls back to 15s. The timeout is the only deadline applied here;
// callers add their own via ctx if they need one.
func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// getJSON performs one GET against path and decodes the response into out.
// The error text deliberately carries only the path, not the host, so it is
// stable across deployments.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("backend request", "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decoding response: %w", path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Endpoints
// ---------------------------------------------------------------------------

// TVSnapshot fetches one TradingView screener snapshot by id.
func (c *Client) TVSnapshot(ctx context.Context, snapshotID string) (*TVSnapshot, error) {
	var out TVSnapshot
	path := "/integrations/tradingview/snapshots/" + url.PathEscape(snapshotID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockBars fetches daily OHLCV bars for a symbol. days <= 0 leaves the
// window to the service default.
func (c *Client) StockBars(ctx context.Context, symbol string, days int) (*StockBarsResponse, error) {
	var out StockBarsResponse
	path := "/market/stocks/" + url.PathEscape(symbol) + "/bars"
	if err := c.getJSON(ctx, path, daysQuery(days), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockChips fetches chip-distribution rows for a symbol.
func (c *Client) StockChips(ctx context.Context, symbol string, days int) (*StockChipsResponse, error) {
	var out StockChipsResponse
	path := "/market/stocks/" + url.PathEscape(symbol) + "/chips"
	if err := c.getJSON(ctx, path, daysQuery(days), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockFundFlow fetches per-stock fund-flow rows for a symbol.
func (c *Client) StockFundFlow(ctx context.Context, symbol string, days int) (*StockFundFlowResponse, error) {
	var out StockFundFlowResponse
	path := "/market/stocks/" + url.PathEscape(symbol) + "/fund-flow"
	if err := c.getJSON(ctx, path, daysQuery(days), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BrokerSnapshot fetches one extracted broker screenshot.
func (c *Client) BrokerSnapshot(ctx context.Context, broker, snapshotID string) (*BrokerSnapshot, error) {
	var out BrokerSnapshot
	path := "/broker/" + url.PathEscape(broker) + "/snapshots/" + url.PathEscape(snapshotID)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BrokerState fetches the consolidated state of one broker account.
func (c *Client) BrokerState(ctx context.Context, broker, accountID string) (*BrokerStateResponse, error) {
	var out BrokerStateResponse
	path := "/broker/" + url.PathEscape(broker) + "/accounts/" + url.PathEscape(accountID) + "/state"
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StrategyDaily fetches an account's daily strategy report. An empty date
// means the latest report.
func (c *Client) StrategyDaily(ctx context.Context, accountID, date string) (*StrategyReport, error) {
	var out StrategyReport
	path := "/strategy/accounts/" + url.PathEscape(accountID) + "/daily"
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IndustryFundFlow fetches the CN industry fund-flow ranking. Zero values
// leave the corresponding parameter to the service default.
func (c *Client) IndustryFundFlow(ctx context.Context, days, topN int, asOfDate string) (*IndustryFlowResponse, error) {
	var out IndustryFlowResponse
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	if topN > 0 {
		q.Set("topN", strconv.Itoa(topN))
	}
	if asOfDate != "" {
		q.Set("asOfDate", asOfDate)
	}
	if err := c.getJSON(ctx, "/market/cn/industry-fund-flow", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeaderStocks fetches recent leader-stock picks.
func (c *Client) LeaderStocks(ctx context.Context, days int) (*LeaderStocksResponse, error) {
	var out LeaderStocksResponse
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	// force must stay false here: a context build must never trigger a live
	// leader recompute on the service side.
	q.Set("force", "false")
	if err := c.getJSON(ctx, "/leader", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarketSentiment fetches the CN market sentiment series.
func (c *Client) MarketSentiment(ctx context.Context, days int, asOfDate string) (*SentimentResponse, error) {
	var out SentimentResponse
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	if asOfDate != "" {
		q.Set("asOfDate", asOfDate)
	}
	if err := c.getJSON(ctx, "/market/cn/sentiment", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func daysQuery(days int) url.Values {
	if days <= 0 {
		return nil
	}
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	return q
}
