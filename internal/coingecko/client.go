// Package coingecko implements a typed HTTP client for the CoinGecko v3 API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/whatcoin/whatcoin/pkg/metrics"
)

// DefaultBaseURL is the public CoinGecko API endpoint.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// DaysMax requests the full available history from endpoints that accept a
// day-count window.
const DaysMax = -1

// Config defines connection parameters for the client.
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client talks to the CoinGecko REST API. All methods issue a single request
// with no retries; a failed fetch is reported once to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// New creates a Client from cfg, applying defaults for unset fields.
func New(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		log:        log,
	}
}

// ListCoins returns the full coin catalog.
func (c *Client) ListCoins(ctx context.Context) ([]CoinListEntry, error) {
	var out []CoinListEntry
	if err := c.get(ctx, "/coins/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SupportedVsCurrencies returns the currency codes prices can be quoted in.
func (c *Client) SupportedVsCurrencies(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/simple/supported_vs_currencies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Markets fetches market records for ids quoted in vsCurrency. pctWindows
// selects the percentage-change columns (e.g. "1h,24h,7d,30d"); perPage
// bounds the result when ids is empty (top-N by market cap).
func (c *Client) Markets(ctx context.Context, ids []string, vsCurrency, pctWindows string, perPage int) ([]Market, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	if len(ids) > 0 {
		q.Set("ids", strings.Join(ids, ","))
	}
	if pctWindows != "" {
		q.Set("price_change_percentage", pctWindows)
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}

	var out []Market
	if err := c.get(ctx, "/coins/markets", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SimplePrice returns current prices for ids in each of vsCurrencies.
func (c *Client) SimplePrice(ctx context.Context, ids, vsCurrencies []string) (SimplePrices, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", strings.Join(vsCurrencies, ","))

	var out SimplePrices
	if err := c.get(ctx, "/simple/price", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarketChart fetches the price and volume time series for id over the last
// days days.
func (c *Client) MarketChart(ctx context.Context, id, vsCurrency string, days int) (*MarketChart, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("days", formatDays(days))

	var out MarketChart
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OHLC fetches open/high/low/close candles for id over the last days days.
func (c *Client) OHLC(ctx context.Context, id, vsCurrency string, days int) ([]Candle, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("days", formatDays(days))

	var out []Candle
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/ohlc", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func formatDays(days int) string {
	if days == DaysMax {
		return "max"
	}
	return strconv.Itoa(days)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("coingecko rate limiter: %w", err)
		}
	}

	endpoint := metricsEndpoint(path)
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build coingecko request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, "network_error", time.Since(start))
		return fmt.Errorf("coingecko request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordAPIRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn("coingecko request failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return fmt.Errorf("coingecko %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode coingecko response %s: %w", path, err)
	}
	return nil
}

// metricsEndpoint collapses per-coin paths so metric labels stay bounded.
func metricsEndpoint(path string) string {
	if strings.HasPrefix(path, "/coins/") {
		switch {
		case strings.HasSuffix(path, "/market_chart"):
			return "/coins/{id}/market_chart"
		case strings.HasSuffix(path, "/ohlc"):
			return "/coins/{id}/ohlc"
		}
	}
	return path
}
