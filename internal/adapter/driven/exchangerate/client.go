// Package exchangerate implements the ExchangeRateSource port against the
// open.er-api.com latest-rates endpoint.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ExchangeRateSource = (*Client)(nil)

const requestTimeout = 15 * time.Second

// Client fetches currency rates from a single latest-rates URL. Responses
// are cached in memory so repeated lookups honour the API's cache headers.
type Client struct {
	http *http.Client
	url  string
}

// NewClient creates a Client for url with an in-memory HTTP cache.
func NewClient(url string) *Client {
	return NewClientWithHTTPClient(&http.Client{
		Transport: httpcache.NewMemoryCacheTransport(),
		Timeout:   requestTimeout,
	}, url)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, url string) *Client {
	return &Client{http: httpClient, url: url}
}

type latestResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// Rate returns how many units of quote one unit of base buys. The configured
// URL determines the base currency; a mismatching base returns ErrRateUnavailable.
func (c *Client) Rate(ctx context.Context, base, quote string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build exchange rate request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch exchange rate: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("exchange rate response", "status", resp.StatusCode,
		"cached", resp.Header.Get(httpcache.XFromCache) != "")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("fetch exchange rate: %w: %d - %s",
			driven.ErrRateUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode exchange rate response: %w", err)
	}

	if payload.BaseCode != "" && !strings.EqualFold(payload.BaseCode, base) {
		return 0, fmt.Errorf("rate %s->%s: %w: source base is %s", base, quote, driven.ErrRateUnavailable, payload.BaseCode)
	}

	rate, ok := payload.Rates[strings.ToUpper(quote)]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rate %s->%s: %w", base, quote, driven.ErrRateUnavailable)
	}
	return rate, nil
}
