// Package discord implements the Notifier port with a Discord incoming webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Notifier = (*Webhook)(nil)

const requestTimeout = 15 * time.Second

// Webhook posts messages to one Discord webhook URL.
type Webhook struct {
	http *http.Client
	url  string
}

// NewWebhook creates a Webhook for url.
func NewWebhook(url string) *Webhook {
	return NewWebhookWithHTTPClient(&http.Client{Timeout: requestTimeout}, url)
}

// NewWebhookWithHTTPClient creates a Webhook with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewWebhookWithHTTPClient(httpClient *http.Client, url string) *Webhook {
	return &Webhook{http: httpClient, url: url}
}

// Notify posts message as the webhook content. Discord answers a successful
// post with 204 No Content; any other status is an error carrying the body.
func (w *Webhook) Notify(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("post webhook: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
