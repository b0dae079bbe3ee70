// Package gemini implements the Translator port using Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/genai"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Translator = (*Client)(nil)

// DefaultModel is used when a TranslationRequest does not name a model.
const DefaultModel = "gemini-2.5-flash"

// Client implements driven.Translator with genai GenerateContent calls.
type Client struct {
	client       *genai.Client
	defaultModel string
}

// NewClient creates a Gemini client for apiKey.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	return newClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(ctx context.Context, httpClient *http.Client, baseURL, apiKey string) (*Client, error) {
	return newClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
}

func newClient(ctx context.Context, cfg *genai.ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, defaultModel: DefaultModel}, nil
}

// Translate sends req.Prompt as user content with req.System as the system
// instruction and returns the concatenated text of the first candidate.
func (c *Client) Translate(ctx context.Context, req driven.TranslationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}

	slog.Debug("gemini generate content", "model", model, "prompt_bytes", len(req.Prompt))

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generate content with %s: empty response", model)
	}
	return text, nil
}
