// Package openai implements the Translator and Transcriber ports using the
// go-openai client for chat completions and Whisper transcription.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.Translator  = (*Client)(nil)
	_ driven.Transcriber = (*Client)(nil)
)

// DefaultModel is used when a TranslationRequest does not name a model.
const DefaultModel = "gpt-4"

// Client implements chat translation and audio transcription against the OpenAI API.
type Client struct {
	api          *goopenai.Client
	defaultModel string
}

// NewClient creates a Client authenticated with apiKey.
func NewClient(apiKey string) *Client {
	return &Client{api: goopenai.NewClient(apiKey), defaultModel: DefaultModel}
}

// NewClientWithBaseURL creates a Client that talks to baseURL instead of api.openai.com.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{api: goopenai.NewClientWithConfig(cfg), defaultModel: DefaultModel}
}

// Translate sends req as a chat completion and returns the first choice's content.
func (c *Client) Translate(ctx context.Context, req driven.TranslationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	var messages []goopenai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	if req.Temperature > 0 {
		chatReq.Temperature = req.Temperature
	}

	slog.Debug("openai chat completion", "model", model, "prompt_bytes", len(req.Prompt))

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion with %s: %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// TranscribeSRT transcribes the audio file at audioPath with Whisper and
// returns the transcript in SRT format.
func (c *Client) TranscribeSRT(ctx context.Context, audioPath string) (string, error) {
	slog.Debug("openai transcription", "file", audioPath)

	resp, err := c.api.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    goopenai.Whisper1,
		FilePath: audioPath,
		Format:   goopenai.AudioResponseFormatSRT,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", audioPath, err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("transcribe %s: empty transcript", audioPath)
	}

	return resp.Text, nil
}
