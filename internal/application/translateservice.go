package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// TranslateOptions configures a file translation.
type TranslateOptions struct {
	Model       string
	From        string
	To          string
	Temperature float32
}

// Defaults for TranslateOptions fields left empty.
const (
	DefaultTranslateModel = "gpt-4"
	DefaultTranslateFrom  = "auto"
	DefaultTranslateTo    = "English"
)

// TranslateService translates whole text files with a language model.
type TranslateService struct {
	translator driven.Translator
	ws         driven.Workspace
	out        io.Writer
}

// NewTranslateService creates a TranslateService reading and writing through ws.
func NewTranslateService(translator driven.Translator, ws driven.Workspace, out io.Writer) *TranslateService {
	return &TranslateService{translator: translator, ws: ws, out: out}
}

// TranslateFile translates the content of source and writes the trimmed
// reply to output.
func (s *TranslateService) TranslateFile(ctx context.Context, source, output string, opts TranslateOptions) error {
	if opts.Model == "" {
		opts.Model = DefaultTranslateModel
	}
	if opts.From == "" {
		opts.From = DefaultTranslateFrom
	}
	if opts.To == "" {
		opts.To = DefaultTranslateTo
	}

	content, err := s.ws.ReadText(source)
	if err != nil {
		return err
	}

	slog.Info("translating file", "source", source, "model", opts.Model, "from", opts.From, "to", opts.To)

	translated, err := s.translator.Translate(ctx, driven.TranslationRequest{
		Model:       opts.Model,
		System:      fmt.Sprintf("Translate the following text from %s to %s.", opts.From, opts.To),
		Prompt:      content,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return fmt.Errorf("translate %s: %w", source, err)
	}

	if err := s.ws.WriteText(output, strings.TrimSpace(translated)); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Translated text saved to %s\n", output)
	return nil
}
