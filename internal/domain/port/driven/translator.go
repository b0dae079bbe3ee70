package driven

import "context"

// TranslationRequest describes one text translation.
type TranslationRequest struct {
	// Model overrides the adapter's default model when non-empty.
	Model string
	// System is sent as a system instruction when non-empty.
	System string
	// Prompt is the user message; it carries the text to translate.
	Prompt string
	// Temperature is passed through when > 0.
	Temperature float32
}

// Translator defines the driven port for a language-model translation backend.
type Translator interface {
	Translate(ctx context.Context, req TranslationRequest) (string, error)
}

// Transcriber turns an audio file into SRT subtitles.
type Transcriber interface {
	TranscribeSRT(ctx context.Context, audioPath string) (string, error)
}
