package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
	"github.com/ericfisherdev/chorekit/internal/subtitle"
)

// Models used by the caption pipeline.
const (
	SubtitleModel = "gpt-4o"
	MetadataModel = "gpt-4o-mini"
)

// UnknownTitle replaces a missing video title.
const UnknownTitle = "unknown_title"

// AudioDir is the workspace subdirectory downloaded audio is moved into.
const AudioDir = "audio"

const (
	subtitlePrompt = "Przetłumacz poniższy plik SRT na język %s. " +
		"Proszę odpowiedzieć bez dodawania wstępu, komentarza ani dodatkowych oznaczeń. " +
		"Odpowiedź powinna zawierać wyłącznie tłumaczenie w tym samym formacie, co oryginał. " +
		"Nie dodawaj żadnych znaczników kodu, takich jak ``` lub innych formatów. " +
		"Odpowiedź powinna zawierać wyłącznie tłumaczenie w formacie SRT.\n\n" +
		"Oto treść:\n\n%s"

	metadataPrompt = "Przetłumacz poniższy tekst na język %s, " +
		"ale nie tłumacz żadnych adresów URL (zostaw je niezmienione). Tekst:\n\n%s"
)

var unsafeTitleChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// CaptionOptions selects what the caption pipeline does for one video.
type CaptionOptions struct {
	URL       string
	Languages []string
	Upload    bool
}

// CaptionResult lists the artifacts a pipeline run produced.
type CaptionResult struct {
	SafeTitle   string
	SubtitleSRT string

	// Subtitles maps language codes to translated SRT file names.
	Subtitles map[string]string

	// Metadata holds the translated title and description per language.
	Metadata map[string]model.Localization

	Uploaded  []string
	Localized bool
}

// CaptionService downloads, transcribes, translates and optionally
// publishes captions and localized metadata for a video.
type CaptionService struct {
	source      driven.VideoSource
	transcriber driven.Transcriber
	translator  driven.Translator
	ws          driven.Workspace
	platform    *Provider[driven.CaptionPlatform]
	parallel    int

	mu  sync.Mutex
	out io.Writer
}

// NewCaptionService creates a CaptionService. platform is only resolved when
// an upload is requested. parallel bounds concurrent metadata translations.
func NewCaptionService(
	source driven.VideoSource,
	transcriber driven.Transcriber,
	translator driven.Translator,
	ws driven.Workspace,
	platform *Provider[driven.CaptionPlatform],
	parallel int,
	out io.Writer,
) *CaptionService {
	if parallel < 1 {
		parallel = 1
	}
	return &CaptionService{
		source:      source,
		transcriber: transcriber,
		translator:  translator,
		ws:          ws,
		platform:    platform,
		parallel:    parallel,
		out:         out,
	}
}

// Run executes the pipeline for opts.URL.
func (s *CaptionService) Run(ctx context.Context, opts CaptionOptions) (*CaptionResult, error) {
	langs := uniqueLanguages(opts.Languages)

	s.printf("Pobieranie informacji o filmie (tytuł, opis)...\n")
	info, err := s.source.FetchInfo(ctx, opts.URL)
	if err != nil {
		return nil, err
	}

	title := info.Title
	if title == "" {
		title = UnknownTitle
	}
	safe := SafeTitle(title)
	if safe == "" {
		safe = UnknownTitle
	}
	result := &CaptionResult{
		SafeTitle: safe,
		Subtitles: map[string]string{},
		Metadata:  map[string]model.Localization{},
	}

	if err := s.ws.WriteText(safe+".title."+model.SourceLanguage, title); err != nil {
		return nil, err
	}
	if err := s.ws.WriteText(safe+".description."+model.SourceLanguage, info.Description); err != nil {
		return nil, err
	}

	s.printf("Rozpoczynanie pobierania pliku audio z YouTube...\n")
	audioPath, err := s.source.DownloadAudio(ctx, opts.URL, s.ws.Path(""), safe)
	if err != nil {
		return nil, err
	}

	s.printf("Pobieranie zakończone. Przechodzenie do transkrypcji...\n")
	transcript, err := s.transcriber.TranscribeSRT(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	result.SubtitleSRT = safe + ".srt." + model.SourceLanguage
	if err := s.ws.WriteText(result.SubtitleSRT, transcript); err != nil {
		return nil, err
	}
	s.printf("Transkrypcja zapisana w pliku: %s\n", result.SubtitleSRT)

	moved, err := s.ws.Move(filepath.Base(audioPath), AudioDir)
	if err != nil {
		return nil, err
	}
	s.printf("Plik audio został przeniesiony do katalogu: %s\n", moved)

	if err := s.translateSubtitles(ctx, result, transcript, langs); err != nil {
		return nil, err
	}
	if err := s.translateMetadata(ctx, result, title, info.Description, langs); err != nil {
		return nil, err
	}

	if !opts.Upload {
		s.printf("Zakończono przetwarzanie (tryb bez przesyłania do YouTube).\n")
		return result, nil
	}

	if err := s.publish(ctx, result, VideoID(opts.URL), langs); err != nil {
		return nil, err
	}
	s.printf("Zakończono przetwarzanie (tryb z przesyłaniem do YouTube).\n")
	return result, nil
}

// translateSubtitles writes "<srt base>.<lang>.srt" for every supported language.
func (s *CaptionService) translateSubtitles(ctx context.Context, result *CaptionResult, transcript string, langs []string) error {
	sourceCues := subtitle.CountCues(transcript)

	for _, lang := range langs {
		name, ok := model.LanguageName(lang)
		if !ok {
			s.unsupported(lang)
			continue
		}

		s.printf("Tłumaczenie pliku %s na język %s...\n", result.SubtitleSRT, name)
		translated, err := s.translator.Translate(ctx, driven.TranslationRequest{
			Model:  SubtitleModel,
			Prompt: fmt.Sprintf(subtitlePrompt, name, transcript),
		})
		if err != nil {
			return fmt.Errorf("translate subtitles to %s: %w", lang, err)
		}
		translated = normalizeTranslation(lang, subtitle.StripCodeFences(translated), sourceCues)

		file := SubtitleFileName(result.SubtitleSRT, lang)
		if err := s.ws.WriteText(file, translated); err != nil {
			return err
		}
		result.Subtitles[lang] = file
		s.printf("Przetłumaczony plik zapisany jako: %s\n", file)
	}
	return nil
}

// normalizeTranslation re-renders a translated SRT when it parses and warns
// when its cue count differs from the source. Unparsable output is returned
// as it came back from the model.
func normalizeTranslation(lang, translated string, sourceCues int) string {
	cues, err := subtitle.Parse(translated)
	if err != nil {
		slog.Warn("translated subtitles are not valid SRT, saving them unchanged", "language", lang, "error", err)
		return translated
	}
	if len(cues) != sourceCues {
		slog.Warn("translated subtitles have a different cue count",
			"language", lang, "source_cues", sourceCues, "translated_cues", len(cues))
	}
	return subtitle.Format(cues)
}

func (s *CaptionService) unsupported(lang string) {
	s.printf("Nieobsługiwany język: %s (obsługiwane: %s)\n", lang, strings.Join(model.SupportedLanguages(), ", "))
}

// translateMetadata translates the title and description into every
// requested language except the source language, in parallel.
func (s *CaptionService) translateMetadata(ctx context.Context, result *CaptionResult, title, description string, langs []string) error {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)

	for _, lang := range langs {
		if lang == model.SourceLanguage {
			continue
		}
		g.Go(func() error {
			translatedTitle, err := s.translateText(gctx, title, lang)
			if err != nil {
				return fmt.Errorf("translate title to %s: %w", lang, err)
			}
			translatedDescription, err := s.translateText(gctx, description, lang)
			if err != nil {
				return fmt.Errorf("translate description to %s: %w", lang, err)
			}

			if err := s.ws.WriteText(result.SafeTitle+".title."+lang, translatedTitle); err != nil {
				return err
			}
			if err := s.ws.WriteText(result.SafeTitle+".description."+lang, translatedDescription); err != nil {
				return err
			}

			mu.Lock()
			result.Metadata[lang] = model.Localization{Title: translatedTitle, Description: translatedDescription}
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// translateText translates text into lang leaving URLs untouched. An
// unsupported language returns text unchanged.
func (s *CaptionService) translateText(ctx context.Context, text, lang string) (string, error) {
	name, ok := model.LanguageName(lang)
	if !ok {
		s.unsupported(lang)
		return text, nil
	}
	return s.translator.Translate(ctx, driven.TranslationRequest{
		Model:  MetadataModel,
		Prompt: fmt.Sprintf(metadataPrompt, name, text),
	})
}

// publish uploads the source and translated captions, then the localized
// titles and descriptions.
func (s *CaptionService) publish(ctx context.Context, result *CaptionResult, videoID string, langs []string) error {
	platform, err := s.platform.Get(ctx)
	if err != nil {
		return fmt.Errorf("connect to youtube: %w", err)
	}

	if err := s.uploadCaption(ctx, platform, videoID, model.SourceLanguage, result.SubtitleSRT); err != nil {
		return err
	}
	result.Uploaded = append(result.Uploaded, model.SourceLanguage)

	for _, lang := range langs {
		if lang == model.SourceLanguage {
			continue
		}
		file := SubtitleFileName(result.SubtitleSRT, lang)
		if !s.ws.Exists(file) {
			continue
		}
		if err := s.uploadCaption(ctx, platform, videoID, lang, file); err != nil {
			return err
		}
		result.Uploaded = append(result.Uploaded, lang)
	}

	locs := make(map[string]model.Localization)
	for _, lang := range langs {
		loc, translated := result.Metadata[lang]
		if _, supported := model.LanguageName(lang); !translated || !supported {
			continue
		}
		locs[lang] = loc
	}
	if len(locs) == 0 {
		return nil
	}

	err = platform.UpdateLocalizations(ctx, videoID, model.SourceLanguage, locs)
	if errors.Is(err, driven.ErrNotFound) {
		s.printf("Nie znaleziono filmu o podanym ID.\n")
		slog.Warn("video not found, skipping localizations", "video_id", videoID)
		return nil
	}
	if err != nil {
		return err
	}
	result.Localized = true
	for lang := range locs {
		s.printf("Zaktualizowano tytuł i opis w języku %s (%s).\n", lang, model.LanguageNameOr(lang))
	}
	return nil
}

// uploadCaption replaces every existing track in lang with the content of file.
func (s *CaptionService) uploadCaption(ctx context.Context, platform driven.CaptionPlatform, videoID, lang, file string) error {
	name := model.LanguageNameOr(lang)
	s.printf("Przesyłanie napisów z pliku %s dla filmu %s w języku %s...\n", file, videoID, name)

	existing, err := platform.ListCaptions(ctx, videoID)
	if err != nil {
		return err
	}
	for _, track := range existing {
		if track.Language != lang {
			continue
		}
		s.printf("Napisy w języku %s (%s) już istnieją. Usuwanie...\n", lang, name)
		if err := platform.DeleteCaption(ctx, track.ID); err != nil {
			return err
		}
	}

	content, err := s.ws.ReadText(file)
	if err != nil {
		return err
	}
	if err := platform.InsertCaption(ctx, videoID, lang, name, strings.NewReader(content)); err != nil {
		return err
	}
	s.printf("Napisy z pliku %s w języku %s (%s) zostały przesłane pomyślnie.\n", file, name, lang)
	return nil
}

func (s *CaptionService) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// SafeTitle keeps letters, digits, underscores, whitespace and hyphens of
// title and replaces spaces with underscores.
func SafeTitle(title string) string {
	return strings.ReplaceAll(unsafeTitleChars.ReplaceAllString(title, ""), " ", "_")
}

// SubtitleFileName names the translation of srtFile into lang by replacing
// its final extension, so "Film.srt.pl" becomes "Film.srt.en.srt".
func SubtitleFileName(srtFile, lang string) string {
	return strings.TrimSuffix(srtFile, filepath.Ext(srtFile)) + "." + lang + ".srt"
}

// VideoID extracts the video ID from a watch URL's v= parameter, falling
// back to the last path segment for short and embed links.
func VideoID(rawURL string) string {
	if strings.Contains(rawURL, "v=") {
		if u, err := url.Parse(rawURL); err == nil {
			if v := u.Query().Get("v"); v != "" {
				return v
			}
		}
		_, after, _ := cutLast(rawURL, "v=")
		id, _, _ := strings.Cut(after, "&")
		return id
	}

	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return lastSegment(u.Path)
	}
	return lastSegment(rawURL)
}

func lastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

// uniqueLanguages trims and de-duplicates codes, keeping first occurrences.
func uniqueLanguages(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
