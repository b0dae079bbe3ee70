// Package ytdlp implements the VideoSource port by driving the yt-dlp binary
// through go-ytdlp.
package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.VideoSource = (*Source)(nil)

// AudioFormat is the YouTube format code of the m4a audio-only stream.
const AudioFormat = "140"

const progressInterval = 500 * time.Millisecond

// Source extracts metadata and audio through yt-dlp.
type Source struct {
	logger *slog.Logger
}

// NewSource creates a Source. A nil logger falls back to slog.Default().
func NewSource(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{logger: logger}
}

// infoJSON is the subset of yt-dlp's info dictionary chorekit reads.
type infoJSON struct {
	ID          string   `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	WebpageURL  string   `json:"webpage_url"`
}

// FetchInfo extracts metadata for url without downloading media.
func (s *Source) FetchInfo(ctx context.Context, url string) (*model.VideoInfo, error) {
	result, err := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		DumpSingleJSON().
		Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extract info for %s: %w", url, err)
	}

	info, err := parseInfo([]byte(result.Stdout))
	if err != nil {
		return nil, fmt.Errorf("extract info for %s: %w", url, err)
	}
	if info.URL == "" {
		info.URL = url
	}
	return info, nil
}

// DownloadAudio downloads the audio stream of url to dir/baseName.<ext> and
// returns the resulting path.
func (s *Source) DownloadAudio(ctx context.Context, url, dir, baseName string) (string, error) {
	dl := ytdlp.New().
		Format(AudioFormat).
		NoPlaylist().
		ForceOverwrites().
		Output(filepath.Join(dir, baseName+".%(ext)s"))

	var lastPercent = -1
	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		percent := progressPercent(float64(update.DownloadedBytes), float64(update.TotalBytes))
		if percent == lastPercent {
			return
		}
		lastPercent = percent
		s.logger.Info("downloading audio",
			"percent", percent,
			"downloaded_bytes", update.DownloadedBytes,
			"total_bytes", update.TotalBytes,
			"elapsed", time.Since(update.Started).Round(time.Second),
		)
	})

	result, err := dl.Run(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download audio for %s: %w", url, err)
	}

	if result != nil {
		if infos, err := result.GetExtractedInfo(); err == nil && len(infos) > 0 && infos[0].Filename != nil {
			if _, statErr := os.Stat(*infos[0].Filename); statErr == nil {
				s.logger.Info("download finished", "file", *infos[0].Filename)
				return *infos[0].Filename, nil
			}
		}
	}

	path, err := findDownloaded(dir, baseName)
	if err != nil {
		return "", fmt.Errorf("download audio for %s: %w", url, err)
	}
	s.logger.Info("download finished", "file", path)
	return path, nil
}

func parseInfo(raw []byte) (*model.VideoInfo, error) {
	var doc infoJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode info json: %w", err)
	}

	info := &model.VideoInfo{
		ID:   doc.ID,
		URL:  doc.WebpageURL,
		Tags: doc.Tags,
	}
	if doc.Title != nil {
		info.Title = *doc.Title
	}
	if doc.Description != nil {
		info.Description = *doc.Description
	}
	if info.Tags == nil {
		info.Tags = []string{}
	}
	return info, nil
}

// findDownloaded returns the single media file named baseName.<ext> in dir,
// ignoring yt-dlp's partial and fragment files.
func findDownloaded(dir, baseName string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, globEscape(baseName)+".*"))
	if err != nil {
		return "", fmt.Errorf("glob downloaded file: %w", err)
	}

	var files []string
	for _, m := range matches {
		ext := filepath.Ext(m)
		if ext == ".part" || ext == ".ytdl" || strings.Contains(ext, "-Frag") {
			continue
		}
		files = append(files, m)
	}

	switch len(files) {
	case 0:
		return "", errors.New("downloaded file not found")
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("ambiguous download: %d files match %s.*", len(files), baseName)
	}
}

func progressPercent(downloaded, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(downloaded / total * 100)
}

// globEscape escapes glob metacharacters in name.
func globEscape(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
