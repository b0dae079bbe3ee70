package driven

import (
	"context"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

// VideoSource defines the driven port for extracting metadata and media from
// a video-hosting site.
type VideoSource interface {
	// FetchInfo extracts metadata without downloading media.
	FetchInfo(ctx context.Context, url string) (*model.VideoInfo, error)
	// DownloadAudio downloads the audio stream of url into dir, naming the
	// file baseName plus the container extension, and returns its path.
	DownloadAudio(ctx context.Context, url, dir, baseName string) (string, error)
}
