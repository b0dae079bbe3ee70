package driven

import (
	"context"
	"io"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

// CaptionPlatform defines the driven port for managing captions and
// localized metadata of an uploaded video.
type CaptionPlatform interface {
	ListCaptions(ctx context.Context, videoID string) ([]model.CaptionTrack, error)
	DeleteCaption(ctx context.Context, captionID string) error
	// InsertCaption uploads a new, non-draft caption track read from body.
	InsertCaption(ctx context.Context, videoID, language, name string, body io.Reader) error
	// UpdateLocalizations merges locs into the video's localizations.
	// Returns ErrNotFound if the video does not exist.
	UpdateLocalizations(ctx context.Context, videoID, defaultLanguage string, locs map[string]model.Localization) error
}
