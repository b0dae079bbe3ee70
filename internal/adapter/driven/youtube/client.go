// Package youtube implements the CaptionPlatform port with the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CaptionPlatform = (*Client)(nil)

// Scope grants caption and metadata management for the authorized channel.
const Scope = yt.YoutubeForceSslScope

// captionContentType is the MIME type captions are uploaded with.
const captionContentType = "application/octet-stream"

// Client implements driven.CaptionPlatform using the YouTube Data API.
type Client struct {
	svc *yt.Service
}

// NewClient creates a Client that authorizes requests with httpClient,
// typically an oauth2 client carrying the channel owner's token.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ListCaptions returns the caption tracks attached to videoID.
func (c *Client) ListCaptions(ctx context.Context, videoID string) ([]model.CaptionTrack, error) {
	resp, err := c.svc.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list captions for %s: %w", videoID, wrapNotFound(err))
	}

	tracks := make([]model.CaptionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		track := model.CaptionTrack{ID: item.Id}
		if item.Snippet != nil {
			track.Language = item.Snippet.Language
			track.Name = item.Snippet.Name
			track.IsDraft = item.Snippet.IsDraft
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// DeleteCaption removes the caption track with the given ID.
func (c *Client) DeleteCaption(ctx context.Context, captionID string) error {
	if err := c.svc.Captions.Delete(captionID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete caption %s: %w", captionID, wrapNotFound(err))
	}
	slog.Debug("deleted caption", "caption_id", captionID)
	return nil
}

// InsertCaption uploads body as a published caption track in language.
func (c *Client) InsertCaption(ctx context.Context, videoID, language, name string, body io.Reader) error {
	caption := &yt.Caption{
		Snippet: &yt.CaptionSnippet{
			VideoId:         videoID,
			Language:        language,
			Name:            name,
			IsDraft:         false,
			ForceSendFields: []string{"IsDraft"},
		},
	}

	created, err := c.svc.Captions.Insert([]string{"snippet"}, caption).
		Media(body, googleapi.ContentType(captionContentType)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("insert %s caption for %s: %w", language, videoID, wrapNotFound(err))
	}
	slog.Debug("inserted caption", "video_id", videoID, "language", language, "caption_id", created.Id)
	return nil
}

// UpdateLocalizations merges locs into the video's localizations. When the
// video has no default language, defaultLanguage is set.
func (c *Client) UpdateLocalizations(ctx context.Context, videoID, defaultLanguage string, locs map[string]model.Localization) error {
	parts := []string{"snippet", "localizations"}

	resp, err := c.svc.Videos.List(parts).Id(videoID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get video %s: %w", videoID, wrapNotFound(err))
	}
	if len(resp.Items) == 0 {
		return fmt.Errorf("get video %s: %w", videoID, driven.ErrNotFound)
	}

	video := resp.Items[0]
	if video.Snippet == nil {
		video.Snippet = &yt.VideoSnippet{}
	}
	if video.Snippet.DefaultLanguage == "" {
		video.Snippet.DefaultLanguage = defaultLanguage
	}
	if video.Localizations == nil {
		video.Localizations = make(map[string]yt.VideoLocalization, len(locs))
	}
	for lang, loc := range locs {
		video.Localizations[lang] = yt.VideoLocalization{
			Title:       loc.Title,
			Description: loc.Description,
		}
	}

	if _, err := c.svc.Videos.Update(parts, video).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update video %s localizations: %w", videoID, wrapNotFound(err))
	}
	return nil
}

// wrapNotFound maps a 404 API error to driven.ErrNotFound.
func wrapNotFound(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", driven.ErrNotFound, apiErr.Message)
	}
	return err
}
