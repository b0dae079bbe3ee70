package model

// VideoInfo holds the metadata extracted for a single video without
// downloading its media.
type VideoInfo struct {
	ID          string
	URL         string
	Title       string
	Description string
	Tags        []string
}

// Localization is a translated title and description for one language.
type Localization struct {
	Title       string
	Description string
}

// CaptionTrack is a caption track already attached to a video.
type CaptionTrack struct {
	ID       string
	Language string
	Name     string
	IsDraft  bool
}
