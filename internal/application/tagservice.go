package application

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// DefaultVideoTitle names the tags file when a video has no title.
const DefaultVideoTitle = "video"

var unsafeFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// TagService extracts the tag list of a video.
type TagService struct {
	source driven.VideoSource
	ws     driven.Workspace
	out    io.Writer
}

// NewTagService creates a TagService writing tag files into ws.
func NewTagService(source driven.VideoSource, ws driven.Workspace, out io.Writer) *TagService {
	return &TagService{source: source, ws: ws, out: out}
}

// SaveTags prints the tags of the video at url and writes them one per line
// to "<title>.tags". It returns the file name.
func (s *TagService) SaveTags(ctx context.Context, url string) (string, error) {
	info, err := s.source.FetchInfo(ctx, url)
	if err != nil {
		return "", err
	}

	title := info.Title
	if title == "" {
		title = DefaultVideoTitle
	}

	fmt.Fprintf(s.out, "Tagi wideo: %s\n", strings.Join(info.Tags, ", "))

	var b strings.Builder
	for _, tag := range info.Tags {
		b.WriteString(tag)
		b.WriteString("\n")
	}

	name := TagsFileName(title)
	if err := s.ws.WriteText(name, b.String()); err != nil {
		return "", err
	}
	fmt.Fprintf(s.out, "Tagi zostały zapisane do pliku %s.\n", name)
	return name, nil
}

// TagsFileName drops the characters Windows forbids in file names from title
// and appends ".tags".
func TagsFileName(title string) string {
	return unsafeFilenameChars.ReplaceAllString(title, "") + ".tags"
}
