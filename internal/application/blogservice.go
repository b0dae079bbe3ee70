package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
	"github.com/ericfisherdev/chorekit/internal/markup"
)

// Placeholders substituted into a recipe post template.
const (
	IngredientsPlaceholder = "TU SKLADNIKI"
	VideoIDPlaceholder     = "TU_ID"
)

// RecipeTemplate is the HTML body of a recipe post. The preparation section
// is left for the author to fill in before publishing the draft.
const RecipeTemplate = `<p>&nbsp;</p><h2><b>🛒 Składniki:</b></h2><div>TU SKLADNIKI</div><h2>🔪 Przygotowanie:</h2><p>TU PRZYGOTOWANIE</p><h2>🔗&nbsp;Linki:</h2><div><div>Facebook:&nbsp; &nbsp;<a href="https://www.facebook.com/KulinarneePrzygody/" target="_blank">https://www.facebook.com/KulinarneePrzygody/</a></div><div>Instagram:&nbsp;&nbsp;<a href="https://www.instagram.com/kulinarneprzygody_/" target="_blank">https://www.instagram.com/kulinarneprzygody_/</a></div><div>&nbsp; &nbsp; &nbsp; &nbsp; &nbsp; &nbsp; &nbsp; &nbsp; &nbsp; &nbsp; &nbsp;</div><div>Blog:&nbsp; &nbsp; &nbsp; &nbsp; &nbsp;&nbsp;<a href="https://kulinarneeprzygody.blogspot.com/" target="_blank">https://kulinarneeprzygody.blogspot.com/</a></div><div><span>&nbsp;&nbsp; &nbsp;</span><span>&nbsp;&nbsp; &nbsp;</span><span>&nbsp;&nbsp; &nbsp;</span><span>&nbsp;&nbsp; &nbsp;</span><span>&nbsp; &nbsp;</span><a href="https://www.kulinarneprzygody.com/" target="_blank">https://www.kulinarneprzygody.com/</a>&nbsp; &nbsp; &nbsp; &nbsp; &nbsp;&nbsp;</div><div>Pinterest&nbsp; &nbsp; &nbsp;<a href="https://pl.pinterest.com/mnawrolska/kulinarne-przygody/" target="_blank">https://pl.pinterest.com/mnawrolska/kulinarne-przygody/</a></div></div><div><br /></div><h2>&nbsp;📺&nbsp;Obejrzyj:</h2><div class="separator" style="clear: both; text-align: center;"><iframe allowfullscreen="" class="BLOG_video_class" height="380" src="https://www.youtube.com/embed/TU_ID" width="551" youtube-src-id="TU_ID"></iframe></div><br /><p><br /></p>`

// BlogOptions configures one recipe post.
type BlogOptions struct {
	BlogID   string
	VideoURL string
	Publish  bool
	// Template overrides RecipeTemplate when non-empty.
	Template string
}

// BlogService builds recipe posts from caption pipeline outputs and
// submits them to the blog.
type BlogService struct {
	ws        driven.Workspace
	publisher *Provider[driven.BlogPublisher]
	out       io.Writer
}

// NewBlogService creates a BlogService reading its inputs from ws.
func NewBlogService(ws driven.Workspace, publisher *Provider[driven.BlogPublisher], out io.Writer) *BlogService {
	return &BlogService{ws: ws, publisher: publisher, out: out}
}

// Compose reads the single "*.title.pl" and "*.description.pl" file in the
// workspace and renders the post for opts without publishing it.
func (s *BlogService) Compose(opts BlogOptions) (model.BlogPost, error) {
	titleFile, err := s.ws.FindOne(".title." + model.SourceLanguage)
	if err != nil {
		return model.BlogPost{}, err
	}
	descriptionFile, err := s.ws.FindOne(".description." + model.SourceLanguage)
	if err != nil {
		return model.BlogPost{}, err
	}

	title, err := s.ws.ReadText(titleFile)
	if err != nil {
		return model.BlogPost{}, err
	}
	description, err := s.ws.ReadText(descriptionFile)
	if err != nil {
		return model.BlogPost{}, err
	}

	tmpl := opts.Template
	if tmpl == "" {
		tmpl = RecipeTemplate
	}

	return model.BlogPost{
		Title:   strings.Join(strings.Fields(title), " "),
		Content: RenderRecipe(tmpl, description, VideoID(opts.VideoURL)),
		Draft:   !opts.Publish,
	}, nil
}

// Post composes the post and inserts it into opts.BlogID.
func (s *BlogService) Post(ctx context.Context, opts BlogOptions) (*model.PublishedPost, error) {
	post, err := s.Compose(opts)
	if err != nil {
		return nil, err
	}

	publisher, err := s.publisher.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to blogger: %w", err)
	}

	published, err := publisher.InsertPost(ctx, opts.BlogID, post)
	if err != nil {
		return nil, err
	}
	slog.Info("inserted blog post", "blog_id", opts.BlogID, "post_id", published.ID, "status", published.Status)

	if post.Draft {
		fmt.Fprintf(s.out, "Post '%s' zapisany jako szkic.\n", post.Title)
	} else {
		fmt.Fprintf(s.out, "Post '%s' opublikowany.\n", post.Title)
	}
	return published, nil
}

// RenderRecipe substitutes the rendered ingredients and the video ID into tmpl.
func RenderRecipe(tmpl, ingredients, videoID string) string {
	html := markup.RenderMarkdown(strings.TrimSpace(ingredients))
	out := strings.ReplaceAll(tmpl, IngredientsPlaceholder, html)
	return strings.ReplaceAll(out, VideoIDPlaceholder, videoID)
}
