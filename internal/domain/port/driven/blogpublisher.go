package driven

import (
	"context"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

// BlogPublisher defines the driven port for the blog hosting platform.
type BlogPublisher interface {
	InsertPost(ctx context.Context, blogID string, post model.BlogPost) (*model.PublishedPost, error)
}
