// Package blogger implements the BlogPublisher port with the Blogger API v3.
package blogger

import (
	"context"
	"fmt"
	"net/http"

	bg "google.golang.org/api/blogger/v3"
	"google.golang.org/api/option"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.BlogPublisher = (*Client)(nil)

// Scope grants read/write access to the authorized user's blogs.
const Scope = bg.BloggerScope

// Client implements driven.BlogPublisher using the Blogger API.
type Client struct {
	svc *bg.Service
}

// NewClient creates a Client that authorizes requests with httpClient.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := bg.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create blogger service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// InsertPost creates post on blogID, as a draft when post.Draft is set.
func (c *Client) InsertPost(ctx context.Context, blogID string, post model.BlogPost) (*model.PublishedPost, error) {
	status := model.PostStatusLive
	if post.Draft {
		status = model.PostStatusDraft
	}

	created, err := c.svc.Posts.Insert(blogID, &bg.Post{
		Title:   post.Title,
		Content: post.Content,
		Status:  string(status),
	}).IsDraft(post.Draft).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert post %q on blog %s: %w", post.Title, blogID, err)
	}

	result := &model.PublishedPost{
		ID:     created.Id,
		URL:    created.Url,
		Status: model.PostStatus(created.Status),
	}
	if result.Status == "" {
		result.Status = status
	}
	return result, nil
}
