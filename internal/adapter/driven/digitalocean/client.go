// Package digitalocean implements the CloudClient port using the godo library.
package digitalocean

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/digitalocean/godo"
	"golang.org/x/oauth2"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CloudClient = (*Client)(nil)

// pageSize is the largest page the DigitalOcean API accepts.
const pageSize = 200

// Client implements the driven.CloudClient port using godo.
type Client struct {
	godo *godo.Client
}

// NewClient creates a DigitalOcean API client authenticated with a personal
// access token through an oauth2 static token source.
func NewClient(ctx context.Context, token string) *Client {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return &Client{godo: godo.NewClient(httpClient)}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client, err := godo.New(httpClient, godo.SetBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("create godo client: %w", err)
	}
	return &Client{godo: client}, nil
}

// ListDroplets returns every droplet in the account, following pagination.
func (c *Client) ListDroplets(ctx context.Context) ([]model.Droplet, error) {
	var result []model.Droplet
	opts := &godo.ListOptions{PerPage: pageSize}

	for {
		droplets, resp, err := c.godo.Droplets.List(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("list droplets page %d: %w", opts.Page, err)
		}

		for _, d := range droplets {
			result = append(result, mapDroplet(d))
		}

		next, ok, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("list droplets: %w", err)
		}
		if !ok {
			break
		}
		opts.Page = next
	}

	slog.Debug("listed droplets", "count", len(result))
	return result, nil
}

// DeleteDroplet destroys the droplet with the given ID.
func (c *Client) DeleteDroplet(ctx context.Context, id int) error {
	if _, err := c.godo.Droplets.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete droplet %d: %w", id, wrapNotFound(err))
	}
	return nil
}

// ListProjects returns every project in the account, following pagination.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var result []model.Project
	opts := &godo.ListOptions{PerPage: pageSize}

	for {
		projects, resp, err := c.godo.Projects.List(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("list projects page %d: %w", opts.Page, err)
		}

		for _, p := range projects {
			result = append(result, model.Project{
				ID:        p.ID,
				Name:      p.Name,
				IsDefault: p.IsDefault,
			})
		}

		next, ok, err := nextPage(resp)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		if !ok {
			break
		}
		opts.Page = next
	}

	slog.Debug("listed projects", "count", len(result))
	return result, nil
}

// DeleteProject deletes the project with the given ID.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if _, err := c.godo.Projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project %s: %w", id, wrapNotFound(err))
	}
	return nil
}

// FetchBalance returns the customer balance document as decoded JSON. The raw
// document is requested instead of godo.Balance so that fields the library
// does not model survive into the saved snapshot. Numbers are kept as
// json.Number so they are written back unchanged.
func (c *Client) FetchBalance(ctx context.Context) (map[string]any, error) {
	req, err := c.godo.NewRequest(ctx, http.MethodGet, "v2/customers/my/balance", nil)
	if err != nil {
		return nil, fmt.Errorf("build balance request: %w", err)
	}

	var body bytes.Buffer
	if _, err := c.godo.Do(ctx, req, &body); err != nil {
		return nil, fmt.Errorf("fetch balance: %w", err)
	}

	dec := json.NewDecoder(&body)
	dec.UseNumber()
	doc := map[string]any{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode balance: %w", err)
	}
	return doc, nil
}

func mapDroplet(d godo.Droplet) model.Droplet {
	droplet := model.Droplet{
		ID:       d.ID,
		Name:     d.Name,
		MemoryMB: d.Memory,
		VCPUs:    d.Vcpus,
	}
	if d.Region != nil {
		droplet.Region = d.Region.Slug
	}
	return droplet
}

// nextPage reports the page to request after resp, or false when resp was the last page.
func nextPage(resp *godo.Response) (int, bool, error) {
	if resp == nil || resp.Links == nil || resp.Links.IsLastPage() {
		return 0, false, nil
	}
	current, err := resp.Links.CurrentPage()
	if err != nil {
		return 0, false, fmt.Errorf("read current page: %w", err)
	}
	return current + 1, true, nil
}

// wrapNotFound maps a 404 API error to driven.ErrNotFound, keeping the original message.
func wrapNotFound(err error) error {
	var apiErr *godo.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil && apiErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", driven.ErrNotFound, apiErr.Message)
	}
	return err
}
