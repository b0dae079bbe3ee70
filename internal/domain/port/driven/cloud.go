package driven

import (
	"context"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

// CloudClient defines the driven port for the cloud provider account the
// prune and balance commands operate on.
type CloudClient interface {
	// ListDroplets returns every droplet in the account, following pagination.
	ListDroplets(ctx context.Context) ([]model.Droplet, error)
	// DeleteDroplet destroys a droplet by ID.
	DeleteDroplet(ctx context.Context, id int) error

	// ListProjects returns every project in the account, following pagination.
	ListProjects(ctx context.Context) ([]model.Project, error)
	// DeleteProject deletes a project by ID. The provider refuses to delete
	// the default project and projects that still hold resources.
	DeleteProject(ctx context.Context, id string) error

	// FetchBalance returns the raw balance document for the account.
	FetchBalance(ctx context.Context) (map[string]any, error)
}
