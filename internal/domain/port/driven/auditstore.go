package driven

import (
	"context"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

// AuditStore defines the driven port for the prune audit trail.
type AuditStore interface {
	Record(ctx context.Context, entry model.AuditEntry) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
