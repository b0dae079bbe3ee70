package driven

import (
	"context"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

// SnapshotFile is one stored balance document and the name it was read from.
type SnapshotFile struct {
	Name     string
	Snapshot model.BalanceSnapshot
}

// SnapshotRepository defines the driven port for per-account balance documents.
type SnapshotRepository interface {
	// Save writes doc for account and returns the name it was stored under.
	// Fields of doc that chorekit does not interpret are preserved.
	Save(ctx context.Context, account string, doc map[string]any) (string, error)
	// LoadAll reads every stored document.
	LoadAll(ctx context.Context) ([]SnapshotFile, error)
}
