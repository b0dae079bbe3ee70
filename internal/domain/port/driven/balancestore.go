package driven

import (
	"context"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

// BalanceStore defines the driven port for balance snapshot history.
type BalanceStore interface {
	Save(ctx context.Context, snapshot model.BalanceSnapshot) error
	// ListRecent returns up to limit snapshots, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.BalanceSnapshot, error)
}
