package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AuditStore = (*AuditRepo)(nil)

// AuditRepo is the SQLite implementation of the AuditStore port interface.
type AuditRepo struct {
	db *DB
}

// NewAuditRepo creates a new AuditRepo backed by the given DB.
func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record appends an entry to the audit log. A zero CreatedAt is set to now.
func (r *AuditRepo) Record(ctx context.Context, e model.AuditEntry) error {
	const query = `INSERT INTO audit_log (run_id, action, target_id, target_name, dry_run, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		e.RunID, string(e.Action), e.TargetID, e.TargetName, e.DryRun, e.Error, formatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("record audit %s %s: %w", e.Action, e.TargetID, err)
	}
	return nil
}

// ListRecent returns up to limit entries ordered by created_at DESC.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	const query = `SELECT id, run_id, action, target_id, target_name, dry_run, error, created_at
		FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var result []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var action, createdAt string
		if err := rows.Scan(&e.ID, &e.RunID, &action, &e.TargetID, &e.TargetName, &e.DryRun, &e.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = model.AuditAction(action)
		e.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for audit entry %d: %w", e.ID, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log: %w", err)
	}
	return result, nil
}
