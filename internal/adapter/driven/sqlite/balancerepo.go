package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.BalanceStore = (*BalanceRepo)(nil)

// BalanceRepo is the SQLite implementation of the BalanceStore port interface.
type BalanceRepo struct {
	db *DB
}

// NewBalanceRepo creates a new BalanceRepo backed by the given DB.
func NewBalanceRepo(db *DB) *BalanceRepo {
	return &BalanceRepo{db: db}
}

// Save appends a snapshot to the history. A zero RecordedAt is set to now.
func (r *BalanceRepo) Save(ctx context.Context, s model.BalanceSnapshot) error {
	const query = `INSERT INTO balance_snapshots
		(account_name, month_to_date_balance, account_balance, month_to_date_usage, generated_at, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	recordedAt := s.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	var generatedAt sql.NullString
	if !s.GeneratedAt.IsZero() {
		generatedAt = sql.NullString{String: formatTime(s.GeneratedAt), Valid: true}
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		s.AccountName, s.MonthToDateBalance, s.AccountBalance, s.MonthToDateUsage,
		generatedAt, formatTime(recordedAt),
	)
	if err != nil {
		return fmt.Errorf("save balance snapshot for %s: %w", s.AccountName, err)
	}
	return nil
}

// ListRecent returns up to limit snapshots ordered by recorded_at DESC.
func (r *BalanceRepo) ListRecent(ctx context.Context, limit int) ([]model.BalanceSnapshot, error) {
	const query = `SELECT account_name, month_to_date_balance, account_balance, month_to_date_usage, generated_at, recorded_at
		FROM balance_snapshots ORDER BY recorded_at DESC, id DESC LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list balance snapshots: %w", err)
	}
	defer rows.Close()

	var result []model.BalanceSnapshot
	for rows.Next() {
		var s model.BalanceSnapshot
		var generatedAt sql.NullString
		var recordedAt string
		if err := rows.Scan(&s.AccountName, &s.MonthToDateBalance, &s.AccountBalance, &s.MonthToDateUsage, &generatedAt, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan balance snapshot: %w", err)
		}
		if generatedAt.Valid {
			s.GeneratedAt, err = parseTime(generatedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parse generated_at for %s: %w", s.AccountName, err)
			}
		}
		s.RecordedAt, err = parseTime(recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at for %s: %w", s.AccountName, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balance snapshots: %w", err)
	}
	return result, nil
}
