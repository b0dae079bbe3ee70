package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, RunMigrations(db.Writer))

	version, dirty, err := SchemaVersion(db.Writer)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestOpen_CreatesFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, path, db.Path())

	var count int
	err = db.Reader.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('credentials', 'balance_snapshots', 'audit_log')`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
