package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB opens a named shared in-memory database unique to the test and
// applies the migrations. Writer and reader share it through cache=shared.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)

	writer, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	writer.SetMaxOpenConns(1)
	require.NoError(t, writer.PingContext(context.Background()))

	reader, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	reader.SetMaxOpenConns(4)
	require.NoError(t, reader.PingContext(context.Background()))

	db := &DB{Writer: writer, Reader: reader, path: dsn}
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db.Writer))
	return db
}
