package sqlite

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestCredentialRepo_SetAndGet(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), testKey())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "youtube", "token", `{"access_token":"abc"}`))

	got, err := repo.Get(ctx, "youtube", "token")
	require.NoError(t, err)
	assert.Equal(t, `{"access_token":"abc"}`, got)
}

func TestCredentialRepo_SetReplaces(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), testKey())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "blogger", "token", "first"))
	require.NoError(t, repo.Set(ctx, "blogger", "token", "second"))

	got, err := repo.Get(ctx, "blogger", "token")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	var rows int
	require.NoError(t, repo.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials WHERE service = 'blogger'`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestCredentialRepo_GetMissing(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), testKey())

	got, err := repo.Get(context.Background(), "youtube", "token")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCredentialRepo_StoredEncrypted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "youtube", "token", "plaintext-secret"))

	var raw string
	err := db.Reader.QueryRowContext(ctx, `SELECT value FROM credentials WHERE service = 'youtube'`).Scan(&raw)
	require.NoError(t, err)
	assert.NotContains(t, raw, "plaintext-secret")
}

func TestCredentialRepo_Delete(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), testKey())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "youtube", "token", "t"))
	require.NoError(t, repo.Delete(ctx, "youtube", "token"))

	got, err := repo.Get(ctx, "youtube", "token")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCredentialRepo_NoKey(t *testing.T) {
	repo := NewCredentialRepo(setupTestDB(t), nil)
	ctx := context.Background()

	err := repo.Set(ctx, "youtube", "token", "t")
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)

	_, err = repo.Get(ctx, "youtube", "token")
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
}

func TestCredentialRepo_WrongKeyFailsDecrypt(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewCredentialRepo(db, testKey()).Set(ctx, "youtube", "token", "t"))

	other := NewCredentialRepo(db, bytes.Repeat([]byte{0x07}, 32))
	_, err := other.Get(ctx, "youtube", "token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt credential youtube/token")
}
