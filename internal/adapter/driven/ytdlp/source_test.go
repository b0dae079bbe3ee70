package ytdlp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInfo(t *testing.T) {
	raw := []byte(`{"id":"abc123","title":"Sernik z rosą","description":"Składniki:\n- ser","tags":["sernik","ciasto"],"webpage_url":"https://www.youtube.com/watch?v=abc123","duration":321}`)

	info, err := parseInfo(raw)

	require.NoError(t, err)
	assert.Equal(t, "abc123", info.ID)
	assert.Equal(t, "Sernik z rosą", info.Title)
	assert.Equal(t, "Składniki:\n- ser", info.Description)
	assert.Equal(t, []string{"sernik", "ciasto"}, info.Tags)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", info.URL)
}

func TestParseInfo_MissingFields(t *testing.T) {
	info, err := parseInfo([]byte(`{"id":"x","title":null}`))

	require.NoError(t, err)
	assert.Empty(t, info.Title)
	assert.Empty(t, info.Description)
	assert.Equal(t, []string{}, info.Tags)
}

func TestParseInfo_Invalid(t *testing.T) {
	_, err := parseInfo([]byte(`WARNING: not json`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode info json")
}

func TestFindDownloaded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Sernik.m4a"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Sernik.m4a.part"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Other.m4a"), nil, 0o600))

	path, err := findDownloaded(dir, "Sernik")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Sernik.m4a"), path)
}

func TestFindDownloaded_GlobCharacters(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a[1].m4a"), nil, 0o600))

	path, err := findDownloaded(dir, "a[1]")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a[1].m4a"), path)
}

func TestFindDownloaded_Missing(t *testing.T) {
	_, err := findDownloaded(t.TempDir(), "nothing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFindDownloaded_Ambiguous(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.m4a"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.webm"), nil, 0o600))

	_, err := findDownloaded(dir, "clip")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, progressPercent(10, 0))
	assert.Equal(t, 50, progressPercent(512, 1024))
	assert.Equal(t, 100, progressPercent(1024, 1024))
}
