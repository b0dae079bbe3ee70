package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*TokenFileStore)(nil)

// TokenFileStore keeps credentials as plaintext files named
// <service>_<key>.json, so an OAuth token for youtube lands in youtube_token.json.
type TokenFileStore struct {
	dir string
}

// NewTokenFileStore creates a TokenFileStore in dir, which is created on first write.
func NewTokenFileStore(dir string) *TokenFileStore {
	if dir == "" {
		dir = "."
	}
	return &TokenFileStore{dir: dir}
}

func (s *TokenFileStore) path(service, key string) string {
	return filepath.Join(s.dir, service+"_"+key+".json")
}

// Set writes value to the credential file with owner-only permissions.
func (s *TokenFileStore) Set(_ context.Context, service, key, value string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create token dir %s: %w", s.dir, err)
	}

	path := s.path(service, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write credential %s/%s: %w", service, key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write credential %s/%s: %w", service, key, err)
	}
	return nil
}

// Get returns the credential file content, or "" when the file is missing.
func (s *TokenFileStore) Get(_ context.Context, service, key string) (string, error) {
	data, err := os.ReadFile(s.path(service, key))
	if isNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential %s/%s: %w", service, key, err)
	}
	return string(data), nil
}

// Delete removes the credential file. A missing file is not an error.
func (s *TokenFileStore) Delete(_ context.Context, service, key string) error {
	if err := os.Remove(s.path(service, key)); err != nil && !isNotExist(err) {
		return fmt.Errorf("delete credential %s/%s: %w", service, key, err)
	}
	return nil
}
