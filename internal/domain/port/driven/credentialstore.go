package driven

import (
	"context"
	"errors"
)

// ErrEncryptionKeyNotSet is returned by CredentialStore operations when
// CHOREKIT_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set CHOREKIT_SECRET_KEY")

// CredentialStore defines the driven port for credential persistence.
// Adapters may encrypt at rest; this interface operates on plaintext values.
type CredentialStore interface {
	// Set stores or replaces the credential identified by service and key.
	Set(ctx context.Context, service, key, value string) error

	// Get retrieves the credential for service and key.
	// Returns ("", nil) if no credential exists.
	Get(ctx context.Context, service, key string) (string, error)

	// Delete removes the credential. Deleting a missing credential is not an error.
	Delete(ctx context.Context, service, key string) error
}
