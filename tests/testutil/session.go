// Package testutil provides shared test helpers.
package testutil

import (
	"testing"

	"github.com/99designs/keyring"

	"github.com/crisis-matcher/dispatch/internal/credential"
	"github.com/crisis-matcher/dispatch/internal/session"
)

// NewSessionStore creates an in-memory session store backed by an
// in-memory keyring, so tests never touch the OS credential store.
// Both are cleaned up when the test completes.
func NewSessionStore(t *testing.T) *session.SQLiteStore {
	t.Helper()

	credential.UseKeyring(keyring.NewArrayKeyring(nil))
	t.Cleanup(func() {
		credential.UseKeyring(nil)
	})

	s, err := session.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating session store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing session store: %v", err)
		}
	})

	return s
}
