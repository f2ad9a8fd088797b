// Package session holds the dispatcher's authentication state: the bearer
// token lives in the system keyring and the user profile in a small local
// sqlite database. Every other component receives a Store as an injected
// dependency; nothing else touches the underlying storage directly.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/crisis-matcher/dispatch/internal/credential"
	"github.com/crisis-matcher/dispatch/internal/model"
)

// Fixed storage key names. The token is keyed in the keyring, the user
// profile in the sqlite kv table.
const (
	tokenKey = "token"
	userKey  = "user"
)

// Store is the session-management contract: explicit save/read/clear with
// no ambient storage access anywhere else in the application.
type Store interface {
	// Save persists the token and user profile of a fresh login.
	Save(token string, user model.User) error

	// Token returns the stored bearer token, or "" when absent.
	Token() string

	// CurrentUser returns the stored user profile, or nil when absent.
	CurrentUser() *model.User

	// IsAuthenticated reports whether a token is present. It does not
	// verify validity or expiry; a stale token surfaces as a 401 on the
	// next request.
	IsAuthenticated() bool

	// Clear removes the token and user profile unconditionally. Clearing
	// an empty session is not an error.
	Clear() error
}

// SQLiteStore implements Store backed by the keyring and a sqlite kv table.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the session database at dbPath, enables
// WAL mode, and runs any pending schema migrations. Use ":memory:" in tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save persists the token in the keyring and the user profile as JSON in
// the kv table. A failed save leaves any prior session untouched.
func (s *SQLiteStore) Save(token string, user model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user profile: %w", err)
	}

	if err := credential.Set(tokenKey, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO session_kv (key, value) VALUES (?, ?)`,
		userKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("storing user profile: %w", err)
	}

	return nil
}

// Token returns the stored bearer token, or "" when no session exists.
func (s *SQLiteStore) Token() string {
	token, err := credential.Get(tokenKey)
	if err != nil {
		return ""
	}
	return token
}

// CurrentUser returns the stored user profile, or nil when absent or
// undecodable.
func (s *SQLiteStore) CurrentUser() *model.User {
	var raw string
	err := s.db.Get(
		&raw,
		`SELECT value FROM session_kv WHERE key = ?`,
		userKey,
	)
	if err != nil {
		return nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// IsAuthenticated reports whether a token is present.
func (s *SQLiteStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// Clear removes both the token and the user profile. Missing entries are
// ignored so that logging out of an empty session always succeeds.
func (s *SQLiteStore) Clear() error {
	// The keyring reports missing keys as errors; a cleared session is
	// the desired end state either way.
	_ = credential.Delete(tokenKey)

	_, err := s.db.Exec(`DELETE FROM session_kv WHERE key = ?`, userKey)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("clearing user profile: %w", err)
	}

	return nil
}
