// Package session persists the local login session, two string keys (the
// authenticated-user JSON blob and the bearer token) in a small SQLite
// database under the user's state directory.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zaqiyusuf/gatepass/internal/domain"
	_ "modernc.org/sqlite"
)

const (
	keyUser  = "auth_user"
	keyToken = "auth_token"
)

// ErrNoSession indicates no valid login session is stored locally.
var ErrNoSession = errors.New("no stored session")

// Session is the locally persisted login context.
type Session struct {
	User  domain.User
	Token string
}

// Store is a sqlite-backed key/value store for the login session.
// It implements api.TokenSource.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the session database path: $GATEPASS_STATE_DB when set,
// otherwise ~/.gatepass/gatepass.db.
func DefaultPath() (string, error) {
	if p := os.Getenv("GATEPASS_STATE_DB"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".gatepass", "gatepass.db"), nil
}

// Open opens (creating if needed) the session store at path.
// If path is ":memory:", uses an in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the session, replacing any previous one.
func (s *Store) Save(sess Session) error {
	blob, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding user blob: %w", err)
	}
	if err := s.set(keyUser, string(blob)); err != nil {
		return err
	}
	return s.set(keyToken, sess.Token)
}

// Load returns the stored session. A missing token, or a user blob that
// fails to parse, is reported as ErrNoSession so the caller re-runs login.
func (s *Store) Load() (*Session, error) {
	token, err := s.get(keyToken)
	if err != nil || token == "" {
		return nil, ErrNoSession
	}
	blob, err := s.get(keyUser)
	if err != nil || blob == "" {
		return nil, ErrNoSession
	}

	var user domain.User
	if err := json.Unmarshal([]byte(blob), &user); err != nil {
		return nil, ErrNoSession
	}
	return &Session{User: user, Token: token}, nil
}

// Clear removes both session keys.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key IN (?, ?)`, keyUser, keyToken)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	token, err := s.get(keyToken)
	if err != nil {
		return ""
	}
	return token
}

// Invalidate implements api.TokenSource. Called by the HTTP adapter on 401.
func (s *Store) Invalidate() {
	_ = s.Clear()
}

func (s *Store) set(key, value string) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(context.Background(),
		`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}
