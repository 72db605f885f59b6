// Package session persists the client's single (token, user) pair across
// process restarts. The two slots are always written and cleared together;
// a reader never observes a token without its matching user snapshot.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/strikeball/platform/internal/domain"
)

// Session is the persisted pair.
type Session struct {
	Token string      `json:"session_token"`
	User  domain.User `json:"user"`
}

// Store is a file-backed session store. The zero value is not usable; create
// one with NewStore and inject it wherever authenticated calls are issued.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the session file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "strikeball", "session.json"), nil
}

// Save overwrites both slots. The write is atomic: a crash mid-save leaves
// either the previous pair or the new one, never a mix.
func (s *Store) Save(token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(Session{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Load returns the persisted pair. A missing file, an empty token or a
// corrupt user blob all read as absent; corruption never propagates.
func (s *Store) Load() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Session, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

// Clear removes both slots. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentToken returns the stored token, or "" when no session exists.
// Callers capture the token once per call; it is not re-read mid-flight.
func (s *Store) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.load()
	if !ok {
		return ""
	}
	return sess.Token
}
