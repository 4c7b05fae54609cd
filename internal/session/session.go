// Package session holds the authenticated user's credential as an explicit
// object with a load/clear lifecycle, instead of ambient global state.
// Components that need the token take the session as a dependency; the API
// client consumes it through its TokenSource interface.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Credential is the persisted login state.
type Credential struct {
	Token    string    `toml:"token"`
	Username string    `toml:"username"`
	Email    string    `toml:"email"`
	SavedAt  time.Time `toml:"saved_at"`
}

// Session is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	path      string
	cred      Credential
	listeners []func()
}

// DefaultPath is the credential file next to the config.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "quill", "session.toml")
}

// Load reads a persisted credential. A missing file yields an empty,
// logged-out session rather than an error.
func Load(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	if err := toml.Unmarshal(data, &s.cred); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return s, nil
}

// Token implements the API client's TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.Token
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.Username
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// SetCredential stores and persists a fresh login.
func (s *Session) SetCredential(cred Credential) error {
	if cred.SavedAt.IsZero() {
		cred.SavedAt = time.Now()
	}

	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()

	data, err := toml.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	// Credential file is secret material.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear wipes the credential in memory and on disk, then notifies
// listeners. Used for both explicit logout and 401 teardown.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.cred = Credential{}
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}

	for _, fn := range listeners {
		fn()
	}
	return nil
}

// OnClear registers a teardown listener. Registration order is invocation
// order.
func (s *Session) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
