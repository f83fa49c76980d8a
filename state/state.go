// Package state persists terminal session state to a JSON file so a
// returning visitor resumes where they left off. Persistence is best
// effort: callers treat save failures as non-fatal.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session is the persisted snapshot of a terminal session.
type Session struct {
	CurrentPath string    `json:"current_path"`
	History     []string  `json:"history,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Store manages session state, persisted to a JSON file.
type Store struct {
	Path string

	mu      sync.RWMutex
	session Session
}

// NewStore creates a Store backed by the given file. If path is empty,
// defaults to ~/.termfolio/session.json. A missing or corrupt file is not
// an error; the store starts empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, ".termfolio", "session.json")
	}
	s := &Store{Path: path}
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		s.session = Session{}
	}
	return s, nil
}

// Session returns a copy of the current snapshot.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.session
	out.History = append([]string(nil), s.session.History...)
	return out
}

// Save records the snapshot and writes it to disk.
func (s *Store) Save(currentPath string, history []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{
		CurrentPath: currentPath,
		History:     append([]string(nil), history...),
		UpdatedAt:   time.Now(),
	}
	return s.saveLocked()
}

// Reset clears the snapshot and removes the file.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}
	s.session = sess
	return nil
}

// saveLocked writes through a temp file so a crash mid-write never leaves
// a truncated session file.
func (s *Store) saveLocked() error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
