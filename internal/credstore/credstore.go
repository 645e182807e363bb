// Package credstore persists the bearer token and cached profile between
// runs. Token and profile are always written and cleared together; a file
// holding one without the other is treated as absent.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maraki-learning/adminctl/internal/model"
)

// ErrNotFound is returned when no credentials have been saved.
var ErrNotFound = errors.New("no stored credentials")

// Credentials is the durable token/profile pair.
type Credentials struct {
	Token string            `json:"token"`
	User  model.UserProfile `json:"user"`
}

// Store reads and writes the credentials file.
type Store struct {
	path string
}

// New creates a Store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored credentials. Returns ErrNotFound when the file is
// missing or holds an incomplete pair.
func (s *Store) Load() (*Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		// Corrupt file: same as no credentials. Leave removal to the
		// caller, which clears on any bootstrap failure anyway.
		return nil, ErrNotFound
	}
	if creds.Token == "" || creds.User.ID == "" {
		return nil, ErrNotFound
	}
	return &creds, nil
}

// Save writes the token/profile pair with owner-only permissions. The file
// is written to a temp name and renamed so readers never see a torn write.
func (s *Store) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit credentials: %w", err)
	}
	return nil
}

// Clear removes the credentials file. Clearing absent credentials is not
// an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
