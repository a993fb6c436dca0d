package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the record in a single JSON file on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Read() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return data, true, nil
}

func (s *FileStore) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// DefaultPath returns the data file used when none is configured.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// If we can't resolve a home directory, fall back to the
		// working directory.
		return "flashdeck-decks.json"
	}
	return filepath.Join(home, ".flashdeck", "decks.json")
}
