package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/istlab/raffle-backend/internal/models"
)

// File stores the snapshot as a JSON file, for running without a database.
type File struct {
	path string
}

// NewFile returns a file store writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the snapshot file. A missing file means no state was saved yet.
func (s *File) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: failed to read %s: %w", s.path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("store: failed to decode %s: %w", s.path, err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically via a temp file rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (s *File) Save(snap models.Snapshot) error {
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("store: failed to create temp file in %s: %w", dir, err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: failed to replace %s: %w", s.path, err)
	}
	return nil
}
