package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps the snapshot in a single file.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a store for the file at path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Load reads the state file. Returns nil and no error if it does not exist.
func (s *FileStore) Load(ctx context.Context) (*SyncState, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return Decode(data)
}

// Save writes to a sibling temp file and renames it over the state file, so a
// reader sees either the old snapshot or the new one.
func (s *FileStore) Save(ctx context.Context, st *SyncState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Clear removes the state file.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	return nil
}
