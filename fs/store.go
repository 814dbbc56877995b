// Package fs provides file-based persistence for placefinder.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/placefinder"
)

// Ensure FileStore implements placefinder.Store at compile time.
var _ placefinder.Store = (*FileStore)(nil)

// FileStore implements placefinder.Store with one file per storage key.
// Writes go to a temporary file that is renamed over the target, so a
// crash never leaves a half-written value behind.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a new FileStore rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.baseDir, key)
}

// LoadPlaces returns the saved places.
func (s *FileStore) LoadPlaces(ctx context.Context) ([]*placefinder.PlaceDetails, error) {
	data, err := s.read(placefinder.PlacesKey)
	if placefinder.ErrorCode(err) == placefinder.ENOTFOUND {
		return []*placefinder.PlaceDetails{}, nil
	}
	if err != nil {
		return nil, err
	}

	places := []*placefinder.PlaceDetails{}
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", placefinder.PlacesKey, err)
	}
	return places, nil
}

// SavePlaces replaces the saved places.
func (s *FileStore) SavePlaces(ctx context.Context, places []*placefinder.PlaceDetails) error {
	if places == nil {
		places = []*placefinder.PlaceDetails{}
	}
	data, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", placefinder.PlacesKey, err)
	}
	return s.write(placefinder.PlacesKey, data)
}

// LoadCredential returns the stored credential.
func (s *FileStore) LoadCredential(ctx context.Context) (string, error) {
	data, err := s.read(placefinder.CredentialKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveCredential replaces the stored credential. The file is readable by
// the owner only.
func (s *FileStore) SaveCredential(ctx context.Context, key string) error {
	return s.write(placefinder.CredentialKey, []byte(key))
}

func (s *FileStore) read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, placefinder.Errorf(placefinder.ENOTFOUND, "%s not stored", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) write(key string, data []byte) error {
	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.baseDir, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}
