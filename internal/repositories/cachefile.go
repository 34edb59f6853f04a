package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/shared"
)

// CacheFile persists one collection as a whole-file JSON document.
//
// Saves write to a temp file in the same directory and rename it into
// place, so a failed write leaves the previous file intact. Loads of a
// missing file report [shared.ErrCacheNotFound]; an existing file that
// fails to decode reports [shared.ErrCacheCorrupted], which callers treat
// the same way (cache empty, refetch from scratch).
type CacheFile[T any] struct {
	path string
}

// NewCacheFile creates a cache file handle for the given path.
func NewCacheFile[T any](path string) *CacheFile[T] {
	return &CacheFile[T]{path: path}
}

// Path returns the on-disk location of the cache file.
func (f *CacheFile[T]) Path() string {
	return f.path
}

// Exists reports whether a cache file is present on disk.
func (f *CacheFile[T]) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Load reads and decodes the cache file.
func (f *CacheFile[T]) Load() (*T, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrCacheNotFound, f.path)
		}
		return nil, fmt.Errorf("failed to read cache file %s: %w", f.path, err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrCacheCorrupted, f.path, err)
	}

	return &value, nil
}

// Save encodes value and atomically replaces the cache file.
func (f *CacheFile[T]) Save(value *T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrIOFailure, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrIOFailure, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", shared.ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", shared.ErrIOFailure, err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", shared.ErrIOFailure, err)
	}

	return nil
}

// AlbumStore persists the year-bucketed album cache.
type AlbumStore struct {
	*CacheFile[models.AlbumCache]
}

// NewAlbumStore creates an album cache store at the given path.
func NewAlbumStore(path string) *AlbumStore {
	return &AlbumStore{NewCacheFile[models.AlbumCache](path)}
}

// PlayCountStore persists the play-count cache.
type PlayCountStore struct {
	*CacheFile[models.PlayCountCache]
}

// NewPlayCountStore creates a play-count cache store at the given path.
func NewPlayCountStore(path string) *PlayCountStore {
	return &PlayCountStore{NewCacheFile[models.PlayCountCache](path)}
}
