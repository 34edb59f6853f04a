package repositories

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/shared"
)

// ExclusionManager tracks the set of library ids the user has chosen to
// omit from exports.
//
// Every mutation immediately persists the set into the stored album cache's
// excludedLibraryIds field via a targeted read-merge-write, leaving album
// data untouched. When no cache file exists yet the write is a no-op.
type ExclusionManager struct {
	mu    sync.Mutex
	store *AlbumStore
	ids   map[string]struct{}
}

// NewExclusionManager creates a manager seeded from the stored album cache.
// A missing or corrupt cache file seeds an empty set.
func NewExclusionManager(store *AlbumStore) *ExclusionManager {
	m := &ExclusionManager{store: store, ids: make(map[string]struct{})}

	if cache, err := store.Load(); err == nil {
		for _, id := range cache.ExcludedLibraryIDs {
			m.ids[id] = struct{}{}
		}
	}

	return m
}

// Toggle flips the exclusion state of one library id and persists the set.
// Returns the new state.
func (m *ExclusionManager) Toggle(libraryID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ids[libraryID]; ok {
		delete(m.ids, libraryID)
	} else {
		m.ids[libraryID] = struct{}{}
	}

	_, excluded := m.ids[libraryID]
	return excluded, m.persist()
}

// SetExcluded marks every id in ids as excluded or included and persists
// the set. Used for range selection in one write.
func (m *ExclusionManager) SetExcluded(ids []string, excluded bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		if excluded {
			m.ids[id] = struct{}{}
		} else {
			delete(m.ids, id)
		}
	}

	return m.persist()
}

// Clear removes every exclusion and persists the empty set.
func (m *ExclusionManager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ids = make(map[string]struct{})
	return m.persist()
}

// IsExcluded reports whether a library id is currently excluded.
func (m *ExclusionManager) IsExcluded(libraryID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.ids[libraryID]
	return ok
}

// IDs returns the excluded library ids in sorted order.
func (m *ExclusionManager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sortedIDs()
}

// ExcludedCountIn counts how many of the given albums are excluded.
// Callers pass one year bucket to get a per-year count.
func (m *ExclusionManager) ExcludedCountIn(albums []models.Album) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, album := range albums {
		if _, ok := m.ids[album.LibraryID]; ok {
			count++
		}
	}
	return count
}

func (m *ExclusionManager) sortedIDs() []string {
	ids := make([]string, 0, len(m.ids))
	for id := range m.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// persist merges the current set into the stored cache without touching
// album data. Caller must hold the mutex.
func (m *ExclusionManager) persist() error {
	cache, err := m.store.Load()
	if err != nil {
		// Nothing to annotate until a sync pass writes the first cache.
		if errors.Is(err, shared.ErrCacheNotFound) || errors.Is(err, shared.ErrCacheCorrupted) {
			return nil
		}
		return fmt.Errorf("failed to load album cache: %w", err)
	}

	cache.ExcludedLibraryIDs = m.sortedIDs()
	if err := m.store.Save(cache); err != nil {
		return fmt.Errorf("failed to persist exclusions: %w", err)
	}

	return nil
}
