package repositories

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/shared"
	th "github.com/desertthunder/favsync/internal/testing"
)

func seedCache() *models.AlbumCache {
	cache := models.NewAlbumCache()
	cache.Add(models.Album{LibraryID: "l.1", CatalogID: 111, Title: "Abbey Road", Artist: "The Beatles", ReleaseDateRaw: "1969-09-26", Year: 1969})
	cache.Add(models.Album{LibraryID: "l.2", Title: "Drukqs", Artist: "Aphex Twin", ReleaseDateRaw: "2001-10-22", Year: 2001})
	cache.Add(models.Album{LibraryID: "l.3", Title: "Confield", Artist: "autechre", ReleaseDateRaw: "2001-04-30", Year: 2001})
	cache.Normalize()
	cache.ExcludedLibraryIDs = []string{"l.3"}
	cache.LastUpdated = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return cache
}

func TestAlbumStore(t *testing.T) {
	t.Run("round trip preserves buckets, ordering, and exclusions", func(t *testing.T) {
		store := NewAlbumStore(filepath.Join(t.TempDir(), "albums.json"))
		cache := seedCache()

		if err := store.Save(cache); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if !reflect.DeepEqual(loaded.Albums, cache.Albums) {
			t.Errorf("loaded buckets differ: got %+v, want %+v", loaded.Albums, cache.Albums)
		}
		if !reflect.DeepEqual(loaded.ExcludedLibraryIDs, cache.ExcludedLibraryIDs) {
			t.Errorf("loaded exclusions = %v, want %v", loaded.ExcludedLibraryIDs, cache.ExcludedLibraryIDs)
		}
		if loaded.TotalAlbums != 3 {
			t.Errorf("TotalAlbums = %d, want 3", loaded.TotalAlbums)
		}
	})

	t.Run("missing file reports ErrCacheNotFound", func(t *testing.T) {
		store := NewAlbumStore(filepath.Join(t.TempDir(), "missing.json"))

		_, err := store.Load()
		if !errors.Is(err, shared.ErrCacheNotFound) {
			t.Errorf("Load error = %v, want ErrCacheNotFound", err)
		}
	})

	t.Run("corrupt file reports ErrCacheCorrupted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "albums.json")
		th.MustWriteFile(t, path, "{not json")

		_, err := NewAlbumStore(path).Load()
		if !errors.Is(err, shared.ErrCacheCorrupted) {
			t.Errorf("Load error = %v, want ErrCacheCorrupted", err)
		}
	})

	t.Run("legacy payload without exclusions decodes as empty set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "albums.json")
		th.MustWriteFile(t, path, `{
			"albums": {"1999": [{"libraryId": "l.1", "title": "One", "artist": "A", "year": 1999}]},
			"lastUpdated": "2025-01-01T00:00:00Z",
			"totalAlbums": 1
		}`)

		loaded, err := NewAlbumStore(path).Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded.ExcludedLibraryIDs) != 0 {
			t.Errorf("ExcludedLibraryIDs = %v, want empty", loaded.ExcludedLibraryIDs)
		}
		if loaded.TotalAlbums != 1 {
			t.Errorf("TotalAlbums = %d, want 1", loaded.TotalAlbums)
		}
	})

	t.Run("save replaces the previous file atomically", func(t *testing.T) {
		dir := t.TempDir()
		store := NewAlbumStore(filepath.Join(dir, "albums.json"))

		if err := store.Save(seedCache()); err != nil {
			t.Fatalf("first Save failed: %v", err)
		}

		second := models.NewAlbumCache()
		second.Add(models.Album{LibraryID: "l.9", Title: "Nine", Artist: "Z", Year: 2009})
		second.Normalize()
		if err := store.Save(second); err != nil {
			t.Fatalf("second Save failed: %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.TotalAlbums != 1 || len(loaded.ForYear(2009)) != 1 {
			t.Errorf("loaded cache does not reflect second save: %+v", loaded)
		}

		// No temp files left behind.
		matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
		if len(matches) != 0 {
			t.Errorf("temp files left behind: %v", matches)
		}
	})
}

func TestPlayCountStore(t *testing.T) {
	store := NewPlayCountStore(filepath.Join(t.TempDir(), "plays.json"))

	cache := models.NewPlayCountCache()
	cache.PlayCountsByLibraryID["l.1"] = 5
	cache.LastUpdated = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	if err := store.Save(cache); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if count, ok := loaded.Lookup("l.1"); !ok || count != 5 {
		t.Errorf("Lookup(l.1) = (%d, %v), want (5, true)", count, ok)
	}
	if _, ok := loaded.Lookup("l.2"); ok {
		t.Error("Lookup(l.2) reported a value for an absent key")
	}
}
