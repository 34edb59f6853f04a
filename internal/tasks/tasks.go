// package tasks implements the synchronization and enrichment engine for the
// favorites mirror.
//
// The core abstraction is SyncEngine, which drives full and incremental
// library refreshes and play-count enrichment passes. Operations emit
// progress updates via channels for non-blocking status reporting to the CLI
// layer.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/repositories"
	"github.com/desertthunder/favsync/internal/services"
	"github.com/desertthunder/favsync/internal/shared"
)

// SyncEngine defines the cache-mutating operations of the mirror.
type SyncEngine interface {
	// Sync refreshes the album cache from the remote library. Full mode
	// rebuilds the collection solely from fresh data; incremental mode
	// preserves existing records for albums already known, only adding
	// newly favorited ones.
	Sync(ctx context.Context, progress chan<- ProgressUpdate, full bool) (*models.AlbumCache, error)

	// Enrich computes qualified album play counts from per-track listing
	// statistics and applies the change-driven update policy to the
	// play-count cache.
	Enrich(ctx context.Context, progress chan<- ProgressUpdate, opts EnrichOpts) (*models.PlayCountCache, error)
}

// EnrichOpts contains configuration for an enrichment pass.
type EnrichOpts struct {
	Refresh   bool    // bypass the sqlite listing cache and refetch everything
	RateLimit float64 // track-listing requests per second (default: 5)
}

// LibraryEngine implements SyncEngine against a LibraryService and the
// persistent cache stores.
//
// All cache-mutating operations are serialized: a refresh requested while
// another pass is in flight is rejected with [shared.ErrSyncInProgress]
// rather than run concurrently.
type LibraryEngine struct {
	library    services.LibraryService
	albums     *repositories.AlbumStore
	playCounts *repositories.PlayCountStore
	trackStats *repositories.TrackStatsRepository
	logger     *log.Logger
	now        func() time.Time

	mu       sync.Mutex
	inFlight bool
}

// EngineOpts contains dependencies for creating a LibraryEngine.
type EngineOpts struct {
	Library    services.LibraryService
	Albums     *repositories.AlbumStore
	PlayCounts *repositories.PlayCountStore
	TrackStats *repositories.TrackStatsRepository // optional listing cache
	Logger     *log.Logger
	Now        func() time.Time
}

// NewLibraryEngine creates a new LibraryEngine with the provided dependencies.
func NewLibraryEngine(opts EngineOpts) *LibraryEngine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &LibraryEngine{
		library:    opts.Library,
		albums:     opts.Albums,
		playCounts: opts.PlayCounts,
		trackStats: opts.TrackStats,
		logger:     opts.Logger,
		now:        opts.Now,
	}
}

// begin claims the single-flight gate, reporting false when a pass is
// already running.
func (e *LibraryEngine) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return false
	}
	e.inFlight = true
	return true
}

func (e *LibraryEngine) end() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// loadAlbums returns the persisted album cache, degrading a missing or
// corrupt file to an empty collection.
func (e *LibraryEngine) loadAlbums() *models.AlbumCache {
	cache, err := e.albums.Load()
	if err != nil {
		e.logger.Debug("album cache unavailable, starting empty", "error", err)
		return models.NewAlbumCache()
	}
	return cache
}

// Sync refreshes the album cache from the remote library.
//
// The pass is all-or-nothing: any paging or decoding error aborts it with
// the previous in-memory and persisted cache untouched. The exclusion set
// is snapshotted from the existing cache and restored onto the merged
// result. lastUpdated advances only when the merged cache saves
// successfully; a failed save is logged and the in-memory result remains
// authoritative.
func (e *LibraryEngine) Sync(ctx context.Context, progress chan<- ProgressUpdate, full bool) (*models.AlbumCache, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}
	if !e.begin() {
		return nil, shared.ErrSyncInProgress
	}
	defer e.end()

	existing := e.loadAlbums()

	known := map[string]models.Album{}
	if !full {
		known = existing.ByLibraryID()
	}

	next := models.NewAlbumCache()
	next.ExcludedLibraryIDs = existing.ExcludedLibraryIDs
	seen := make(map[string]struct{})

	cursor := ""
	fetched := 0
	total := 0
	firstPage := true

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", shared.ErrRemoteFetch, ctx.Err())
		default:
		}

		page, err := e.library.ListFavorites(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRemoteFetch, err)
		}

		// The announced total fluctuates between pages on some servers;
		// only the first page's value feeds the progress denominator.
		if firstPage {
			total = page.TotalAnnounced
			firstPage = false
		}

		for _, entry := range page.Entries {
			if !entry.Attributes.Favorite {
				continue
			}

			album, ok := NormalizeEntry(entry, e.now())
			if !ok {
				continue
			}

			// Offset paging repeats entries when the collection shifts
			// mid-pass; the first occurrence wins.
			if _, dup := seen[album.LibraryID]; dup {
				continue
			}

			if prior, exists := known[album.LibraryID]; exists {
				// Keep the existing record verbatim; only bucket
				// placement is recomputed.
				album = prior
				album.Year = models.DeriveYear(prior.ReleaseDateRaw, e.now())
			}

			next.Add(album)
			seen[album.LibraryID] = struct{}{}
			fetched++
			e.sendProgress(progress, fetchAlbumsUpdate(fetched, total))
		}

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	// Incremental passes retain records the remote listing no longer
	// returned; only a full resync drops them.
	for id, album := range known {
		if _, ok := seen[id]; ok {
			continue
		}
		album.Year = models.DeriveYear(album.ReleaseDateRaw, e.now())
		next.Add(album)
	}

	e.sendProgress(progress, mergeAlbumsUpdate(fetched))
	next.Normalize()

	e.sendProgress(progress, saveCacheUpdate(next.TotalAlbums))
	saved := *next
	saved.LastUpdated = e.now()
	if err := e.albums.Save(&saved); err != nil {
		e.logger.Warn("failed to save album cache, in-memory state stands", "error", err)
		next.LastUpdated = existing.LastUpdated
		return next, nil
	}

	return &saved, nil
}
