package tasks

import (
	"context"
	"fmt"
	"sort"

	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/services"
	"github.com/desertthunder/favsync/internal/shared"
	"golang.org/x/time/rate"
)

// playedFractionThreshold is the qualification threshold: at least half of
// an album's tracks must have nonzero plays for its statistic to be cached.
const playedFractionThreshold = 0.5

// AlbumPlayCount computes the representative play count for one album from
// its per-track listing.
//
// Tracks that are not playable songs contribute nothing, to the statistic
// or to the qualification fraction. Among played tracks the statistic is
// the 75th-percentile value (index floor((n-1)*0.75) of the ascending
// sort), which resists both skipped interlude tracks and one obsessively
// replayed single better than a median or mean.
func AlbumPlayCount(tracks []services.RawTrackEntry) (statistic int, qualified bool) {
	total := 0
	var played []int
	for _, track := range tracks {
		if !track.IsSong() {
			continue
		}
		total++
		if track.PlayCount > 0 {
			played = append(played, track.PlayCount)
		}
	}

	switch len(played) {
	case 0:
		statistic = 0
	case 1:
		statistic = played[0]
	default:
		sort.Ints(played)
		statistic = played[(len(played)-1)*3/4]
	}

	if total == 0 || statistic <= 0 {
		return statistic, false
	}

	fraction := float64(len(played)) / float64(total)
	return statistic, fraction >= playedFractionThreshold
}

// Enrich runs a play-count aggregation pass over every cached album.
//
// Per-album listing failures are contained: the album is skipped, its prior
// cached value stands, and the pass continues. The updated cache is
// persisted only after the full pass completes; a top-level failure writes
// nothing and the previous play-count cache stands.
func (e *LibraryEngine) Enrich(ctx context.Context, progress chan<- ProgressUpdate, opts EnrichOpts) (*models.PlayCountCache, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}
	if !e.begin() {
		return nil, shared.ErrSyncInProgress
	}
	defer e.end()

	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	albumCache := e.loadAlbums()
	albums := albumCache.All()
	if len(albums) == 0 {
		return nil, fmt.Errorf("no cached albums to enrich, run sync first")
	}

	prior := models.NewPlayCountCache()
	if loaded, err := e.playCounts.Load(); err == nil {
		prior = loaded
	} else {
		e.logger.Debug("play-count cache unavailable, starting empty", "error", err)
	}

	next := models.NewPlayCountCache()
	next.LastUpdated = prior.LastUpdated
	for id, count := range prior.PlayCountsByLibraryID {
		next.PlayCountsByLibraryID[id] = count
	}

	if opts.Refresh && e.trackStats != nil {
		if err := e.trackStats.Purge(); err != nil {
			e.logger.Warn("failed to purge listing cache", "error", err)
		}
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	changed := false

	for i, album := range albums {
		e.sendProgress(progress, fetchListingUpdate(i+1, len(albums), album))

		listing, err := e.trackListing(ctx, limiter, album.LibraryID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrRemoteFetch, ctx.Err())
			}
			// Contained per album: skip, leaving the prior cached value.
			e.logger.Warn("skipping album",
				"album", album.Title,
				"error", fmt.Errorf("%w: %v", shared.ErrPerAlbumEnrichment, err))
			continue
		}
		if listing == nil || len(listing.Tracks) == 0 {
			continue
		}

		// Heuristic (artist, title) join: the listing source is queried
		// independently of the album listing, so name mismatches mean the
		// album is skipped silently. Same-key collisions are not
		// disambiguated.
		if shared.NormalizeAlbumKey(listing.AlbumArtist, listing.AlbumTitle) !=
			shared.NormalizeAlbumKey(album.Artist, album.Title) {
			e.logger.Debug("listing did not match album", "album", album.Title, "listing", listing.AlbumTitle)
			continue
		}

		statistic, qualified := AlbumPlayCount(listing.Tracks)
		cached, exists := next.PlayCountsByLibraryID[album.LibraryID]

		switch {
		case qualified && (!exists || cached != statistic):
			next.PlayCountsByLibraryID[album.LibraryID] = statistic
			changed = true
		case !qualified && exists:
			delete(next.PlayCountsByLibraryID, album.LibraryID)
			changed = true
		}
	}

	e.sendProgress(progress, savePlayCountsUpdate(len(next.PlayCountsByLibraryID)))

	if !changed {
		return next, nil
	}

	next.LastUpdated = e.now()
	if err := e.playCounts.Save(next); err != nil {
		e.logger.Warn("failed to save play-count cache, in-memory state stands", "error", err)
	}

	return next, nil
}

// trackListing returns the album's track listing, consulting the sqlite
// listing cache before fetching from the remote source.
func (e *LibraryEngine) trackListing(ctx context.Context, limiter *rate.Limiter, catalogKey string) (*services.TrackListing, error) {
	if e.trackStats != nil {
		if cached, err := e.trackStats.GetListing(catalogKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}

	listing, err := e.library.ListAlbumTracks(ctx, catalogKey)
	if err != nil {
		return nil, err
	}

	if e.trackStats != nil && listing != nil && len(listing.Tracks) > 0 {
		if err := e.trackStats.SaveListing(catalogKey, listing); err != nil {
			e.logger.Debug("failed to cache track listing", "album_key", catalogKey, "error", err)
		}
	}

	return listing, nil
}
