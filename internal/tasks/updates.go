package tasks

import (
	"fmt"

	"github.com/desertthunder/favsync/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase, 0 when unannounced
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchAlbums Phase = iota
	MergeAlbums
	SaveCache
	FetchListings
	SavePlayCounts
)

func (p Phase) String() string {
	switch p {
	case FetchAlbums:
		return "fetch_albums"
	case MergeAlbums:
		return "merge_albums"
	case SaveCache:
		return "save_cache"
	case FetchListings:
		return "fetch_listings"
	case SavePlayCounts:
		return "save_play_counts"
	default:
		return ""
	}
}

func fetchAlbumsUpdate(fetched, total int) ProgressUpdate {
	message := fmt.Sprintf("Fetched %d albums...", fetched)
	if total > 0 {
		message = fmt.Sprintf("[%d/%d] Fetching albums...", fetched, total)
	}
	return ProgressUpdate{
		Phase:   FetchAlbums,
		Step:    fetched,
		Total:   total,
		Message: message,
	}
}

func mergeAlbumsUpdate(fetched int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MergeAlbums,
		Step:    fetched,
		Total:   fetched,
		Message: "Merging fetched albums into year buckets...",
	}
}

func saveCacheUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveCache,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saving %d albums...", total),
	}
}

func fetchListingUpdate(step, total int, album models.Album) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchListings,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, album.Artist, album.Title),
		Data:    album,
	}
}

func savePlayCountsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SavePlayCounts,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saving %d qualified play counts...", total),
	}
}
