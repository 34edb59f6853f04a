package tasks

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/services"
)

// NormalizeEntry converts a raw library entry into an Album record.
//
// Entries contributing no resolvable name or artist are skipped entirely
// and never become records; ok reports whether the entry normalized.
func NormalizeEntry(entry services.RawAlbumEntry, now time.Time) (models.Album, bool) {
	attrs := entry.Attributes
	if entry.ID == "" || attrs.Name == "" || attrs.ArtistName == "" {
		return models.Album{}, false
	}

	genre := ""
	if len(attrs.GenreNames) > 0 {
		genre = attrs.GenreNames[0]
	}

	artwork := ""
	if attrs.Artwork != nil {
		artwork = attrs.Artwork.URL
	}

	return models.Album{
		LibraryID:      entry.ID,
		CatalogID:      ResolveCatalogID(entry),
		Title:          attrs.Name,
		Artist:         attrs.ArtistName,
		Genre:          genre,
		ReleaseDateRaw: attrs.ReleaseDate,
		Year:           models.DeriveYear(attrs.ReleaseDate, now),
		TrackCount:     attrs.TrackCount,
		DateAdded:      attrs.DateAdded,
		ContentRating:  attrs.ContentRating,
		ArtworkURL:     artwork,
	}, true
}

// ResolveCatalogID resolves the public catalog id of a raw entry.
//
// Attempted in order, first success wins: the album's own catalog
// relationship (numeric identifier preferred, falling back to the last path
// segment of the catalog URL), then the catalog relationship of the album's
// first track. Returns 0 when nothing resolves.
func ResolveCatalogID(entry services.RawAlbumEntry) int {
	rels := entry.Relationships
	if rels == nil {
		return 0
	}

	if rels.Catalog != nil {
		if id := catalogIDFromRefs(rels.Catalog.Data); id != 0 {
			return id
		}
	}

	if rels.Tracks != nil && len(rels.Tracks.Data) > 0 {
		first := rels.Tracks.Data[0]
		if first.Relationships != nil && first.Relationships.Catalog != nil {
			if id := catalogIDFromRefs(first.Relationships.Catalog.Data); id != 0 {
				return id
			}
		}
	}

	return 0
}

func catalogIDFromRefs(refs []services.RawCatalogRef) int {
	for _, ref := range refs {
		if id, err := strconv.Atoi(ref.ID); err == nil && id > 0 {
			return id
		}
		if ref.Attributes != nil {
			if id := catalogIDFromURL(ref.Attributes.URL); id != 0 {
				return id
			}
		}
	}
	return 0
}

// catalogIDFromURL parses the last path segment of a catalog URL as an id.
func catalogIDFromURL(raw string) int {
	if raw == "" {
		return 0
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return 0
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return 0
	}

	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
