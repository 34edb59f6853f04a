// package services defines interface LibraryService for interacting with the
// remote music library HTTP API
package services

import (
	"context"
)

// LibraryService defines the interface for the remote library provider that
// lists favorited albums and per-album track statistics.
type LibraryService interface {
	// ListFavorites retrieves one page of the user's library albums.
	// An empty cursor requests the first page; follow-up pages use the
	// cursor returned in FavoritesPage.NextCursor until it is empty.
	ListFavorites(ctx context.Context, cursor string) (*FavoritesPage, error)

	// ListAlbumTracks retrieves the track listing for one album, keyed by
	// the album's library catalog key. The listing carries its own album
	// title and artist; callers join it back to cached albums by name.
	ListAlbumTracks(ctx context.Context, catalogKey string) (*TrackListing, error)

	// Name returns the name of the service (e.g., "Apple Music")
	Name() string
}

// FavoritesPage is one page of raw library album entries.
type FavoritesPage struct {
	Entries        []RawAlbumEntry
	NextCursor     string // server-provided path for the next page, empty when exhausted
	TotalAnnounced int    // total library size, announced on the first page only
}

// TrackListing is the per-album track listing returned by the stats source.
type TrackListing struct {
	AlbumTitle  string
	AlbumArtist string
	Tracks      []RawTrackEntry
}

// RawAlbumEntry is one library album as returned by the remote API.
// Every nested field may be absent or null on any entry.
type RawAlbumEntry struct {
	ID            string             `json:"id"`
	Type          string             `json:"type"`
	Attributes    RawAlbumAttributes `json:"attributes"`
	Relationships *RawRelationships  `json:"relationships,omitempty"`
}

// RawAlbumAttributes carries the descriptive fields of a raw album entry.
type RawAlbumAttributes struct {
	Name          string      `json:"name"`
	ArtistName    string      `json:"artistName"`
	GenreNames    []string    `json:"genreNames"`
	ReleaseDate   string      `json:"releaseDate"`
	TrackCount    int         `json:"trackCount"`
	DateAdded     string      `json:"dateAdded"`
	ContentRating string      `json:"contentRating"`
	Artwork       *RawArtwork `json:"artwork,omitempty"`
	Favorite      bool        `json:"inFavorites"`
}

// RawArtwork is an artwork resource whose URL contains {w}/{h} placeholder tokens.
type RawArtwork struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RawRelationships holds the optional catalog and track relationships of an entry.
type RawRelationships struct {
	Catalog *RawRelationship      `json:"catalog,omitempty"`
	Tracks  *RawTrackRelationship `json:"tracks,omitempty"`
}

// RawRelationship points at the public catalog resource for an entry.
type RawRelationship struct {
	Data []RawCatalogRef `json:"data"`
}

// RawCatalogRef is one catalog cross-reference. ID is preferred when numeric;
// otherwise the last path segment of the URL is parsed.
type RawCatalogRef struct {
	ID         string                `json:"id"`
	Attributes *RawCatalogAttributes `json:"attributes,omitempty"`
}

// RawCatalogAttributes carries the catalog resource URL.
type RawCatalogAttributes struct {
	URL string `json:"url"`
}

// RawTrackRelationship lists the album's tracks.
type RawTrackRelationship struct {
	Data []RawTrackRef `json:"data"`
}

// RawTrackRef is one track reference within an album entry.
type RawTrackRef struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Relationships *RawRelationships `json:"relationships,omitempty"`
}

// RawTrackEntry is one track from a per-album track listing.
//
// Kind discriminates playable songs from other track kinds (music videos,
// interludes); only "songs" contribute play counts.
type RawTrackEntry struct {
	Kind      string
	Name      string
	PlayCount int
}

// IsSong reports whether the track is a playable song.
func (t RawTrackEntry) IsSong() bool {
	return t.Kind == "songs"
}
