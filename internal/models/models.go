// package models defines the data model for the favorites mirror
package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CatalogBaseURL is the public catalog page prefix for resolved albums.
const CatalogBaseURL = "https://music.apple.com/us/album/"

// Album represents one favorited album mirrored from the remote library.
//
// LibraryID is the stable per-library identifier and the primary key for
// exclusion and play-count lookups. CatalogID cross-references the public
// catalog and is 0 when unresolved.
type Album struct {
	LibraryID      string `json:"libraryId"`
	CatalogID      int    `json:"catalogId"`
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	Genre          string `json:"genre"`
	ReleaseDateRaw string `json:"releaseDateRaw"`
	Year           int    `json:"year"`
	TrackCount     int    `json:"trackCount"`
	DateAdded      string `json:"dateAdded"`
	ContentRating  string `json:"contentRating,omitempty"`
	ArtworkURL     string `json:"artworkUrl,omitempty"` // template with {w}/{h} placeholder tokens
}

// CanonicalLink returns the public catalog URL for the album, or the empty
// string when the catalog id is unresolved.
func (a Album) CanonicalLink() string {
	if a.CatalogID == 0 {
		return ""
	}
	return CatalogBaseURL + strconv.Itoa(a.CatalogID)
}

// ArtworkAt expands the artwork URL template to a concrete rendition size.
func (a Album) ArtworkAt(width, height int) string {
	if a.ArtworkURL == "" {
		return ""
	}
	url := strings.ReplaceAll(a.ArtworkURL, "{w}", strconv.Itoa(width))
	return strings.ReplaceAll(url, "{h}", strconv.Itoa(height))
}

// Validate checks the album invariants.
func (a Album) Validate() error {
	if a.LibraryID == "" {
		return fmt.Errorf("album is missing a library id")
	}
	if a.Title == "" || a.Artist == "" {
		return fmt.Errorf("album %s is missing a title or artist", a.LibraryID)
	}
	return nil
}

// DeriveYear parses the release year from a raw date string.
//
// Accepts "yyyy-MM-dd" and partial "yyyy..." forms; anything unparseable
// falls back to the current calendar year.
func DeriveYear(raw string, now time.Time) int {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Year()
	}
	if len(raw) >= 4 {
		if year, err := strconv.Atoi(raw[:4]); err == nil {
			return year
		}
	}
	return now.Year()
}

// AlbumCache is the persisted album collection, bucketed by release year.
//
// Buckets are keyed by the decimal year string so the on-disk JSON object
// keys stay stable. ExcludedLibraryIDs is absent on files written before
// exclusions shipped and decodes as an empty set.
type AlbumCache struct {
	Albums             map[string][]Album `json:"albums"`
	LastUpdated        time.Time          `json:"lastUpdated"`
	TotalAlbums        int                `json:"totalAlbums"`
	ExcludedLibraryIDs []string           `json:"excludedLibraryIds,omitempty"`
}

// NewAlbumCache returns an empty cache with initialized buckets.
func NewAlbumCache() *AlbumCache {
	return &AlbumCache{Albums: make(map[string][]Album)}
}

// YearKey formats a year as a bucket key.
func YearKey(year int) string {
	return strconv.Itoa(year)
}

// Add places the album in its year bucket. Sorting and totals are restored
// by Normalize before the cache is persisted.
func (c *AlbumCache) Add(album Album) {
	if c.Albums == nil {
		c.Albums = make(map[string][]Album)
	}
	key := YearKey(album.Year)
	c.Albums[key] = append(c.Albums[key], album)
}

// Normalize sorts every year bucket by case-insensitive artist name
// ascending and recomputes TotalAlbums.
func (c *AlbumCache) Normalize() {
	total := 0
	for key, bucket := range c.Albums {
		sort.SliceStable(bucket, func(i, j int) bool {
			return strings.ToLower(bucket[i].Artist) < strings.ToLower(bucket[j].Artist)
		})
		c.Albums[key] = bucket
		total += len(bucket)
	}
	c.TotalAlbums = total
}

// ByLibraryID snapshots the collection into a libraryId lookup.
//
// The incremental merge policy consults this snapshot so that records
// already known locally are reused verbatim.
func (c *AlbumCache) ByLibraryID() map[string]Album {
	lookup := make(map[string]Album, c.TotalAlbums)
	for _, bucket := range c.Albums {
		for _, album := range bucket {
			lookup[album.LibraryID] = album
		}
	}
	return lookup
}

// Years returns the bucket years in ascending order.
func (c *AlbumCache) Years() []int {
	years := make([]int, 0, len(c.Albums))
	for key := range c.Albums {
		if year, err := strconv.Atoi(key); err == nil {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years
}

// ForYear returns the bucket for a year, nil when absent.
func (c *AlbumCache) ForYear(year int) []Album {
	return c.Albums[YearKey(year)]
}

// All returns every album ordered by ascending year, preserving the
// per-bucket artist ordering.
func (c *AlbumCache) All() []Album {
	albums := make([]Album, 0, c.TotalAlbums)
	for _, year := range c.Years() {
		albums = append(albums, c.ForYear(year)...)
	}
	return albums
}

// PlayCountCache maps library ids to qualified album play counts.
//
// Absence of a key means "unknown or disqualified", not zero.
type PlayCountCache struct {
	PlayCountsByLibraryID map[string]int `json:"playCountsByLibraryId"`
	LastUpdated           time.Time      `json:"lastUpdated"`
}

// NewPlayCountCache returns an empty play-count cache.
func NewPlayCountCache() *PlayCountCache {
	return &PlayCountCache{PlayCountsByLibraryID: make(map[string]int)}
}

// Lookup returns the cached play count for a library id, with ok reporting
// whether a qualified value exists.
func (c *PlayCountCache) Lookup(libraryID string) (int, bool) {
	count, ok := c.PlayCountsByLibraryID[libraryID]
	return count, ok
}
