// package formatter provides pure transformations from album records to
// export payloads (JSON, plain text, Markdown)
package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/shared"
)

// Exported artwork rendition size.
const artworkRendition = 640

// ExcludeFunc reports whether a library id is excluded from exports.
type ExcludeFunc func(libraryID string) bool

// PlayCountFunc looks up the qualified play count for a library id.
type PlayCountFunc func(libraryID string) (int, bool)

// albumPayload is one exported album. Fields are declared in lexicographic
// order so the marshalled keys come out sorted.
type albumPayload struct {
	Artist        string  `json:"artist"`
	ArtworkURL    string  `json:"artworkUrl"`
	ContentRating *string `json:"contentRating"`
	DateAdded     string  `json:"dateAdded"`
	Genre         string  `json:"genre"`
	ID            *int    `json:"id"`
	Name          string  `json:"name"`
	PlayCount     *int    `json:"playCount"`
	ReleaseDate   string  `json:"releaseDate"`
	TrackCount    int     `json:"trackCount"`
	URL           string  `json:"url"`
}

// included filters the album list down to non-excluded entries.
// Returns ErrExportEmpty when nothing survives the filter.
func included(albums []models.Album, excluded ExcludeFunc) ([]models.Album, error) {
	kept := make([]models.Album, 0, len(albums))
	for _, album := range albums {
		if excluded != nil && excluded(album.LibraryID) {
			continue
		}
		kept = append(kept, album)
	}

	if len(kept) == 0 {
		return nil, shared.ErrExportEmpty
	}
	return kept, nil
}

// ExportToJSON converts the included albums to a compact JSON array
// payload: sorted keys, no whitespace around the colon separator.
//
// The catalog id, content rating, and play count are null when unresolved,
// absent, or unqualified respectively.
func ExportToJSON(albums []models.Album, excluded ExcludeFunc, counts PlayCountFunc) ([]byte, error) {
	kept, err := included(albums, excluded)
	if err != nil {
		return nil, err
	}

	payload := make([]albumPayload, 0, len(kept))
	for _, album := range kept {
		entry := albumPayload{
			Artist:      album.Artist,
			ArtworkURL:  album.ArtworkAt(artworkRendition, artworkRendition),
			DateAdded:   album.DateAdded,
			Genre:       album.Genre,
			Name:        album.Title,
			ReleaseDate: album.ReleaseDateRaw,
			TrackCount:  album.TrackCount,
			URL:         album.CanonicalLink(),
		}

		if album.CatalogID != 0 {
			id := album.CatalogID
			entry.ID = &id
		}
		if album.ContentRating != "" {
			rating := album.ContentRating
			entry.ContentRating = &rating
		}
		if counts != nil {
			if count, ok := counts(album.LibraryID); ok {
				entry.PlayCount = &count
			}
		}

		payload = append(payload, entry)
	}

	return shared.MarshalJSON(payload, false)
}

// ExportToText converts the included albums to plain text, one line per
// album: "<title>" by <artist>: <canonical URL or empty string>
func ExportToText(albums []models.Album, excluded ExcludeFunc) ([]byte, error) {
	kept, err := included(albums, excluded)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, album := range kept {
		buf.WriteString(fmt.Sprintf("%q by %s: %s\n", album.Title, album.Artist, album.CanonicalLink()))
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the included albums to Markdown, one bullet per
// album: - "[<title>](<canonical URL>)" by <artist>
func ExportToMarkdown(albums []models.Album, excluded ExcludeFunc) ([]byte, error) {
	kept, err := included(albums, excluded)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, album := range kept {
		buf.WriteString(fmt.Sprintf("- \"[%s](%s)\" by %s\n", album.Title, album.CanonicalLink(), album.Artist))
	}

	return buf.Bytes(), nil
}

// WriteExport writes an export payload to the given path.
func WriteExport(payload []byte, path string) error {
	if path == "" {
		return fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrIOFailure, err)
	}
	return nil
}

// CopyToClipboard places an export payload on the system clipboard.
func CopyToClipboard(payload []byte) error {
	if err := clipboard.WriteAll(string(payload)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
