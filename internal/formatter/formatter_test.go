package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/shared"
	th "github.com/desertthunder/favsync/internal/testing"
)

func sampleAlbums() []models.Album {
	return []models.Album{
		{
			LibraryID:      "l.1",
			CatalogID:      1440857781,
			Title:          "Abbey Road",
			Artist:         "The Beatles",
			Genre:          "Rock",
			ReleaseDateRaw: "1969-09-26",
			Year:           1969,
			TrackCount:     17,
			DateAdded:      "2024-03-01T10:00:00Z",
			ArtworkURL:     "https://example.com/{w}x{h}.jpg",
		},
		{
			LibraryID:      "l.2",
			Title:          "Unreleased Demos",
			Artist:         "Nobody",
			ReleaseDateRaw: "2020-01-01",
			Year:           2020,
			TrackCount:     4,
		},
	}
}

func excludeIDs(ids ...string) ExcludeFunc {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(libraryID string) bool { return set[libraryID] }
}

func TestExportToJSON(t *testing.T) {
	counts := func(libraryID string) (int, bool) {
		if libraryID == "l.1" {
			return 5, true
		}
		return 0, false
	}

	payload, err := ExportToJSON(sampleAlbums(), nil, counts)
	if err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("exported %d albums, want 2", len(decoded))
	}

	first := decoded[0]
	if first["url"] != "https://music.apple.com/us/album/1440857781" {
		t.Errorf("url = %v", first["url"])
	}
	if first["artworkUrl"] != "https://example.com/640x640.jpg" {
		t.Errorf("artworkUrl = %v", first["artworkUrl"])
	}
	if first["playCount"] != float64(5) {
		t.Errorf("playCount = %v, want 5", first["playCount"])
	}

	second := decoded[1]
	for _, key := range []string{"id", "contentRating", "playCount"} {
		if value, ok := second[key]; !ok || value != nil {
			t.Errorf("%s = %v, want an explicit null", key, value)
		}
	}
	if second["url"] != "" {
		t.Errorf("url without a catalog id = %v, want empty", second["url"])
	}

	// Compact form: no whitespace after the colon separator.
	if strings.Contains(string(payload), `": `) {
		t.Errorf("export carries whitespace around colons:\n%s", payload)
	}

	// Keys come out of the marshaller sorted.
	object := payload[strings.IndexByte(string(payload), '{'):]
	artistIdx := strings.Index(string(object), `"artist"`)
	urlIdx := strings.Index(string(object), `"url"`)
	if artistIdx == -1 || urlIdx == -1 || artistIdx > urlIdx {
		t.Error("JSON keys are not in sorted order")
	}
}

func TestExportToText(t *testing.T) {
	payload, err := ExportToText(sampleAlbums(), nil)
	if err != nil {
		t.Fatalf("ExportToText failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("exported %d lines, want 2", len(lines))
	}
	if lines[0] != `"Abbey Road" by The Beatles: https://music.apple.com/us/album/1440857781` {
		t.Errorf("line = %s", lines[0])
	}
	if lines[1] != `"Unreleased Demos" by Nobody: ` {
		t.Errorf("line without a link = %s", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	payload, err := ExportToMarkdown(sampleAlbums(), nil)
	if err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	if lines[0] != `- "[Abbey Road](https://music.apple.com/us/album/1440857781)" by The Beatles` {
		t.Errorf("bullet = %s", lines[0])
	}
	if lines[1] != `- "[Unreleased Demos]()" by Nobody` {
		t.Errorf("bullet without a link = %s", lines[1])
	}
}

func TestExportExclusions(t *testing.T) {
	t.Run("excluded albums are filtered out", func(t *testing.T) {
		payload, err := ExportToText(sampleAlbums(), excludeIDs("l.2"))
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		if strings.Contains(string(payload), "Unreleased Demos") {
			t.Error("excluded album still exported")
		}
	})

	t.Run("everything excluded is an error", func(t *testing.T) {
		for _, export := range []func() ([]byte, error){
			func() ([]byte, error) { return ExportToJSON(sampleAlbums(), excludeIDs("l.1", "l.2"), nil) },
			func() ([]byte, error) { return ExportToText(sampleAlbums(), excludeIDs("l.1", "l.2")) },
			func() ([]byte, error) { return ExportToMarkdown(sampleAlbums(), excludeIDs("l.1", "l.2")) },
		} {
			if _, err := export(); !errors.Is(err, shared.ErrExportEmpty) {
				t.Errorf("error = %v, want ErrExportEmpty", err)
			}
		}
	})

	t.Run("empty input is an error", func(t *testing.T) {
		if _, err := ExportToText(nil, nil); !errors.Is(err, shared.ErrExportEmpty) {
			t.Errorf("error = %v, want ErrExportEmpty", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.txt")
	if err := WriteExport([]byte("payload\n"), path); err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}
	th.AssertFileExists(t, path)
	if content := th.MustReadFile(t, path); content != "payload\n" {
		t.Errorf("written content = %q", content)
	}

	if err := WriteExport([]byte("x"), ""); !errors.Is(err, shared.ErrMissingArgument) {
		t.Errorf("empty path error = %v, want ErrMissingArgument", err)
	}
}
