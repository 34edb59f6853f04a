package tasks

import (
	"testing"
	"time"

	"github.com/desertthunder/favsync/internal/services"
)

func catalogRel(refs ...services.RawCatalogRef) *services.RawRelationship {
	return &services.RawRelationship{Data: refs}
}

func TestResolveCatalogID(t *testing.T) {
	tests := []struct {
		name  string
		entry services.RawAlbumEntry
		want  int
	}{
		{
			"no relationships",
			services.RawAlbumEntry{ID: "l.1"},
			0,
		},
		{
			"numeric catalog reference",
			services.RawAlbumEntry{Relationships: &services.RawRelationships{
				Catalog: catalogRel(services.RawCatalogRef{ID: "1440857781"}),
			}},
			1440857781,
		},
		{
			"non-numeric id falls back to the catalog URL",
			services.RawAlbumEntry{Relationships: &services.RawRelationships{
				Catalog: catalogRel(services.RawCatalogRef{
					ID:         "na",
					Attributes: &services.RawCatalogAttributes{URL: "https://music.apple.com/us/album/abbey-road/1441164426"},
				}),
			}},
			1441164426,
		},
		{
			"first track's catalog reference as last resort",
			services.RawAlbumEntry{Relationships: &services.RawRelationships{
				Catalog: catalogRel(services.RawCatalogRef{ID: "na"}),
				Tracks: &services.RawTrackRelationship{Data: []services.RawTrackRef{
					{
						ID: "t.1",
						Relationships: &services.RawRelationships{
							Catalog: catalogRel(services.RawCatalogRef{ID: "1443535310"}),
						},
					},
					{
						ID: "t.2",
						Relationships: &services.RawRelationships{
							Catalog: catalogRel(services.RawCatalogRef{ID: "999"}),
						},
					},
				}},
			}},
			1443535310,
		},
		{
			"nothing resolvable",
			services.RawAlbumEntry{Relationships: &services.RawRelationships{
				Catalog: catalogRel(services.RawCatalogRef{
					ID:         "na",
					Attributes: &services.RawCatalogAttributes{URL: "https://music.apple.com/us/album/untitled"},
				}),
			}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCatalogID(tt.entry); got != tt.want {
				t.Errorf("ResolveCatalogID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeEntry(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("full entry", func(t *testing.T) {
		entry := services.RawAlbumEntry{
			ID: "l.1",
			Attributes: services.RawAlbumAttributes{
				Name:        "Geogaddi",
				ArtistName:  "Boards of Canada",
				GenreNames:  []string{"Electronic", "IDM"},
				ReleaseDate: "2002-02-18",
				TrackCount:  23,
				DateAdded:   "2024-03-01T10:00:00Z",
				Artwork:     &services.RawArtwork{URL: "https://example.com/{w}x{h}.jpg"},
			},
		}

		album, ok := NormalizeEntry(entry, now)
		if !ok {
			t.Fatal("NormalizeEntry rejected a complete entry")
		}
		if album.Genre != "Electronic" {
			t.Errorf("Genre = %q, want the first genre name", album.Genre)
		}
		if album.Year != 2002 {
			t.Errorf("Year = %d, want 2002", album.Year)
		}
		if album.ArtworkURL != "https://example.com/{w}x{h}.jpg" {
			t.Errorf("ArtworkURL = %q", album.ArtworkURL)
		}
	})

	t.Run("entries without name or artist are rejected", func(t *testing.T) {
		cases := []services.RawAlbumEntry{
			{ID: "l.1", Attributes: services.RawAlbumAttributes{ArtistName: "Somebody"}},
			{ID: "l.2", Attributes: services.RawAlbumAttributes{Name: "Untitled"}},
			{Attributes: services.RawAlbumAttributes{Name: "Untitled", ArtistName: "Somebody"}},
		}
		for _, entry := range cases {
			if _, ok := NormalizeEntry(entry, now); ok {
				t.Errorf("entry %+v should not normalize", entry)
			}
		}
	})

	t.Run("missing release date falls back to the current year", func(t *testing.T) {
		entry := services.RawAlbumEntry{
			ID:         "l.3",
			Attributes: services.RawAlbumAttributes{Name: "New", ArtistName: "Somebody"},
		}
		album, ok := NormalizeEntry(entry, now)
		if !ok {
			t.Fatal("NormalizeEntry rejected the entry")
		}
		if album.Year != 2026 {
			t.Errorf("Year = %d, want the current year 2026", album.Year)
		}
	})
}
