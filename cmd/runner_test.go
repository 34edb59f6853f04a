package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/shared"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	config := shared.DefaultConfig()
	config.Cache.AlbumsPath = filepath.Join(dir, "albums.json")
	config.Cache.PlayCountsPath = filepath.Join(dir, "plays.json")

	var buf bytes.Buffer
	runner := NewRunner(RunnerOpts{Config: config, Output: &buf})
	return runner, &buf
}

func seedRunnerCache(t *testing.T, r *Runner) {
	t.Helper()

	cache := models.NewAlbumCache()
	cache.Add(models.Album{
		LibraryID:      "l.1",
		CatalogID:      1440857781,
		Title:          "Abbey Road",
		Artist:         "The Beatles",
		ReleaseDateRaw: "1969-09-26",
		Year:           1969,
		TrackCount:     17,
	})
	cache.Add(models.Album{
		LibraryID:      "l.2",
		Title:          "Confield",
		Artist:         "Autechre",
		ReleaseDateRaw: "2001-04-30",
		Year:           2001,
		TrackCount:     11,
	})
	cache.Normalize()
	if err := r.albums.Save(cache); err != nil {
		t.Fatalf("seed Save failed: %v", err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := NewRunner(RunnerOpts{})
	if runner.config == nil || runner.albums == nil || runner.playCounts == nil || runner.exclusions == nil {
		t.Error("NewRunner left a dependency nil")
	}
	if runner.logger == nil || runner.output == nil {
		t.Error("NewRunner left logger or output nil")
	}
}

func TestRegister(t *testing.T) {
	runner, _ := newTestRunner(t)
	commands := runner.register()

	want := []string{"setup", "sync", "enrich", "export", "exclude", "status", "open"}
	if len(commands) != len(want) {
		t.Fatalf("registered %d commands, want %d", len(commands), len(want))
	}
	for i, name := range want {
		if commands[i].Name != name {
			t.Errorf("command %d = %q, want %q", i, commands[i].Name, name)
		}
	}
}

func TestRenderExport(t *testing.T) {
	runner, _ := newTestRunner(t)
	seedRunnerCache(t, runner)

	cache, err := runner.albums.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	albums := cache.All()
	counts := models.NewPlayCountCache()
	counts.PlayCountsByLibraryID["l.1"] = 5

	t.Run("json is the default", func(t *testing.T) {
		payload, err := runner.renderExport("", albums, counts)
		if err != nil {
			t.Fatalf("renderExport failed: %v", err)
		}
		if !strings.Contains(string(payload), `"playCount":5`) {
			t.Errorf("JSON export missing play count:\n%s", payload)
		}
	})

	t.Run("format aliases", func(t *testing.T) {
		for _, format := range []string{"text", "txt"} {
			payload, err := runner.renderExport(format, albums, counts)
			if err != nil {
				t.Fatalf("renderExport(%q) failed: %v", format, err)
			}
			if !strings.HasPrefix(string(payload), `"Abbey Road" by The Beatles`) {
				t.Errorf("text export:\n%s", payload)
			}
		}
		for _, format := range []string{"markdown", "md"} {
			payload, err := runner.renderExport(format, albums, counts)
			if err != nil {
				t.Fatalf("renderExport(%q) failed: %v", format, err)
			}
			if !strings.HasPrefix(string(payload), "- \"[") {
				t.Errorf("markdown export:\n%s", payload)
			}
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := runner.renderExport("yaml", albums, counts); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("error = %v, want ErrInvalidFlag", err)
		}
	})

	t.Run("exclusions apply", func(t *testing.T) {
		if _, err := runner.exclusions.Toggle("l.2"); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		payload, err := runner.renderExport("text", albums, counts)
		if err != nil {
			t.Fatalf("renderExport failed: %v", err)
		}
		if strings.Contains(string(payload), "Confield") {
			t.Error("excluded album still exported")
		}
	})
}

func TestWriteHelpers(t *testing.T) {
	runner, buf := newTestRunner(t)

	if err := runner.writeJSON(map[string]int{"a": 1}, false); err != nil {
		t.Fatalf("writeJSON failed: %v", err)
	}
	if got := buf.String(); got != "{\"a\":1}\n" {
		t.Errorf("writeJSON output = %q", got)
	}

	buf.Reset()
	if err := runner.writePlain("%d albums", 3); err != nil {
		t.Fatalf("writePlain failed: %v", err)
	}
	if got := buf.String(); got != "3 albums" {
		t.Errorf("writePlain output = %q", got)
	}
}
