package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/favsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Status prints cache freshness and per-year album counts without touching
// the network.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	cache, err := r.albums.Load()
	if err != nil {
		r.writePlainln("No album cache yet, run 'favsync sync'")
		return nil
	}

	r.writePlainln("Albums: %d (last updated %s)", cache.TotalAlbums, cache.LastUpdated.Format("2006-01-02 15:04"))

	for _, year := range cache.Years() {
		bucket := cache.ForYear(year)
		line := fmt.Sprintf("  %d: %d albums", year, len(bucket))
		if excluded := r.exclusions.ExcludedCountIn(bucket); excluded > 0 {
			line += fmt.Sprintf(" (%d excluded)", excluded)
		}
		r.writePlain("%s\n", line)
	}

	if counts, err := r.playCounts.Load(); err == nil {
		r.writePlainln("Play counts: %d qualified (last updated %s)",
			len(counts.PlayCountsByLibraryID), counts.LastUpdated.Format("2006-01-02 15:04"))
	} else {
		r.writePlainln("Play counts: none, run 'favsync enrich'")
	}

	return nil
}

// Open opens an album's canonical catalog page in the system browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	if id == "" {
		return fmt.Errorf("%w: --id", shared.ErrMissingArgument)
	}

	cache, err := r.albums.Load()
	if err != nil {
		return fmt.Errorf("no album cache, run 'favsync sync' first: %w", err)
	}

	for _, album := range cache.All() {
		if album.LibraryID != id {
			continue
		}
		link := album.CanonicalLink()
		if link == "" {
			return fmt.Errorf("album %q has no resolved catalog page", album.Title)
		}
		r.logger.Info("opening catalog page", "album", album.Title, "url", link)
		return shared.OpenBrowser(link)
	}

	return fmt.Errorf("no cached album with library id %s", id)
}
