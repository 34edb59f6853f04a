package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/favsync/internal/formatter"
	"github.com/desertthunder/favsync/internal/models"
	"github.com/desertthunder/favsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export renders the cached albums in the requested format.
//
// Excluded albums are always omitted; exporting an empty set fails with
// "nothing to export". The payload goes to --output, the clipboard, or
// stdout in that order of preference.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	cache, err := r.albums.Load()
	if err != nil {
		return fmt.Errorf("no album cache, run 'favsync sync' first: %w", err)
	}

	albums := cache.All()
	if year := int(cmd.Int("year")); year != 0 {
		albums = cache.ForYear(year)
	}

	counts := models.NewPlayCountCache()
	if loaded, err := r.playCounts.Load(); err == nil {
		counts = loaded
	}

	payload, err := r.renderExport(cmd.String("format"), albums, counts)
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(payload, path); err != nil {
			return err
		}
		r.writePlainln("✓ Export written to %s", path)
		return nil
	}

	if cmd.Bool("clipboard") {
		if err := formatter.CopyToClipboard(payload); err != nil {
			return err
		}
		r.writePlainln("✓ Export copied to clipboard")
		return nil
	}

	return r.writePlain("%s", payload)
}

func (r *Runner) renderExport(format string, albums []models.Album, counts *models.PlayCountCache) ([]byte, error) {
	excluded := r.exclusions.IsExcluded
	lookup := counts.Lookup

	switch format {
	case "json", "":
		return formatter.ExportToJSON(albums, excluded, lookup)
	case "text", "txt":
		return formatter.ExportToText(albums, excluded)
	case "markdown", "md":
		return formatter.ExportToMarkdown(albums, excluded)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}
