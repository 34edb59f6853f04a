package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/favsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// ExcludeToggle flips the exclusion state of one album.
func (r *Runner) ExcludeToggle(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: library id", shared.ErrMissingArgument)
	}

	excluded, err := r.exclusions.Toggle(id)
	if err != nil {
		return fmt.Errorf("failed to toggle exclusion: %w", err)
	}

	if excluded {
		r.writePlainln("✓ %s excluded from exports", id)
	} else {
		r.writePlainln("✓ %s included in exports", id)
	}
	return nil
}

// ExcludeSet marks a range of albums excluded or included in one write.
func (r *Runner) ExcludeSet(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.StringSlice("ids")
	if len(ids) == 0 {
		return fmt.Errorf("%w: --ids", shared.ErrMissingArgument)
	}

	excluded := !cmd.Bool("include")
	if err := r.exclusions.SetExcluded(ids, excluded); err != nil {
		return fmt.Errorf("failed to set exclusions: %w", err)
	}

	if excluded {
		r.writePlainln("✓ %d albums excluded", len(ids))
	} else {
		r.writePlainln("✓ %d albums included", len(ids))
	}
	return nil
}

// ExcludeClear removes every exclusion.
func (r *Runner) ExcludeClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.exclusions.Clear(); err != nil {
		return fmt.Errorf("failed to clear exclusions: %w", err)
	}
	r.writePlainln("✓ Exclusions cleared")
	return nil
}

// ExcludeList prints the excluded albums, resolved against the cache when possible.
func (r *Runner) ExcludeList(ctx context.Context, cmd *cli.Command) error {
	ids := r.exclusions.IDs()
	if len(ids) == 0 {
		r.writePlainln("No albums are excluded")
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(ids, true)
	}

	titles := map[string]string{}
	if cache, err := r.albums.Load(); err == nil {
		for _, album := range cache.All() {
			titles[album.LibraryID] = fmt.Sprintf("%s - %s", album.Artist, album.Title)
		}
	}

	for _, id := range ids {
		if title, ok := titles[id]; ok {
			r.writePlain("%s\t%s\n", id, title)
		} else {
			r.writePlain("%s\n", id)
		}
	}
	return nil
}
