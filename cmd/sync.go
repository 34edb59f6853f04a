package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/favsync/internal/repositories"
	"github.com/desertthunder/favsync/internal/shared"
	"github.com/desertthunder/favsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SyncRun refreshes the album cache from the remote library.
//
// Incremental by default; --full discards the local collection and rebuilds
// it solely from fresh data.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: configure credentials with 'favsync setup auth'", shared.ErrServiceUnavailable)
	}

	full := cmd.Bool("full")
	if full {
		r.logger.Info("running full resync")
	} else {
		r.logger.Info("running incremental sync")
	}

	engine := r.newEngine(nil)

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go r.drainProgress(progress, done)

	cache, err := engine.Sync(ctx, progress, full)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	r.writePlainln("✓ Synced %d albums across %d years", cache.TotalAlbums, len(cache.Albums))
	return nil
}

// EnrichRun computes qualified album play counts for every cached album.
func (r *Runner) EnrichRun(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: configure credentials with 'favsync setup auth'", shared.ErrServiceUnavailable)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open listing cache: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	engine := r.newEngine(repositories.NewTrackStatsRepository(db))

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go r.drainProgress(progress, done)

	cache, err := engine.Enrich(ctx, progress, tasks.EnrichOpts{
		Refresh:   cmd.Bool("refresh"),
		RateLimit: r.config.Fetch.RateLimit,
	})
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("enrich failed: %w", err)
	}

	r.writePlainln("✓ %d albums carry a qualified play count", len(cache.PlayCountsByLibraryID))
	return nil
}
