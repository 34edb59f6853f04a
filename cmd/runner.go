package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/favsync/internal/repositories"
	"github.com/desertthunder/favsync/internal/services"
	"github.com/desertthunder/favsync/internal/shared"
	"github.com/desertthunder/favsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	library    services.LibraryService
	albums     *repositories.AlbumStore
	playCounts *repositories.PlayCountStore
	exclusions *repositories.ExclusionManager
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Library services.LibraryService
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	albums := repositories.NewAlbumStore(opts.Config.Cache.AlbumsPath)

	return &Runner{
		config:     opts.Config,
		library:    opts.Library,
		albums:     albums,
		playCounts: repositories.NewPlayCountStore(opts.Config.Cache.PlayCountsPath),
		exclusions: repositories.NewExclusionManager(albums),
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, syncCommand, enrichCommand, exportCommand, excludeCommand, statusCommand, openCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// newEngine builds a sync engine sharing the runner's stores. The track
// listing cache is optional; enrich supplies one, sync does not need it.
func (r *Runner) newEngine(trackStats *repositories.TrackStatsRepository) *tasks.LibraryEngine {
	return tasks.NewLibraryEngine(tasks.EngineOpts{
		Library:    r.library,
		Albums:     r.albums,
		PlayCounts: r.playCounts,
		TrackStats: trackStats,
		Logger:     r.logger,
	})
}

// drainProgress logs progress updates until the channel is closed.
func (r *Runner) drainProgress(progress <-chan tasks.ProgressUpdate, done chan<- struct{}) {
	for update := range progress {
		r.logger.Info(update.Message, "phase", update.Phase.String())
	}
	close(done)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
