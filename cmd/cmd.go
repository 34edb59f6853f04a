// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// syncCommand refreshes the album cache from the remote library
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Refresh favorited albums from the remote library",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "full",
				Usage: "Discard the local collection and rebuild from fresh data",
			},
		},
		Action: r.SyncRun,
	}
}

// enrichCommand runs the play-count aggregation pass
func enrichCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "enrich",
		Usage: "Compute album play counts from per-track listening statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Bypass the cached track listings and refetch everything",
			},
		},
		Action: r.EnrichRun,
	}
}

// exportCommand renders the cached collection
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export cached albums as JSON, plain text, or Markdown",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, text, or markdown",
				Value:   "json",
			},
			&cli.IntFlag{
				Name:  "year",
				Usage: "Limit the export to one release year",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "clipboard",
				Usage: "Copy the payload to the system clipboard",
			},
		},
		Action: r.Export,
	}
}

// excludeCommand manages the exclusion set
func excludeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "exclude",
		Usage: "Manage albums omitted from exports",
		Commands: []*cli.Command{
			{
				Name:  "toggle",
				Usage: "Flip the exclusion state of one album",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.ExcludeToggle,
			},
			{
				Name:  "set",
				Usage: "Exclude (or include with --include) a range of albums",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "ids",
						Usage:    "Library ids to update",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "include",
						Usage: "Include the albums instead of excluding them",
					},
				},
				Action: r.ExcludeSet,
			},
			{
				Name:   "clear",
				Usage:  "Remove every exclusion",
				Action: r.ExcludeClear,
			},
			{
				Name:  "list",
				Usage: "List excluded albums",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ExcludeList,
			},
		},
	}
}

// statusCommand reports cache freshness
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show cache freshness and per-year album counts",
		Action: r.Status,
	}
}

// openCommand opens an album's catalog page
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Open an album's catalog page in the browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Library id of the album",
				Required: true,
			},
		},
		Action: r.Open,
	}
}

// setupCommand handles setup operations for the database and authentication.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the listing-cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "auth",
				Usage: "Capture library API credentials from browser headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupAuth,
			},
		},
	}
}
