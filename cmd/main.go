package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/favsync/internal/services"
	"github.com/desertthunder/favsync/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var library services.LibraryService
	if config.Credentials.DeveloperToken != "" {
		if svc, err := services.NewAppleMusicService(services.AppleMusicOpts{
			BaseURL:        config.Fetch.BaseURL,
			Storefront:     config.Credentials.Storefront,
			DeveloperToken: config.Credentials.DeveloperToken,
			MediaUserToken: config.Credentials.MediaUserToken,
			PageSize:       config.Fetch.PageSize,
		}); err == nil {
			library = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Library: library,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "favsync",
		Usage:    "Mirror favorited albums locally with listen-strength enrichment",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
