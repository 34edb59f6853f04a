package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/favsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the listing-cache database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupAuth captures library API credentials from a browser cURL command.
//
// Accepts a "Copy as cURL" command from DevTools, extracts the
// Authorization and Media-User-Token headers, and writes them into the
// config file.
func (r *Runner) SetupAuth(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	configPath := cmd.String("config")

	var creds *shared.CurlCredentials
	var err error

	switch {
	case curlCmd != "":
		creds, err = shared.ParseCurlCommand([]byte(curlCmd))
	case curlFile != "":
		creds, err = shared.ParseCurlFile(curlFile)
	default:
		return fmt.Errorf("%w: --curl or --curl-file", shared.ErrMissingArgument)
	}
	if err != nil {
		return fmt.Errorf("failed to parse curl command: %w", err)
	}

	if _, statErr := os.Stat(configPath); statErr != nil {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if creds.DeveloperToken != "" {
		config.Credentials.DeveloperToken = creds.DeveloperToken
	}
	if creds.MediaUserToken != "" {
		config.Credentials.MediaUserToken = creds.MediaUserToken
	}

	if err := shared.SaveConfig(config, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.writePlainln("✓ Credentials written to %s", configPath)
	return nil
}
