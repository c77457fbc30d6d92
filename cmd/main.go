package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"mixtape/internal/repositories"
	"mixtape/internal/shared"
	"mixtape/internal/tasks"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var cache tasks.TrackCacher
	if config.Database.Path != "" {
		if db, err := shared.NewDatabase(config.Database); err == nil {
			repo := repositories.NewTrackCacheRepository(db)
			if err := repo.Migrate(); err == nil {
				cache = repo
			} else {
				logger.Warn("track cache unavailable", "error", err)
			}
		} else {
			logger.Warn("failed to open track cache database", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Cache:  cache,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "mixtape",
		Usage:    "Generate Spotify playlists from natural-language prompts",
		Version:  "0.1.0",
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
