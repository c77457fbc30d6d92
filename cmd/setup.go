package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"mixtape/internal/shared"
)

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path for the new configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the resolved-track cache database",
				Action: r.SetupDatabase,
			},
		},
	}
}

// SetupConfig writes the starter configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlainln("✓ Created %s", path)
	r.writePlain("Fill in your Spotify and OpenAI credentials, then run: mixtape auth\n")
	return nil
}

// SetupDatabase creates the cache database and applies its schema.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	repo, cleanup, err := r.openCache()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer cleanup()

	count, err := repo.Count()
	if err != nil {
		return err
	}

	r.writePlainln("✓ Database ready at %s (%d cached resolutions)", r.config.Database.Path, count)
	return nil
}
