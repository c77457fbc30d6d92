package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"mixtape/internal/shared"
	"mixtape/internal/tasks"
)

func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a playlist from a prompt and create it on Spotify",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "prompt",
				Aliases:  []string{"p"},
				Usage:    "Description of the playlist to generate",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "length",
				Aliases: []string{"l"},
				Usage:   "Number of songs to request",
				Value:   10,
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (default: derived from the first artist)",
			},
			&cli.IntFlag{
				Name:  "history",
				Usage: "Listening-history sample size used to bias suggestions (0 disables)",
				Value: 0,
			},
		},
		Action: r.Generate,
	}
}

// Generate runs one synchronous playlist generation, printing pipeline
// diagnostics and the playlist URL to standard output.
//
// Credentials come from the environment first (SPOTIFY_CLIENT_ID,
// SPOTIFY_CLIENT_SECRET, SPOTIFY_REDIRECT_URI, OPENAI_API_KEY), falling back
// to config.toml for any unset variable.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Bundle().Merge(shared.CredentialsFromEnv())
	if missing := creds.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", shared.ErrMissingCredentials, missing)
	}

	req := tasks.Request{
		Prompt:      cmd.String("prompt"),
		Length:      int(cmd.Int("length")),
		Name:        cmd.String("name"),
		History:     int(cmd.Int("history")),
		Credentials: creds,
	}

	r.logger.Info("starting generation", "prompt", req.Prompt, "length", req.Length)

	result, err := r.engine.Run(ctx, req, r.output)
	if err != nil {
		return err
	}

	return r.writePlainln("%s", result)
}
