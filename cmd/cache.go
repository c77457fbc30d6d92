package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"mixtape/internal/repositories"
	"mixtape/internal/shared"
)

func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and manage the resolved-track cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show how many resolutions are cached",
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Delete all cached resolutions",
				Action: r.CacheClear,
			},
		},
	}
}

// openCache opens the configured cache database and applies the schema.
func (r *Runner) openCache() (*repositories.TrackCacheRepository, func(), error) {
	if r.config.Database.Path == "" {
		return nil, nil, fmt.Errorf("%w: database.path not configured", shared.ErrMissingConfig)
	}

	db, err := shared.NewDatabase(r.config.Database)
	if err != nil {
		return nil, nil, err
	}

	repo := repositories.NewTrackCacheRepository(db)
	if err := repo.Migrate(); err != nil {
		db.Close()
		return nil, nil, err
	}

	return repo, func() { db.Close() }, nil
}

// CacheStats reports the size of the resolved-track cache.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	repo, cleanup, err := r.openCache()
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := repo.Count()
	if err != nil {
		return err
	}

	return r.writePlain("Cached resolutions: %d\n", count)
}

// CacheClear purges the resolved-track cache.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, cleanup, err := r.openCache()
	if err != nil {
		return err
	}
	defer cleanup()

	deleted, err := repo.Purge()
	if err != nil {
		return err
	}

	r.logger.Info("cache cleared", "deleted", deleted)
	return r.writePlain("✓ Deleted %d cached resolutions\n", deleted)
}
