// package repositories provides SQLite persistence for resolved track lookups.
package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mixtape/internal/shared"
)

// trackCacheSchema holds one row per (artist, title) pair the resolver has
// already matched against the catalog.
const trackCacheSchema = `
CREATE TABLE IF NOT EXISTS resolved_tracks (
	id TEXT PRIMARY KEY,
	cache_key TEXT NOT NULL UNIQUE,
	artist TEXT NOT NULL,
	title TEXT NOT NULL,
	uri TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resolved_tracks_created_at ON resolved_tracks(created_at);
`

// TrackCacheRepository persists candidate-to-URI resolutions so repeated
// prompts skip catalog searches for songs already matched.
//
// Implements tasks.TrackCacher. Lookups key on the normalized artist+title
// pair, so "Daft Punk - One More Time" and "daft punk - one more time" share
// one entry.
type TrackCacheRepository struct {
	db *sql.DB
}

// NewTrackCacheRepository creates a new TrackCacheRepository with the given database connection
func NewTrackCacheRepository(db *sql.DB) *TrackCacheRepository {
	return &TrackCacheRepository{db: db}
}

// Migrate creates the cache table if it does not exist.
func (r *TrackCacheRepository) Migrate() error {
	if _, err := r.db.Exec(trackCacheSchema); err != nil {
		return fmt.Errorf("failed to create resolved_tracks table: %w", err)
	}
	return nil
}

// Lookup returns the cached catalog URI for a candidate, if any.
func (r *TrackCacheRepository) Lookup(artist, title string) (string, bool) {
	key := shared.NormalizeTrackKey(artist, title)

	var uri string
	err := r.db.QueryRow("SELECT uri FROM resolved_tracks WHERE cache_key = ?", key).Scan(&uri)
	if err != nil {
		return "", false
	}
	return uri, true
}

// Store records a resolution. Returns nil if the pair is already cached
// (deduplication); only actual failures surface as errors.
func (r *TrackCacheRepository) Store(artist, title, uri string) error {
	key := shared.NormalizeTrackKey(artist, title)

	query := `
		INSERT INTO resolved_tracks (id, cache_key, artist, title, uri, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, shared.GenerateID(), key, artist, title, uri, time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache resolution: %w", err)
	}
	return nil
}

// Count reports the number of cached resolutions.
func (r *TrackCacheRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM resolved_tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached resolutions: %w", err)
	}
	return count, nil
}

// Purge removes all cached resolutions and returns how many were deleted.
func (r *TrackCacheRepository) Purge() (int, error) {
	result, err := r.db.Exec("DELETE FROM resolved_tracks")
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	affected, _ := result.RowsAffected()
	return int(affected), nil
}
