// package services defines interfaces for the external APIs the generator calls into
//
// Spotify (catalog), OpenAI (text generation)
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// CatalogService defines the music catalog operations the pipeline consumes.
type CatalogService interface {
	// Authenticate performs OAuth or token-based authentication with the catalog.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// CurrentUser retrieves the authenticated user's profile.
	CurrentUser(ctx context.Context) (*User, error)

	// SearchTracks queries the catalog with a raw field query (e.g. "artist:X track:Y")
	// and returns up to limit matches, best first.
	SearchTracks(ctx context.Context, query string, limit int) ([]Track, error)

	// CreatePlaylist creates a playlist owned by userID.
	CreatePlaylist(ctx context.Context, userID, name string, public bool) (*Playlist, error)

	// AddTracks appends one batch of track URIs to a playlist, in order.
	AddTracks(ctx context.Context, playlistID string, uris []string) error

	// RecentlyPlayed retrieves the user's most recently played tracks.
	RecentlyPlayed(ctx context.Context, limit int) ([]Track, error)

	// TopTracks retrieves the user's top tracks over the given time range.
	TopTracks(ctx context.Context, limit int, timeRange string) ([]Track, error)

	// Name returns the name of the catalog provider (e.g. "Spotify")
	Name() string
}

// OAuthService extends CatalogService for providers using browser-redirect OAuth flows.
type OAuthService interface {
	CatalogService

	// GetAuthURL returns the authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 config for callback handling.
	GetOAuthConfig() *oauth2.Config
}

// TextService defines the generative-text completion operation.
type TextService interface {
	// Complete sends a system and user instruction pair and returns the raw completion text.
	Complete(ctx context.Context, system, user string) (string, error)

	// Name returns the name of the text provider (e.g. "OpenAI")
	Name() string
}

// Track represents a catalog track
type Track struct {
	ID     string
	Title  string
	Artist string
	Album  string
	URI    string // Catalog-assigned opaque identifier used for playlist membership
}

// Playlist represents a catalog playlist
type Playlist struct {
	ID         string
	Name       string
	URL        string // Public web URL
	Public     bool
	TrackCount int
}

// User represents a catalog user profile
type User struct {
	ID          string
	DisplayName string
}
