package tasks

import (
	"context"
	"fmt"
	"strings"

	"mixtape/internal/services"
	"mixtape/internal/shared"
)

// MusicContext fetches the user's listening history and formats it as two
// labeled plain-text sections used to bias the generation prompt.
func MusicContext(ctx context.Context, catalog services.CatalogService, limit int) (string, error) {
	recent, err := catalog.RecentlyPlayed(ctx, limit)
	if err != nil {
		return "", fmt.Errorf("%w: recently played: %v", shared.ErrAPIRequest, err)
	}

	top, err := catalog.TopTracks(ctx, limit, "medium_term")
	if err != nil {
		return "", fmt.Errorf("%w: top tracks: %v", shared.ErrAPIRequest, err)
	}

	var b strings.Builder
	b.WriteString("Recently played tracks:\n")
	for _, track := range recent {
		fmt.Fprintf(&b, "%s - %s\n", track.Artist, track.Title)
	}

	b.WriteString("\nTop tracks:\n")
	for _, track := range top {
		fmt.Fprintf(&b, "%s - %s\n", track.Artist, track.Title)
	}

	return b.String(), nil
}
