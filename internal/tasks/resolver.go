package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mixtape/internal/services"
	"mixtape/internal/shared"
)

// candidateSeparator divides artist from title in a generated song line.
const candidateSeparator = " - "

// ParseCandidate splits an "Artist - Title" candidate on the first separator occurrence.
//
// Candidates without the separator, or with an empty side, are parse failures.
func ParseCandidate(candidate string) (artist, title string, err error) {
	artist, title, found := strings.Cut(candidate, candidateSeparator)
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	if !found || artist == "" || title == "" {
		return "", "", fmt.Errorf("%w: %q", shared.ErrInvalidCandidate, candidate)
	}
	return artist, title, nil
}

// Resolver maps song candidates to catalog track identifiers with a two-tier
// search strategy: a structured artist+track query first, then a title-only
// fallback for candidates whose artist attribution doesn't match catalog metadata.
type Resolver struct {
	catalog services.CatalogService
	cache   TrackCacher
}

// NewResolver creates a Resolver backed by the given catalog. cache may be nil.
func NewResolver(catalog services.CatalogService, cache TrackCacher) *Resolver {
	return &Resolver{catalog: catalog, cache: cache}
}

// Resolve maps one candidate to a catalog track.
//
// Returns [shared.ErrInvalidCandidate] for unparseable candidates and
// [shared.ErrTrackNotFound] when both search tiers come up empty; both are
// recorded to out and are non-fatal to the batch. Any other error is a
// catalog failure and aborts the run.
func (r *Resolver) Resolve(ctx context.Context, candidate string, out io.Writer) (*services.Track, error) {
	if out == nil {
		out = io.Discard
	}

	artist, title, err := ParseCandidate(candidate)
	if err != nil {
		fmt.Fprintf(out, "Skipping unparseable candidate: %q\n", candidate)
		return nil, err
	}

	fmt.Fprintf(out, "Searching for: %s - %s\n", artist, title)

	if r.cache != nil {
		if uri, ok := r.cache.Lookup(artist, title); ok {
			fmt.Fprintf(out, "  Found (cached): %s\n", uri)
			return &services.Track{URI: uri, Artist: artist, Title: title}, nil
		}
	}

	tracks, err := r.catalog.SearchTracks(ctx, fmt.Sprintf("artist:%s track:%s", artist, title), 1)
	if err != nil {
		return nil, err
	}

	if len(tracks) == 0 {
		tracks, err = r.catalog.SearchTracks(ctx, fmt.Sprintf("track:%s", title), 1)
		if err != nil {
			return nil, err
		}
	}

	if len(tracks) == 0 {
		fmt.Fprintf(out, "  Not found: %s - %s\n", artist, title)
		return nil, fmt.Errorf("%w: %s - %s", shared.ErrTrackNotFound, artist, title)
	}

	track := tracks[0]
	fmt.Fprintf(out, "  Found: %s\n", track.URI)

	if r.cache != nil {
		// Cached silently; a cache failure must not disrupt resolution.
		_ = r.cache.Store(artist, title, track.URI)
	}

	return &track, nil
}
