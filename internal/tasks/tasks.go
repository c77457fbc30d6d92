// package tasks implements the prompt-to-playlist generation pipeline.
//
// The core abstraction is Engine, which orchestrates one generation run:
// credential validation, catalog authentication, text generation, track
// resolution, and playlist assembly. All diagnostic text is written to a
// caller-supplied io.Writer so each job owns its own output sink.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mixtape/internal/services"
	"mixtape/internal/shared"

	"github.com/charmbracelet/log"
)

// systemInstruction fixes the output contract for the text model.
const systemInstruction = "You are a music expert. Generate a playlist based on the given prompt " +
	"and, when provided, the user's music context. Return only the list of songs in the format " +
	"'Artist - Song Title', one per line. Do not include numbering or any additional information."

// Request describes one playlist generation run.
//
// The credential bundle is captured at submission time and never read from
// ambient state during execution, keeping concurrent submissions independent.
type Request struct {
	Prompt      string
	Length      int
	Name        string
	History     int // Listening-history sample size; 0 disables context fetching
	Credentials shared.Credentials
}

// CatalogFactory authenticates against the catalog with the given bundle and
// returns a session handle. An error means authentication failed.
type CatalogFactory func(ctx context.Context, creds shared.Credentials) (services.CatalogService, error)

// TextFactory builds a text-generation client from the given bundle.
type TextFactory func(creds shared.Credentials) (services.TextService, error)

// TrackCacher persists resolved tracks so repeat candidates skip the search tiers.
//
// Lookups and stores are best-effort; failures never disrupt a run.
type TrackCacher interface {
	Lookup(artist, title string) (uri string, ok bool)
	Store(artist, title, uri string) error
}

// Engine runs the playlist generation pipeline.
type Engine struct {
	newCatalog CatalogFactory
	newText    TextFactory
	cache      TrackCacher
	logger     *log.Logger
}

// NewEngine creates an Engine with the provided factories.
//
// cache may be nil to disable resolved-track caching.
func NewEngine(newCatalog CatalogFactory, newText TextFactory, cache TrackCacher, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		newCatalog: newCatalog,
		newText:    newText,
		cache:      cache,
		logger:     logger,
	}
}

// Run executes one generation request and returns a human-readable summary.
//
// Missing credentials produce a descriptive result string with a nil error;
// all other failures return an error and leave the result empty. Diagnostic
// output is written to out as the run progresses.
func (e *Engine) Run(ctx context.Context, req Request, out io.Writer) (string, error) {
	if out == nil {
		out = io.Discard
	}

	if missing := req.Credentials.Missing(); len(missing) > 0 {
		e.logger.Warn("incomplete credential bundle", "missing", missing)
		return fmt.Sprintf("Missing required credentials: %s", strings.Join(missing, ", ")), nil
	}

	fmt.Fprintln(out, "Authenticating with Spotify...")
	catalog, err := e.newCatalog(ctx, req.Credentials)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	fmt.Fprintln(out, "Successfully authenticated with Spotify.")

	text, err := e.newText(req.Credentials)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrGenerationFailed, err)
	}

	var musicContext string
	if req.History > 0 {
		fmt.Fprintf(out, "Fetching listening context (%d tracks)...\n", req.History)
		musicContext, err = MusicContext(ctx, catalog, req.History)
		if err != nil {
			return "", err
		}
	}

	fmt.Fprintln(out, "Generating playlist with OpenAI...")
	raw, err := text.Complete(ctx, systemInstruction, userInstruction(req, musicContext))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrGenerationFailed, err)
	}

	candidates := SplitCandidates(raw)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: model returned no candidates", shared.ErrGenerationFailed)
	}
	fmt.Fprintf(out, "Generated %d songs\n", len(candidates))
	e.logger.Info("generated song candidates", "count", len(candidates))

	resolver := NewResolver(catalog, e.cache)

	var uris []string
	firstArtist := ""
	for _, candidate := range candidates {
		track, err := resolver.Resolve(ctx, candidate, out)
		if err != nil {
			if errors.Is(err, shared.ErrInvalidCandidate) || errors.Is(err, shared.ErrTrackNotFound) {
				// Resolution misses shrink the playlist but never abort the run.
				continue
			}
			return "", err
		}

		if firstArtist == "" {
			firstArtist = track.Artist
		}
		uris = append(uris, track.URI)
	}

	if firstArtist == "" {
		// Naming fallback when nothing resolved: use the first parseable candidate.
		for _, candidate := range candidates {
			if artist, _, err := ParseCandidate(candidate); err == nil {
				firstArtist = artist
				break
			}
		}
	}

	assembler := NewAssembler(catalog)
	playlistURL, err := assembler.Assemble(ctx, uris, req.Name, firstArtist, out)
	if err != nil {
		return "", err
	}

	e.logger.Info("playlist created", "url", playlistURL, "tracks", len(uris))
	return fmt.Sprintf("Playlist created: %s", playlistURL), nil
}

// SplitCandidates splits the raw completion text into trimmed, non-empty candidate lines.
func SplitCandidates(raw string) []string {
	var candidates []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			candidates = append(candidates, line)
		}
	}
	return candidates
}

// userInstruction embeds the prompt, optional listening context, and requested count.
func userInstruction(req Request, musicContext string) string {
	if musicContext != "" {
		return fmt.Sprintf(
			"Here's the user's music context:\n\n%s\n\nBased on this context and the following prompt: '%s', generate a playlist of %d songs.",
			musicContext, req.Prompt, req.Length,
		)
	}
	return fmt.Sprintf(
		"Based on the following prompt: '%s', generate a playlist of %d songs.",
		req.Prompt, req.Length,
	)
}
