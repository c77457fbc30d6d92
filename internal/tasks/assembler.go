package tasks

import (
	"context"
	"fmt"
	"io"

	"mixtape/internal/services"
	"mixtape/internal/shared"
)

// AddBatchSize is the catalog API's maximum track additions per call.
const AddBatchSize = 100

// defaultNamePrefix seeds the playlist name when the caller supplies none.
const defaultNamePrefix = "AI Generated Playlist"

// Assembler creates one private catalog playlist per invocation and populates
// it with resolved track identifiers in fixed-size sequential batches.
type Assembler struct {
	catalog services.CatalogService
}

// NewAssembler creates an Assembler backed by the given catalog.
func NewAssembler(catalog services.CatalogService) *Assembler {
	return &Assembler{catalog: catalog}
}

// Assemble creates the playlist and appends uris in original order.
//
// When name is empty the playlist is named "AI Generated Playlist - <firstArtist>".
// Zero resolved tracks still produce an (empty) playlist; a batch failure is
// fatal and propagates. Returns the playlist's public URL.
func (a *Assembler) Assemble(ctx context.Context, uris []string, name, firstArtist string, out io.Writer) (string, error) {
	if out == nil {
		out = io.Discard
	}

	if name == "" {
		name = defaultNamePrefix
		if firstArtist != "" {
			name = fmt.Sprintf("%s - %s", defaultNamePrefix, firstArtist)
		}
	}

	fmt.Fprintln(out, "Creating Spotify playlist...")

	user, err := a.catalog.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: current user: %v", shared.ErrPlaylistCreate, err)
	}

	playlist, err := a.catalog.CreatePlaylist(ctx, user.ID, name, false)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrPlaylistCreate, err)
	}
	fmt.Fprintf(out, "Created playlist: %s\n", name)

	if len(uris) == 0 {
		fmt.Fprintln(out, "No tracks found to add to playlist.")
		return playlist.URL, nil
	}

	fmt.Fprintf(out, "Adding %d tracks to playlist...\n", len(uris))
	for start := 0; start < len(uris); start += AddBatchSize {
		end := min(start+AddBatchSize, len(uris))
		if err := a.catalog.AddTracks(ctx, playlist.ID, uris[start:end]); err != nil {
			return "", fmt.Errorf("%w: batch at offset %d: %v", shared.ErrPlaylistCreate, start, err)
		}
	}

	return playlist.URL, nil
}
