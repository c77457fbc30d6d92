package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"mixtape/internal/shared"
)

func testURIs(n int) []string {
	uris := make([]string, n)
	for i := range uris {
		uris[i] = fmt.Sprintf("spotify:track:%d", i)
	}
	return uris
}

func TestAssembler_Assemble(t *testing.T) {
	t.Run("Batches Of One Hundred", func(t *testing.T) {
		catalog := &mockCatalog{}
		assembler := NewAssembler(catalog)

		url, err := assembler.Assemble(context.Background(), testURIs(250), "Run Mix", "", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if url == "" {
			t.Error("expected playlist URL")
		}

		if len(catalog.batches) != 3 {
			t.Fatalf("expected 3 batches, got %d", len(catalog.batches))
		}
		for i, want := range []int{100, 100, 50} {
			if len(catalog.batches[i]) != want {
				t.Errorf("batch %d has %d uris, want %d", i, len(catalog.batches[i]), want)
			}
		}
		if catalog.batches[0][0] != "spotify:track:0" ||
			catalog.batches[1][0] != "spotify:track:100" ||
			catalog.batches[2][49] != "spotify:track:249" {
			t.Error("batches not in original order")
		}
	})

	t.Run("Explicit Name Wins", func(t *testing.T) {
		catalog := &mockCatalog{}
		assembler := NewAssembler(catalog)

		if _, err := assembler.Assemble(context.Background(), testURIs(1), "Road Trip", "Daft Punk", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(catalog.createdNames) != 1 || catalog.createdNames[0] != "Road Trip" {
			t.Errorf("unexpected names %v", catalog.createdNames)
		}
	})

	t.Run("Default Name From First Artist", func(t *testing.T) {
		catalog := &mockCatalog{}
		assembler := NewAssembler(catalog)

		if _, err := assembler.Assemble(context.Background(), testURIs(1), "", "Daft Punk", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.createdNames[0] != "AI Generated Playlist - Daft Punk" {
			t.Errorf("unexpected name %q", catalog.createdNames[0])
		}
	})

	t.Run("Default Name Without Artist", func(t *testing.T) {
		catalog := &mockCatalog{}
		assembler := NewAssembler(catalog)

		if _, err := assembler.Assemble(context.Background(), nil, "", "", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.createdNames[0] != "AI Generated Playlist" {
			t.Errorf("unexpected name %q", catalog.createdNames[0])
		}
	})

	t.Run("Empty Playlist Succeeds", func(t *testing.T) {
		catalog := &mockCatalog{}
		assembler := NewAssembler(catalog)

		var out bytes.Buffer
		url, err := assembler.Assemble(context.Background(), nil, "Empty", "", &out)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if url == "" {
			t.Error("expected playlist URL")
		}
		if len(catalog.batches) != 0 {
			t.Errorf("expected no add calls, got %v", catalog.batches)
		}
		if !strings.Contains(out.String(), "No tracks found to add to playlist.") {
			t.Errorf("expected notice, got %q", out.String())
		}
	})

	t.Run("Create Failure", func(t *testing.T) {
		catalog := &mockCatalog{createErr: fmt.Errorf("403 forbidden")}
		assembler := NewAssembler(catalog)

		_, err := assembler.Assemble(context.Background(), testURIs(1), "n", "", nil)
		if !errors.Is(err, shared.ErrPlaylistCreate) {
			t.Errorf("expected ErrPlaylistCreate, got %v", err)
		}
	})

	t.Run("Add Failure Is Fatal", func(t *testing.T) {
		catalog := &mockCatalog{addErr: fmt.Errorf("429 too many requests")}
		assembler := NewAssembler(catalog)

		if _, err := assembler.Assemble(context.Background(), testURIs(5), "n", "", nil); err == nil {
			t.Error("expected error")
		}
	})
}
