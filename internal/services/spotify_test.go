package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mixtape/internal/shared"

	"golang.org/x/oauth2"
)

func newTestService(t *testing.T, handler http.Handler) (*SpotifyService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	srv, err := NewSpotifyService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
		"redirect_uri":  "http://localhost:8888/callback",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	srv.baseURL = server.URL
	srv.token = &oauth2.Token{AccessToken: "test_token"}
	srv.httpClient = server.Client()

	return srv, server
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
				"redirect_uri":  "http://localhost:8888/callback",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_secret": "s"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_id": "c"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Default Redirect URI", func(t *testing.T) {
			srv, err := NewSpotifyService(map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(srv.config.RedirectURL, "localhost:8888") {
				t.Errorf("expected default redirect URI, got %s", srv.config.RedirectURL)
			}
		})
	})

	t.Run("Get AuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.GetAuthURL("test_state")
		for _, want := range []string{"accounts.spotify.com", "test_client_id", "test_state", "playlist-modify-private"} {
			if !strings.Contains(authURL, want) {
				t.Errorf("auth URL missing %q: %s", want, authURL)
			}
		}
	})

	t.Run("Not Authenticated", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = srv.CurrentUser(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Authenticate With Access Token", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "tok"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if srv.token == nil || srv.token.AccessToken != "tok" {
			t.Error("expected token to be stored")
		}
	})

	t.Run("Authenticate Without Token Or Code", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		if err := srv.Authenticate(context.Background(), map[string]string{}); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})
}

func TestSpotifyService_CurrentUser(t *testing.T) {
	srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test_token" {
			t.Errorf("unexpected auth header %q", got)
		}
		json.NewEncoder(w).Encode(SpotifyUser{ID: "user123", DisplayName: "Test User"})
	}))

	user, err := srv.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "user123" {
		t.Errorf("expected user123, got %s", user.ID)
	}
}

func TestSpotifyService_SearchTracks(t *testing.T) {
	var gotQuery string
	srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("type") != "track" {
			t.Errorf("expected type=track, got %s", r.URL.Query().Get("type"))
		}
		resp := searchResponse{}
		resp.Tracks.Items = []SpotifyTrack{
			{
				ID:      "track1",
				Name:    "One More Time",
				URI:     "spotify:track:track1",
				Artists: []SpotifyArtist{{Name: "Daft Punk"}},
				Album:   SpotifyAlbum{Name: "Discovery"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	tracks, err := srv.SearchTracks(context.Background(), "artist:Daft Punk track:One More Time", 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotQuery != "artist:Daft Punk track:One More Time" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
	if tracks[0].URI != "spotify:track:track1" || tracks[0].Artist != "Daft Punk" {
		t.Errorf("unexpected track %+v", tracks[0])
	}
}

func TestSpotifyService_CreatePlaylist(t *testing.T) {
	srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/users/user123/playlists" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["public"] != false {
			t.Error("expected playlist to be private")
		}

		playlist := SpotifyPlaylist{ID: "pl1", Name: body["name"].(string)}
		playlist.ExternalURLs.Spotify = "https://open.spotify.com/playlist/pl1"
		json.NewEncoder(w).Encode(playlist)
	}))

	playlist, err := srv.CreatePlaylist(context.Background(), "user123", "AI Generated Playlist - Daft Punk", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if playlist.URL != "https://open.spotify.com/playlist/pl1" {
		t.Errorf("unexpected URL %q", playlist.URL)
	}
}

func TestSpotifyService_AddTracks(t *testing.T) {
	t.Run("Sends URIs In Order", func(t *testing.T) {
		var gotURIs []string
		srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				URIs []string `json:"uris"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			gotURIs = body.URIs
			w.WriteHeader(http.StatusCreated)
		}))

		uris := []string{"spotify:track:a", "spotify:track:b"}
		if err := srv.AddTracks(context.Background(), "pl1", uris); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(gotURIs) != 2 || gotURIs[0] != "spotify:track:a" {
			t.Errorf("unexpected uris %v", gotURIs)
		}
	})

	t.Run("Rejects Oversized Batch", func(t *testing.T) {
		srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		uris := make([]string, 101)
		for i := range uris {
			uris[i] = fmt.Sprintf("spotify:track:%d", i)
		}
		if err := srv.AddTracks(context.Background(), "pl1", uris); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Empty Batch Is NoOp", func(t *testing.T) {
		srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		if err := srv.AddTracks(context.Background(), "pl1", nil); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestSpotifyService_ListeningHistory(t *testing.T) {
	srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me/player/recently-played":
			if r.URL.Query().Get("limit") != "10" {
				t.Errorf("unexpected limit %s", r.URL.Query().Get("limit"))
			}
			var resp recentlyPlayedResponse
			resp.Items = []struct {
				PlayedAt string       `json:"played_at"`
				Track    SpotifyTrack `json:"track"`
			}{
				{Track: SpotifyTrack{Name: "Around the World", Artists: []SpotifyArtist{{Name: "Daft Punk"}}}},
			}
			json.NewEncoder(w).Encode(resp)
		case "/me/top/tracks":
			if r.URL.Query().Get("time_range") != "medium_term" {
				t.Errorf("unexpected time_range %s", r.URL.Query().Get("time_range"))
			}
			json.NewEncoder(w).Encode(topTracksResponse{Items: []SpotifyTrack{
				{Name: "Harder Better Faster Stronger", Artists: []SpotifyArtist{{Name: "Daft Punk"}}},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	recent, err := srv.RecentlyPlayed(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(recent) != 1 || recent[0].Title != "Around the World" {
		t.Errorf("unexpected recent tracks %v", recent)
	}

	top, err := srv.TopTracks(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(top) != 1 || top[0].Artist != "Daft Punk" {
		t.Errorf("unexpected top tracks %v", top)
	}
}

func TestSpotifyService_ErrorStatus(t *testing.T) {
	t.Run("Expired Token", func(t *testing.T) {
		srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := srv.CurrentUser(context.Background())
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("Server Error", func(t *testing.T) {
		srv, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := srv.SearchTracks(context.Background(), "track:anything", 1)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
