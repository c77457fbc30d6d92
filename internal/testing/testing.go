// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"mixtape/internal/services"
)

// MockCatalogService is a configurable test double for [services.CatalogService].
//
// SearchResults maps raw queries to matches; every search is appended to
// SearchQueries so tests can assert on the two-tier search order.
type MockCatalogService struct {
	SearchResults map[string][]services.Track
	SearchQueries []string
	SearchErr     error
	User          *services.User
	UserErr       error
	CreatedNames  []string
	CreateErr     error
	Batches       [][]string
	AddErr        error
	Recent        []services.Track
	Top           []services.Track
	HistoryErr    error
	AuthErr       error
	PlaylistURL   string
}

func (m *MockCatalogService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return m.AuthErr
}

func (m *MockCatalogService) CurrentUser(ctx context.Context) (*services.User, error) {
	if m.UserErr != nil {
		return nil, m.UserErr
	}
	if m.User != nil {
		return m.User, nil
	}
	return &services.User{ID: "user1", DisplayName: "Test User"}, nil
}

func (m *MockCatalogService) SearchTracks(ctx context.Context, query string, limit int) ([]services.Track, error) {
	m.SearchQueries = append(m.SearchQueries, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchResults[query], nil
}

func (m *MockCatalogService) CreatePlaylist(ctx context.Context, userID, name string, public bool) (*services.Playlist, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.CreatedNames = append(m.CreatedNames, name)
	url := m.PlaylistURL
	if url == "" {
		url = "https://open.spotify.com/playlist/mock"
	}
	return &services.Playlist{ID: "mock", Name: name, URL: url, Public: public}, nil
}

func (m *MockCatalogService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	batch := make([]string, len(uris))
	copy(batch, uris)
	m.Batches = append(m.Batches, batch)
	return nil
}

func (m *MockCatalogService) RecentlyPlayed(ctx context.Context, limit int) ([]services.Track, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	return m.Recent, nil
}

func (m *MockCatalogService) TopTracks(ctx context.Context, limit int, timeRange string) ([]services.Track, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	return m.Top, nil
}

func (m *MockCatalogService) Name() string { return "mock" }

// WithSearchHit registers a structured artist+track query resolving to uri.
func (m *MockCatalogService) WithSearchHit(artist, title, uri string) *MockCatalogService {
	if m.SearchResults == nil {
		m.SearchResults = map[string][]services.Track{}
	}
	query := fmt.Sprintf("artist:%s track:%s", artist, title)
	m.SearchResults[query] = []services.Track{{URI: uri, Artist: artist, Title: title}}
	return m
}

// MockTextService is a test double for [services.TextService].
type MockTextService struct {
	Completion string
	Err        error
	GotSystem  string
	GotUser    string
}

func (m *MockTextService) Complete(ctx context.Context, system, user string) (string, error) {
	m.GotSystem = system
	m.GotUser = user
	if m.Err != nil {
		return "", m.Err
	}
	return m.Completion, nil
}

func (m *MockTextService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
