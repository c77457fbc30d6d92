package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func newOAuthFixture(t *testing.T) (*OAuthHandler, *httptest.Server) {
	t.Helper()

	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","refresh_token":"ref"}`)
	}))
	t.Cleanup(tokens.Close)

	config := &oauth2.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8888/callback",
		Endpoint:     oauth2.Endpoint{TokenURL: tokens.URL},
	}
	return NewOAuthHandler(config, "expected-state"), tokens
}

func TestOAuthHandler(t *testing.T) {
	t.Run("Successful Exchange", func(t *testing.T) {
		handler, _ := newOAuthFixture(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&code=abc", nil)
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("expected no error, got %v", result.Error())
		}
		if result.Token == nil || result.Token.AccessToken != "tok" {
			t.Errorf("unexpected token %+v", result.Token)
		}
	})

	t.Run("State Mismatch", func(t *testing.T) {
		handler, _ := newOAuthFixture(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/callback?state=forged&code=abc", nil)
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if result := <-handler.Result(); result.Error() == nil {
			t.Error("expected error result")
		}
	})

	t.Run("Denied Authorization", func(t *testing.T) {
		handler, _ := newOAuthFixture(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&error=access_denied", nil)
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if result := <-handler.Result(); result.Error() == nil {
			t.Error("expected error result")
		}
	})

	t.Run("Second Callback Rejected", func(t *testing.T) {
		handler, _ := newOAuthFixture(t)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&code=abc", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&code=abc", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", second.Code, http.StatusBadRequest)
		}
	})
}
