package server

import (
	"crypto/rand"
	"net/http"

	"github.com/gorilla/sessions"

	"mixtape/internal/shared"
)

// sessionName is the cookie holding the caller's credential bundle.
const sessionName = "mixtape_session"

// SessionStore keeps per-browser credential bundles in signed cookies.
//
// The signing key is generated per process, so sessions do not survive a
// restart and callers must re-enter credentials, matching the rest of the
// service's no-persistence posture.
type SessionStore struct {
	cookies *sessions.CookieStore
}

// NewSessionStore creates a cookie-backed session store. An empty secret
// generates a random per-process signing key.
func NewSessionStore(secret []byte) *SessionStore {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		rand.Read(secret)
	}
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{cookies: store}
}

// Credentials reads the caller's credential bundle. Absent or unreadable
// sessions yield a zero bundle.
func (s *SessionStore) Credentials(r *http.Request) shared.Credentials {
	session, err := s.cookies.Get(r, sessionName)
	if err != nil {
		return shared.Credentials{}
	}
	return shared.Credentials{
		ClientID:     sessionString(session, shared.FieldClientID),
		ClientSecret: sessionString(session, shared.FieldClientSecret),
		RedirectURI:  sessionString(session, shared.FieldRedirectURI),
		OpenAIKey:    sessionString(session, shared.FieldOpenAIKey),
	}
}

// SaveCredentials writes the caller's credential bundle into the session cookie.
func (s *SessionStore) SaveCredentials(w http.ResponseWriter, r *http.Request, creds shared.Credentials) error {
	session, _ := s.cookies.Get(r, sessionName)
	session.Values[shared.FieldClientID] = creds.ClientID
	session.Values[shared.FieldClientSecret] = creds.ClientSecret
	session.Values[shared.FieldRedirectURI] = creds.RedirectURI
	session.Values[shared.FieldOpenAIKey] = creds.OpenAIKey
	return session.Save(r, w)
}

// Clear drops the caller's session.
func (s *SessionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.cookies.Get(r, sessionName)
	session.Options.MaxAge = -1
	session.Values = map[any]any{}
	return session.Save(r, w)
}

func sessionString(session *sessions.Session, key string) string {
	if v, ok := session.Values[key].(string); ok {
		return v
	}
	return ""
}
