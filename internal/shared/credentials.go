package shared

import "os"

// Credential field names as reported to callers when a bundle is incomplete.
const (
	FieldClientID     = "client_id"
	FieldClientSecret = "client_secret"
	FieldRedirectURI  = "redirect_uri"
	FieldOpenAIKey    = "openai_key"
)

// Credentials is the bundle of secrets a single playlist generation run needs.
//
// The bundle is captured at submission time and travels with the job so that
// concurrent submissions under different credentials stay independent.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	OpenAIKey    string `json:"openai_key"`
}

// Missing returns the names of all absent credential fields, in declaration order.
func (c Credentials) Missing() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, FieldClientID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, FieldClientSecret)
	}
	if c.RedirectURI == "" {
		missing = append(missing, FieldRedirectURI)
	}
	if c.OpenAIKey == "" {
		missing = append(missing, FieldOpenAIKey)
	}
	return missing
}

// SpotifyMap converts the catalog credential fields to the map form the Spotify service consumes.
func (c Credentials) SpotifyMap() map[string]string {
	return map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
		"redirect_uri":  c.RedirectURI,
	}
}

// CredentialsFromEnv reads the credential bundle from process environment variables,
// the source of record for one-shot CLI runs.
func CredentialsFromEnv() Credentials {
	return Credentials{
		ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("SPOTIFY_REDIRECT_URI"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
	}
}

// Merge overlays non-empty fields of other onto a copy of c.
func (c Credentials) Merge(other Credentials) Credentials {
	merged := c
	if other.ClientID != "" {
		merged.ClientID = other.ClientID
	}
	if other.ClientSecret != "" {
		merged.ClientSecret = other.ClientSecret
	}
	if other.RedirectURI != "" {
		merged.RedirectURI = other.RedirectURI
	}
	if other.OpenAIKey != "" {
		merged.OpenAIKey = other.OpenAIKey
	}
	return merged
}
