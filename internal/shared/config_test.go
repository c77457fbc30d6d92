package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Server.Port != 5555 {
		t.Errorf("expected default port 5555, got %d", config.Server.Port)
	}
	if config.Credentials.OpenAI.Model != "gpt-4" {
		t.Errorf("expected default model gpt-4, got %q", config.Credentials.OpenAI.Model)
	}
	if config.Jobs.RetentionMinutes != 60 {
		t.Errorf("expected default retention 60, got %d", config.Jobs.RetentionMinutes)
	}
	if config.Jobs.HistoryLimit != 50 {
		t.Errorf("expected default history limit 50, got %d", config.Jobs.HistoryLimit)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[credentials.spotify]
client_id = "test_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:9999/callback"

[credentials.openai]
api_key = "test_key"
model = "gpt-4"

[server]
host = "0.0.0.0"
port = 8080
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "test_id" {
			t.Errorf("expected client_id test_id, got %q", config.Credentials.Spotify.ClientID)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected port 8080, got %d", config.Server.Port)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Invalid TOML", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	config := DefaultConfig()
	config.Credentials.Spotify.ClientID = "saved_id"
	config.Credentials.Spotify.AccessToken = "saved_token"

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	if loaded.Credentials.Spotify.ClientID != "saved_id" {
		t.Errorf("expected client_id round trip, got %q", loaded.Credentials.Spotify.ClientID)
	}
	if loaded.Credentials.Spotify.AccessToken != "saved_token" {
		t.Errorf("expected access_token round trip, got %q", loaded.Credentials.Spotify.AccessToken)
	}
}

func TestCreateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when file already exists")
	}
}

func TestBundle(t *testing.T) {
	config := DefaultConfig()
	config.Credentials.Spotify.ClientID = "id"
	config.Credentials.Spotify.ClientSecret = "secret"
	config.Credentials.OpenAI.APIKey = "key"

	bundle := config.Bundle()
	if bundle.ClientID != "id" || bundle.ClientSecret != "secret" || bundle.OpenAIKey != "key" {
		t.Errorf("unexpected bundle: %+v", bundle)
	}
	if len(bundle.Missing()) != 0 {
		t.Errorf("expected complete bundle, missing %v", bundle.Missing())
	}
}
