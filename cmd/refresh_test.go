package cmd

import (
	"testing"
	"time"

	"github.com/jfmyers9/spotctl/internal/config"
)

func TestRefreshConfig(t *testing.T) {
	cfg := &config.Config{
		Spotify: config.SpotifyConfig{
			ClientID:     "client",
			ClientSecret: "secret",
			RefreshToken: "refresh",
			AccountsURL:  "http://accounts.test",
		},
		HTTP: config.HTTPConfig{
			Retries:      3,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 7 * time.Second,
		},
	}

	got := refreshConfig(cfg)

	if got.ClientID != "client" || got.ClientSecret != "secret" || got.RefreshToken != "refresh" {
		t.Errorf("credentials not forwarded: %+v", got)
	}
	if got.AccountsURL != "http://accounts.test" {
		t.Errorf("AccountsURL = %q", got.AccountsURL)
	}
	if got.Retries != 3 {
		t.Errorf("Retries = %d, want 3", got.Retries)
	}
	if got.ReadTimeout != 5*time.Second || got.WriteTimeout != 7*time.Second {
		t.Errorf("timeouts = %v/%v, want 5s/7s", got.ReadTimeout, got.WriteTimeout)
	}
	if got.Logger == nil {
		t.Error("expected a logger")
	}
}
