package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// executeCommand runs the root command in-process against server with a
// fresh HOME, returning everything written to stdout.
func executeCommand(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPOTCTL_SPOTIFY_ACCESS_TOKEN", "test-token")
	t.Setenv("SPOTCTL_SPOTIFY_BASE_URL", server.URL)

	// Flag variables outlive a single Execute
	raiseErrors, jsonOutput, formatFlag = false, false, ""
	searchType, playlistOwner, playlistPosition = "track", "me", -1

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestMeCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("unexpected Authorization %q", r.Header.Get("Authorization"))
		}
		fmt.Fprint(w, `{"id":"jane","display_name":"Jane Doe","country":"SE","followers":{"total":7}}`)
	}))
	defer server.Close()

	out, err := executeCommand(t, server, "me")
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	for _, want := range []string{"jane", "Jane Doe", "SE", "Followers: 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCommandFailSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"status":403,"message":"Insufficient client scope"}}`)
	}))
	defer server.Close()

	_, err := executeCommand(t, server, "library", "save", "t1")
	if !errors.Is(err, errNoResult) {
		t.Errorf("expected errNoResult without --raise-errors, got %v", err)
	}

	_, err = executeCommand(t, server, "library", "save", "t1", "--raise-errors")
	if err == nil || !strings.Contains(err.Error(), "Insufficient client scope") {
		t.Errorf("expected the API error with --raise-errors, got %v", err)
	}
}

func TestSearchCommand_UnsupportedType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	}))
	defer server.Close()

	_, err := executeCommand(t, server, "search", "daft punk", "--type", "song")
	if err == nil || !strings.Contains(err.Error(), "unsupported search type") {
		t.Errorf("expected an unsupported type error, got %v", err)
	}
}

func TestPlaylistAddCommand(t *testing.T) {
	var added string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/me":
			fmt.Fprint(w, `{"id":"jane"}`)
		case "/v1/users/jane/playlists/pl1/tracks":
			added = r.URL.Query().Get("uris")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"snapshot_id":"snap"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	out, err := executeCommand(t, server, "playlist", "add", "pl1", "abc", "spotify:track:def")
	if err != nil {
		t.Fatalf("playlist add failed: %v", err)
	}
	if added != "spotify:track:abc,spotify:track:def" {
		t.Errorf("unexpected uris %q", added)
	}
	if !strings.Contains(out, "snapshot snap") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
