package export

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/rs/zerolog"
)

func newTestExporter(t *testing.T, handler http.HandlerFunc, raise bool) (*Exporter, *Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := spotify.NewClient(spotify.Config{
		AccessToken: "token",
		RaiseErrors: raise,
		BaseURL:     server.URL,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := createTestStore(t)
	return New(client, store, zerolog.Nop()), store
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestExportLibrary(t *testing.T) {
	exporter, store := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/me/tracks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("offset") == "" {
			writeBody(w, 200, `{"items":[{"added_at":"2024-01-01T00:00:00Z","track":{"id":"t1","name":"One","duration_ms":200000,
				"artists":[{"name":"A"},{"name":"B"}],"album":{"name":"Album"}}}],
				"next":"http://`+r.Host+`/v1/me/tracks?offset=1"}`)
			return
		}
		writeBody(w, 200, `{"items":[{"track":{"id":"t2","name":"Two","artists":[{"name":"C"}]}}],"next":null}`)
	}, true)

	stored, err := exporter.ExportLibrary(context.Background())
	if err != nil {
		t.Fatalf("ExportLibrary() error = %v", err)
	}
	if stored != 2 {
		t.Errorf("stored = %d, want 2", stored)
	}

	records, err := store.List(context.Background(), SourceLibrary, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Artist != "A, B" || records[0].Album != "Album" || records[0].AddedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("unexpected first record %+v", records[0])
	}
	if records[1].Album != "" {
		t.Errorf("expected empty album, got %q", records[1].Album)
	}
}

func TestExportPlaylist_SkipsLocalFiles(t *testing.T) {
	exporter, store := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users/jane/playlists/pl1/tracks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeBody(w, 200, `{"items":[
			{"track":{"id":"t1","name":"One","artists":[{"name":"A"}]}},
			{"is_local":true,"track":{"name":"Home recording"}},
			{"track":{"id":"","name":"Unavailable"}}
		],"next":null}`)
	}, true)

	stored, err := exporter.ExportPlaylist(context.Background(), "jane", "pl1")
	if err != nil {
		t.Fatalf("ExportPlaylist() error = %v", err)
	}
	if stored != 1 {
		t.Errorf("stored = %d, want 1", stored)
	}

	count, _ := store.Count(context.Background(), PlaylistSource("pl1"))
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestExport_Failures(t *testing.T) {
	failing := func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, 401, `{"error":{"status":401,"message":"The access token expired"}}`)
	}

	t.Run("raise errors", func(t *testing.T) {
		exporter, _ := newTestExporter(t, failing, true)

		_, err := exporter.ExportLibrary(context.Background())
		if !errors.Is(err, spotify.ErrAuthentication) {
			t.Errorf("expected authentication error, got %v", err)
		}
	})

	t.Run("fail soft", func(t *testing.T) {
		exporter, store := newTestExporter(t, failing, false)

		_, err := exporter.ExportLibrary(context.Background())
		if !errors.Is(err, ErrNothingFetched) {
			t.Errorf("expected ErrNothingFetched, got %v", err)
		}
		if count, _ := store.Count(context.Background(), ""); count != 0 {
			t.Errorf("expected nothing stored, got %d", count)
		}
	})
}
