package spotify

import (
	"context"
	"net/http"
	"testing"
)

func TestSearch(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "daft punk" || q.Get("type") != "artist" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		writeJSON(t, w, 200, `{"artists":{"items":[{"id":"ar1","name":"Daft Punk"}],"total":1}}`)
	})

	res, err := client.Search(context.Background(), "daft punk", SearchArtist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Artists == nil || len(res.Artists.Items) != 1 {
		t.Fatalf("expected one artist, got %+v", res.Artists)
	}
	if res.Albums != nil || res.Tracks != nil {
		t.Error("expected only the artists page to be set")
	}
}

func TestSearch_UnsupportedType(t *testing.T) {
	for _, raise := range []bool{true, false} {
		transport := &fakeTransport{}
		client := NewClient(Config{RaiseErrors: raise, Transport: transport})

		res, err := client.Search(context.Background(), "anything", SearchType("song"))
		assertKind(t, err, KindImplementation)
		if res != nil {
			t.Errorf("expected nil result, got %+v", res)
		}
		if len(transport.requests) != 0 {
			t.Errorf("raise=%v: expected no request, got %d", raise, len(transport.requests))
		}
	}
}

func TestSearchType_Valid(t *testing.T) {
	tests := []struct {
		kind SearchType
		want bool
	}{
		{SearchArtist, true},
		{SearchAlbum, true},
		{SearchTrack, true},
		{"playlist", false},
		{"", false},
		{"Track", false},
	}

	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.want {
			t.Errorf("SearchType(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
