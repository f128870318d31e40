// Package export copies a user's library and playlists into a local SQLite
// database.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/rs/zerolog"
)

// SourceLibrary is the source name of saved library tracks
const SourceLibrary = "library"

// ErrNothingFetched is returned when the client suppressed a failure and
// handed back no result.
var ErrNothingFetched = errors.New("no data returned from Spotify")

// Exporter fetches tracks with a Spotify client and stores them
type Exporter struct {
	client *spotify.Client
	store  *Store
	logger zerolog.Logger
}

// New creates an Exporter
func New(client *spotify.Client, store *Store, logger zerolog.Logger) *Exporter {
	return &Exporter{
		client: client,
		store:  store,
		logger: logger.With().Str("component", "export").Logger(),
	}
}

// PlaylistSource returns the source name of a playlist
func PlaylistSource(playlistID string) string {
	return "playlist:" + playlistID
}

// ExportLibrary stores every saved track of the current user
func (e *Exporter) ExportLibrary(ctx context.Context) (int, error) {
	start := time.Now()

	page, err := e.client.Library().SavedTracks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch saved tracks: %w", err)
	}
	if page == nil {
		return 0, ErrNothingFetched
	}

	records := make([]TrackRecord, 0, len(page.Items))
	for _, item := range page.Items {
		if r, ok := recordFromTrack(SourceLibrary, item.Track, item.AddedAt); ok {
			records = append(records, r)
		}
	}

	return e.save(ctx, SourceLibrary, records, start)
}

// ExportPlaylist stores every track of a playlist. Local files have no id
// and are skipped.
func (e *Exporter) ExportPlaylist(ctx context.Context, userID, playlistID string) (int, error) {
	start := time.Now()

	page, err := e.client.Playlists().Tracks(ctx, userID, playlistID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch playlist tracks: %w", err)
	}
	if page == nil {
		return 0, ErrNothingFetched
	}

	source := PlaylistSource(playlistID)
	records := make([]TrackRecord, 0, len(page.Items))
	for _, item := range page.Items {
		if item.IsLocal {
			continue
		}
		if r, ok := recordFromTrack(source, item.Track, item.AddedAt); ok {
			records = append(records, r)
		}
	}

	return e.save(ctx, source, records, start)
}

func (e *Exporter) save(ctx context.Context, source string, records []TrackRecord, start time.Time) (int, error) {
	stored, err := e.store.ReplaceSource(ctx, source, records)
	if err != nil {
		return 0, err
	}

	e.logger.Info().
		Str("source", source).
		Int("fetched", len(records)).
		Int("stored", stored).
		Dur("elapsed", time.Since(start)).
		Msg("Export complete")

	return stored, nil
}

func recordFromTrack(source string, t spotify.Track, addedAt string) (TrackRecord, bool) {
	if t.ID == "" {
		return TrackRecord{}, false
	}

	r := TrackRecord{
		Source:   source,
		TrackID:  t.ID,
		Name:     t.Name,
		Artist:   artistNames(t.Artists),
		URI:      t.URI,
		Duration: time.Duration(t.DurationMS) * time.Millisecond,
		AddedAt:  addedAt,
	}
	if t.Album != nil {
		r.Album = t.Album.Name
	}
	return r, true
}

func artistNames(artists []spotify.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
