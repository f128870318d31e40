package spotify

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// PlaylistsService provides playlist operations.
type PlaylistsService struct {
	client *Client
}

// List returns the first page of a user's playlists.
func (s *PlaylistsService) List(ctx context.Context, userID string) (*Paging[Playlist], error) {
	if userID == "" {
		return nil, invalidArgument("user id is required")
	}
	return fetch[Paging[Playlist]](ctx, s.client, epUserPlaylists.request(userID))
}

// Get returns a playlist, including the first page of its tracks.
func (s *PlaylistsService) Get(ctx context.Context, userID, playlistID string) (*Playlist, error) {
	if err := requirePlaylist(userID, playlistID); err != nil {
		return nil, err
	}
	return fetch[Playlist](ctx, s.client, epPlaylist.request(userID, playlistID))
}

// Tracks returns every track of a playlist, following pagination until the
// last page. params are passed through to the first request, for example
// "fields" or "market"; nil is fine.
func (s *PlaylistsService) Tracks(ctx context.Context, userID, playlistID string, params url.Values) (*Paging[PlaylistTrack], error) {
	if err := requirePlaylist(userID, playlistID); err != nil {
		return nil, err
	}
	path := epPlaylistTracks.request(userID, playlistID).path
	return collect[PlaylistTrack](ctx, s.client, path, params)
}

// Create creates a playlist owned by userID.
//
// Example:
//
//	pl, err := client.Playlists().Create(ctx, me.ID, "Road trip", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Created", pl.ID)
func (s *PlaylistsService) Create(ctx context.Context, userID, name string, public bool) (*Playlist, error) {
	if userID == "" {
		return nil, invalidArgument("user id is required")
	}
	if name == "" {
		return nil, invalidArgument("playlist name is required")
	}

	req := epCreatePlaylist.request(userID).withJSON(map[string]interface{}{
		"name":   name,
		"public": public,
	})
	return fetch[Playlist](ctx, s.client, req)
}

// AddTracks appends tracks to a playlist. Only the first MaxIDs URIs are
// sent.
func (s *PlaylistsService) AddTracks(ctx context.Context, userID, playlistID string, uris []string) (*Snapshot, error) {
	return s.addTracks(ctx, userID, playlistID, uris, -1)
}

// AddTracksAt inserts tracks at a zero-based position in a playlist. Only
// the first MaxIDs URIs are sent.
func (s *PlaylistsService) AddTracksAt(ctx context.Context, userID, playlistID string, uris []string, position int) (*Snapshot, error) {
	if position < 0 {
		return nil, invalidArgument("position must not be negative, got %d", position)
	}
	return s.addTracks(ctx, userID, playlistID, uris, position)
}

func (s *PlaylistsService) addTracks(ctx context.Context, userID, playlistID string, uris []string, position int) (*Snapshot, error) {
	if err := requirePlaylist(userID, playlistID); err != nil {
		return nil, err
	}
	if len(uris) == 0 {
		return nil, invalidArgument("at least one track uri is required")
	}

	query := url.Values{"uris": {strings.Join(truncate(uris), ",")}}
	if position >= 0 {
		query.Set("position", strconv.Itoa(position))
	}

	req := epAddPlaylistTracks.request(userID, playlistID).withQuery(query)
	return fetch[Snapshot](ctx, s.client, req)
}

// RemoveTracks removes every occurrence of the given track URIs from a
// playlist.
func (s *PlaylistsService) RemoveTracks(ctx context.Context, userID, playlistID string, uris []string) (*Snapshot, error) {
	if err := requirePlaylist(userID, playlistID); err != nil {
		return nil, err
	}
	if len(uris) == 0 {
		return nil, invalidArgument("at least one track uri is required")
	}

	type trackRef struct {
		URI string `json:"uri"`
	}
	tracks := make([]trackRef, len(uris))
	for i, uri := range uris {
		tracks[i] = trackRef{URI: uri}
	}

	req := epRemovePlaylistTracks.request(userID, playlistID).withJSON(map[string]interface{}{
		"tracks": tracks,
	})
	return fetch[Snapshot](ctx, s.client, req)
}

// ReplaceTracks replaces the whole content of a playlist with uris. An empty
// list clears the playlist.
func (s *PlaylistsService) ReplaceTracks(ctx context.Context, userID, playlistID string, uris []string) (bool, error) {
	if err := requirePlaylist(userID, playlistID); err != nil {
		return false, err
	}
	if uris == nil {
		uris = []string{}
	}

	req := epReplacePlaylist.request(userID, playlistID).withJSON(map[string]interface{}{
		"uris": uris,
	})
	return perform(ctx, s.client, req)
}

// Truncate removes every track from a playlist.
func (s *PlaylistsService) Truncate(ctx context.Context, userID, playlistID string) (bool, error) {
	return s.ReplaceTracks(ctx, userID, playlistID, nil)
}

func requirePlaylist(userID, playlistID string) error {
	if userID == "" {
		return invalidArgument("user id is required")
	}
	if playlistID == "" {
		return invalidArgument("playlist id is required")
	}
	return nil
}
