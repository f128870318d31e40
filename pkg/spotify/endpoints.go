package spotify

import (
	"fmt"
	"net/http"
	"net/url"
)

// endpoint declares one resource operation: its verb, path template and the
// statuses it treats as success. Path arguments are substituted escaped.
type endpoint struct {
	method string
	path   string
	expect []int
}

var (
	statusOK      = []int{http.StatusOK}
	statusCreated = []int{http.StatusCreated}
)

var (
	epCurrentUser    = endpoint{http.MethodGet, "/v1/me", statusOK}
	epSavedTracks    = endpoint{http.MethodGet, "/v1/me/tracks", statusOK}
	epContainsTracks = endpoint{http.MethodGet, "/v1/me/tracks/contains", statusOK}
	epSaveTracks     = endpoint{http.MethodPost, "/v1/me/tracks", statusOK}
	epRemoveTracks   = endpoint{http.MethodDelete, "/v1/me/tracks", statusOK}

	epUser                 = endpoint{http.MethodGet, "/v1/users/%s", statusOK}
	epUserPlaylists        = endpoint{http.MethodGet, "/v1/users/%s/playlists", statusOK}
	epPlaylist             = endpoint{http.MethodGet, "/v1/users/%s/playlists/%s", statusOK}
	epPlaylistTracks       = endpoint{http.MethodGet, "/v1/users/%s/playlists/%s/tracks", statusOK}
	epCreatePlaylist       = endpoint{http.MethodPost, "/v1/users/%s/playlists", statusCreated}
	epAddPlaylistTracks    = endpoint{http.MethodPost, "/v1/users/%s/playlists/%s/tracks", statusCreated}
	epRemovePlaylistTracks = endpoint{http.MethodDelete, "/v1/users/%s/playlists/%s/tracks", statusOK}
	epReplacePlaylist      = endpoint{http.MethodPut, "/v1/users/%s/playlists/%s/tracks", statusCreated}

	epAlbum       = endpoint{http.MethodGet, "/v1/albums/%s", statusOK}
	epAlbumTracks = endpoint{http.MethodGet, "/v1/albums/%s/tracks", statusOK}
	epAlbums      = endpoint{http.MethodGet, "/v1/albums", statusOK}

	epTrack  = endpoint{http.MethodGet, "/v1/tracks/%s", statusOK}
	epTracks = endpoint{http.MethodGet, "/v1/tracks", statusOK}

	epArtist          = endpoint{http.MethodGet, "/v1/artists/%s", statusOK}
	epArtists         = endpoint{http.MethodGet, "/v1/artists", statusOK}
	epArtistAlbums    = endpoint{http.MethodGet, "/v1/artists/%s/albums", statusOK}
	epArtistTopTracks = endpoint{http.MethodGet, "/v1/artists/%s/top-tracks", statusOK}
	epRelatedArtists  = endpoint{http.MethodGet, "/v1/artists/%s/related-artists", statusOK}

	epSearch = endpoint{http.MethodGet, "/v1/search", statusOK}
)

// request builds a fresh request for the endpoint. Everything but POST may be
// retried by the transport.
func (ep endpoint) request(args ...string) *request {
	path := ep.path
	if len(args) > 0 {
		escaped := make([]interface{}, len(args))
		for i, a := range args {
			escaped[i] = url.PathEscape(a)
		}
		path = fmt.Sprintf(ep.path, escaped...)
	}
	return &request{
		method:     ep.method,
		path:       path,
		expect:     ep.expect,
		idempotent: ep.method != http.MethodPost,
	}
}
