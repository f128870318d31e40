package spotify

import (
	"context"
	"net/url"
	"strings"
)

// AlbumsService provides album operations.
type AlbumsService struct {
	client *Client
}

type albumList struct {
	Albums []Album `json:"albums"`
}

// Get returns an album.
func (s *AlbumsService) Get(ctx context.Context, albumID string) (*Album, error) {
	if albumID == "" {
		return nil, invalidArgument("album id is required")
	}
	return fetch[Album](ctx, s.client, epAlbum.request(albumID))
}

// Tracks returns the first page of an album's tracks.
func (s *AlbumsService) Tracks(ctx context.Context, albumID string) (*Paging[Track], error) {
	if albumID == "" {
		return nil, invalidArgument("album id is required")
	}
	return fetch[Paging[Track]](ctx, s.client, epAlbumTracks.request(albumID))
}

// GetSeveral returns several albums in one request, in the order of ids.
func (s *AlbumsService) GetSeveral(ctx context.Context, ids []string) ([]Album, error) {
	if len(ids) == 0 {
		return nil, invalidArgument("at least one album id is required")
	}

	req := epAlbums.request().withQuery(url.Values{"ids": {strings.Join(ids, ",")}})
	resp, err := fetch[albumList](ctx, s.client, req)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.Albums, nil
}
