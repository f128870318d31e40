package spotify

import (
	"context"
	"net/url"
	"strings"
)

// ArtistsService provides artist operations.
type ArtistsService struct {
	client *Client
}

type artistList struct {
	Artists []Artist `json:"artists"`
}

// Get returns an artist.
func (s *ArtistsService) Get(ctx context.Context, artistID string) (*Artist, error) {
	if artistID == "" {
		return nil, invalidArgument("artist id is required")
	}
	return fetch[Artist](ctx, s.client, epArtist.request(artistID))
}

// GetSeveral returns several artists in one request, in the order of ids.
func (s *ArtistsService) GetSeveral(ctx context.Context, ids []string) ([]Artist, error) {
	if len(ids) == 0 {
		return nil, invalidArgument("at least one artist id is required")
	}

	req := epArtists.request().withQuery(url.Values{"ids": {strings.Join(ids, ",")}})
	resp, err := fetch[artistList](ctx, s.client, req)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.Artists, nil
}

// Albums returns the first page of an artist's albums.
func (s *ArtistsService) Albums(ctx context.Context, artistID string) (*Paging[Album], error) {
	if artistID == "" {
		return nil, invalidArgument("artist id is required")
	}
	return fetch[Paging[Album]](ctx, s.client, epArtistAlbums.request(artistID))
}

// AllAlbums returns the artist's complete discography, following pagination
// until the last page.
func (s *ArtistsService) AllAlbums(ctx context.Context, artistID string) (*Paging[Album], error) {
	if artistID == "" {
		return nil, invalidArgument("artist id is required")
	}
	return collect[Album](ctx, s.client, epArtistAlbums.request(artistID).path, nil)
}

// TopTracks returns an artist's most popular tracks in a market. country is
// an ISO 3166-1 alpha-2 code, sent as given, and is required.
func (s *ArtistsService) TopTracks(ctx context.Context, artistID, country string) ([]Track, error) {
	if artistID == "" {
		return nil, invalidArgument("artist id is required")
	}
	if country == "" {
		return nil, invalidArgument("country is required for top tracks")
	}

	req := epArtistTopTracks.request(artistID).withQuery(url.Values{"country": {country}})
	resp, err := fetch[trackList](ctx, s.client, req)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// Related returns artists similar to the given one.
func (s *ArtistsService) Related(ctx context.Context, artistID string) ([]Artist, error) {
	if artistID == "" {
		return nil, invalidArgument("artist id is required")
	}

	resp, err := fetch[artistList](ctx, s.client, epRelatedArtists.request(artistID))
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.Artists, nil
}
