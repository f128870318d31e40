package spotify

import (
	"context"
	"net/url"
	"strings"
)

// TracksService provides track operations.
type TracksService struct {
	client *Client
}

// Get returns a track.
func (s *TracksService) Get(ctx context.Context, trackID string) (*Track, error) {
	if trackID == "" {
		return nil, invalidArgument("track id is required")
	}
	return fetch[Track](ctx, s.client, epTrack.request(trackID))
}

// GetSeveral returns several tracks in one request, in the order of ids.
func (s *TracksService) GetSeveral(ctx context.Context, ids []string) ([]Track, error) {
	if len(ids) == 0 {
		return nil, invalidArgument("at least one track id is required")
	}

	req := epTracks.request().withQuery(url.Values{"ids": {strings.Join(ids, ",")}})
	resp, err := fetch[trackList](ctx, s.client, req)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.Tracks, nil
}

type trackList struct {
	Tracks []Track `json:"tracks"`
}
