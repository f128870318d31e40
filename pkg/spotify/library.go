package spotify

import (
	"context"
	"net/url"
	"strings"
)

// LibraryService provides operations on the current user's saved tracks.
type LibraryService struct {
	client *Client
}

const (
	// MaxIDs is the maximum number of ids or URIs sent in one modifying
	// request. Longer lists are truncated to the first MaxIDs entries.
	MaxIDs = 100
)

// SavedTracks returns every track in the user's library, following
// pagination until the last page.
func (s *LibraryService) SavedTracks(ctx context.Context) (*Paging[SavedTrack], error) {
	return collect[SavedTrack](ctx, s.client, epSavedTracks.request().path, nil)
}

// Contains reports, for each id, whether the track is saved in the library.
// All ids are sent in a single request.
func (s *LibraryService) Contains(ctx context.Context, ids []string) ([]bool, error) {
	if len(ids) == 0 {
		return nil, invalidArgument("at least one track id is required")
	}

	req := epContainsTracks.request().withQuery(url.Values{
		"ids": {strings.Join(ids, ",")},
	})

	saved, err := fetch[[]bool](ctx, s.client, req)
	if err != nil || saved == nil {
		return nil, err
	}
	return *saved, nil
}

// Save adds tracks to the library. Only the first MaxIDs ids are sent.
//
// It reports false with a nil error when the request failed and the client
// does not raise errors.
func (s *LibraryService) Save(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return false, invalidArgument("at least one track id is required")
	}

	req := epSaveTracks.request().withQuery(url.Values{
		"ids": {strings.Join(truncate(ids), ",")},
	})
	return perform(ctx, s.client, req)
}

// Remove deletes tracks from the library.
func (s *LibraryService) Remove(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return false, invalidArgument("at least one track id is required")
	}

	req := epRemoveTracks.request().withJSON(map[string]interface{}{
		"tracks": ids,
	})
	return perform(ctx, s.client, req)
}

func truncate(ids []string) []string {
	if len(ids) > MaxIDs {
		return ids[:MaxIDs]
	}
	return ids
}
