package spotify

import (
	"context"
	"net/url"
)

// SearchType is the kind of catalog object a search returns.
type SearchType string

// Supported search types.
const (
	SearchArtist SearchType = "artist"
	SearchAlbum  SearchType = "album"
	SearchTrack  SearchType = "track"
)

// Valid reports whether t is a supported search type.
func (t SearchType) Valid() bool {
	switch t {
	case SearchArtist, SearchAlbum, SearchTrack:
		return true
	}
	return false
}

// Search looks up catalog objects of one type matching query.
//
// An unsupported type is rejected with a KindImplementation error before any
// request is made, whatever the client's error policy.
//
// Example:
//
//	res, err := client.Search(ctx, "daft punk", spotify.SearchArtist)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range res.Artists.Items {
//	    fmt.Println(a.Name)
//	}
func (c *Client) Search(ctx context.Context, query string, kind SearchType) (*SearchResult, error) {
	if !kind.Valid() {
		return nil, invalidArgument("unsupported search type %q, expected artist, album or track", string(kind))
	}
	if query == "" {
		return nil, invalidArgument("search query is required")
	}

	req := epSearch.request().withQuery(url.Values{
		"q":    {query},
		"type": {string(kind)},
	})
	return fetch[SearchResult](ctx, c, req)
}
