package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// collect follows next links from path until the service stops returning
// one. Items are concatenated in the order received; every other field of
// the result comes from the last page. query is sent with the first request
// only, later pages carry their own query in the next link.
//
// There is no page limit: a service that never ends the chain keeps the loop
// running until ctx is cancelled.
func collect[T any](ctx context.Context, c *Client, path string, query url.Values) (*Paging[T], error) {
	var acc Paging[T]
	pages := 0

	for {
		req := epGetPage(path)
		if pages == 0 {
			req.withQuery(query)
		}

		page, err := fetch[Paging[T]](ctx, c, req)
		if err != nil || page == nil {
			return nil, err
		}
		pages++

		items := append(acc.Items, page.Items...)
		acc = *page
		acc.Items = items

		if page.Next == nil || *page.Next == "" {
			c.logDebugf("spotify: collected %d items from %d pages of %s", len(acc.Items), pages, path)
			return &acc, nil
		}
		path = c.relativePath(*page.Next)
	}
}

// epGetPage is the request for one page of any paginated endpoint.
func epGetPage(path string) *request {
	return &request{
		method:     http.MethodGet,
		path:       path,
		expect:     statusOK,
		idempotent: true,
	}
}

// relativePath strips the configured base URL from a next link. Links to
// other hosts are left absolute.
func (c *Client) relativePath(next string) string {
	return strings.TrimPrefix(next, c.exec.baseURL)
}
