// Package spotify provides a client library for the Spotify Web API.
//
// # Overview
//
// This package wraps the catalog, library, playlist and search endpoints of
// the Web API. Every call goes through one request pipeline that attaches
// the bearer token, checks the response status against the statuses the
// endpoint treats as success, decodes the JSON body and classifies failures
// into a small set of error kinds. List endpoints that span several pages
// are followed transparently.
//
// # Installation
//
//	go get github.com/jfmyers9/spotctl/pkg/spotify
//
// # Quick Start
//
// Create a client with an access token:
//
//	import "github.com/jfmyers9/spotctl/pkg/spotify"
//
//	client := spotify.NewClient(spotify.Config{
//	    AccessToken: "access-token",
//	    RaiseErrors: true,
//	})
//	defer client.Close()
//
//	album, err := client.Albums().Get(ctx, "4aawyAB9vmqN3uQ7FjRGTy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Failures are reported as *Error values with one of these kinds:
//
//   - KindResourceNotFound: HTTP 404
//   - KindBadRequest: HTTP 400
//   - KindInsufficientScope: HTTP 403
//   - KindAuthentication: HTTP 401
//   - KindHTTP: any other status, connection failure, timeout or
//     undecodable body
//   - KindImplementation: an invalid argument, detected before sending
//
// Use errors.Is with the sentinel values:
//
//	_, err := client.Tracks().Get(ctx, id)
//	if errors.Is(err, spotify.ErrResourceNotFound) {
//	    // no such track
//	}
//
// By default (RaiseErrors false) API failures are not returned. Methods that
// return a value return nil with a nil error, and methods that report success
// return false with a nil error. Invalid arguments are always returned.
//
//	ok, err := client.Library().Save(ctx, ids)
//	if err != nil {
//	    // programming error, e.g. no ids
//	}
//	if !ok {
//	    // the request failed
//	}
//
// # Pagination
//
// Library().SavedTracks, Playlists().Tracks and Artists().AllAlbums follow
// the "next" link of every page and return a single Paging value holding all
// items in order. The other fields of the result describe the last page.
//
// # Token Refresh
//
// RefreshToken exchanges a refresh token for a new access token without a
// Client:
//
//	tok, err := spotify.RefreshToken(ctx, spotify.RefreshConfig{
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	    RefreshToken: "refresh-token",
//	})
//	if err == nil {
//	    client.SetAccessToken(tok.AccessToken)
//	}
//
// # Configuration
//
// Read and write timeouts apply to each socket operation. Retries apply only
// to idempotent requests (everything but POST) and only to connection
// failures and 5xx or 429 answers. Persistent keeps the connection open
// between calls until Close is called.
//
//	client := spotify.NewClient(spotify.Config{
//	    AccessToken:  token,
//	    Retries:      2,
//	    ReadTimeout:  5 * time.Second,
//	    WriteTimeout: 5 * time.Second,
//	    Persistent:   true,
//	    Logger:       myLogger, // Implements spotify.Logger interface
//	})
//
// # Spotify Web API Documentation
//
// For more information about the Web API:
// https://developer.spotify.com/documentation/web-api
package spotify
