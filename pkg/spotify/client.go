// Package spotify provides a client for the Spotify Web API.
//
// This package implements the catalog, library, playlist and search
// endpoints of the Web API on top of a small request pipeline with a typed
// error taxonomy and transparent pagination. It is designed to be used as a
// standalone SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/spotctl/pkg/spotify"
//
//	client := spotify.NewClient(spotify.Config{
//	    AccessToken: "access-token",
//	    RaiseErrors: true,
//	})
//	defer client.Close()
//
//	me, err := client.Users().Me(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Logged in as", me.DisplayName)
package spotify

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the default Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com"

	// DefaultAccountsURL is the default accounts service endpoint.
	DefaultAccountsURL = "https://accounts.spotify.com"

	// DefaultUserAgent identifies this client to the service.
	DefaultUserAgent = "spotctl/1.0"

	// DefaultReadTimeout and DefaultWriteTimeout bound each socket operation.
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// Config holds client configuration.
type Config struct {
	AccessToken  string        // Optional: bearer token, can be changed later with SetAccessToken
	RaiseErrors  bool          // Optional: return API errors instead of suppressing them (default false)
	Retries      int           // Optional: automatic retries for idempotent requests (default 0)
	ReadTimeout  time.Duration // Optional: defaults to 10s
	WriteTimeout time.Duration // Optional: defaults to 10s
	Persistent   bool          // Optional: keep the connection alive between calls
	BaseURL      string        // Optional: Base URL for API (defaults to Spotify, used for testing)
	UserAgent    string        // Optional: User-Agent header value
	HTTPClient   *http.Client  // Optional: HTTP client, bypasses the timeout settings
	Transport    Transport     // Optional: replaces the HTTP transport entirely
	Logger       Logger        // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify API operations.
//
// A Client performs one blocking request at a time per call. The access token
// may be swapped between calls with SetAccessToken; no other state is shared
// between calls, and concurrent calls on one Client are not coordinated.
type Client struct {
	mu          sync.RWMutex
	accessToken string

	raiseErrors bool
	exec        *executor
	logger      Logger

	users     *UsersService
	library   *LibraryService
	playlists *PlaylistsService
	albums    *AlbumsService
	tracks    *TracksService
	artists   *ArtistsService
}

// NewClient creates a new Spotify API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport(TransportConfig{
			ReadTimeout:  durationOr(cfg.ReadTimeout, DefaultReadTimeout),
			WriteTimeout: durationOr(cfg.WriteTimeout, DefaultWriteTimeout),
			Persistent:   cfg.Persistent,
			HTTPClient:   cfg.HTTPClient,
			Logger:       cfg.Logger,
		})
	}

	c := &Client{
		accessToken: cfg.AccessToken,
		raiseErrors: cfg.RaiseErrors,
		exec: &executor{
			transport: transport,
			baseURL:   strings.TrimSuffix(baseURL, "/"),
			userAgent: userAgent,
			retries:   cfg.Retries,
			logger:    cfg.Logger,
		},
		logger: cfg.Logger,
	}

	c.users = &UsersService{client: c}
	c.library = &LibraryService{client: c}
	c.playlists = &PlaylistsService{client: c}
	c.albums = &AlbumsService{client: c}
	c.tracks = &TracksService{client: c}
	c.artists = &ArtistsService{client: c}

	return c
}

// Users returns the user profile service.
func (c *Client) Users() *UsersService {
	return c.users
}

// Library returns the saved tracks service.
func (c *Client) Library() *LibraryService {
	return c.library
}

// Playlists returns the playlist service.
func (c *Client) Playlists() *PlaylistsService {
	return c.playlists
}

// Albums returns the album service.
func (c *Client) Albums() *AlbumsService {
	return c.albums
}

// Tracks returns the track service.
func (c *Client) Tracks() *TracksService {
	return c.tracks
}

// Artists returns the artist service.
func (c *Client) Artists() *ArtistsService {
	return c.artists
}

// SetAccessToken sets the bearer token used for subsequent requests. An
// empty token disables the Authorization header.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// AccessToken returns the current bearer token.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// RaiseErrors reports whether API errors are returned to callers.
func (c *Client) RaiseErrors() bool {
	return c.raiseErrors
}

// Close releases the persistent connection, if any. Calling Close on a
// client that never sent a request, or calling it twice, is harmless.
func (c *Client) Close() error {
	return c.exec.transport.Close()
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
