package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jfmyers9/spotctl/internal/config"
	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

// scopes requested during authorization, enough for every command.
var scopes = []string{
	"user-read-private",
	"user-read-email",
	"user-library-read",
	"user-library-modify",
	"playlist-read-private",
	"playlist-modify-public",
	"playlist-modify-private",
}

var (
	authNoBrowser bool
	authTimeout   time.Duration
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize spotctl with your Spotify account",
	Long: `Authorize spotctl with your Spotify account.

This command runs the OAuth authorization code flow:
1. Client id and secret are read from the config (spotify.client_id and
   spotify.client_secret); register an application at
   https://developer.spotify.com/dashboard to get them
2. A browser window opens on the Spotify authorization page
3. A local server on the redirect URI receives the authorization code
4. The access and refresh tokens are saved to your config file

The redirect URI of your application must match spotify.redirect_uri
(default: http://127.0.0.1:8888/callback).`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().BoolVar(&authNoBrowser, "no-browser", false, "Print the authorization URL instead of opening a browser")
	authCmd.Flags().DurationVar(&authTimeout, "timeout", 2*time.Minute, "How long to wait for the authorization")
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return fmt.Errorf("spotify.client_id and spotify.client_secret must be set in %s/config.yaml", config.GetConfigDir())
	}

	redirect, err := url.Parse(cfg.Spotify.RedirectURI)
	if err != nil || redirect.Host == "" {
		return fmt.Errorf("invalid redirect URI %q", cfg.Spotify.RedirectURI)
	}

	conf := oauthConfig(cfg)
	state := uuid.NewString()
	handler := newCallbackHandler(conf, state)

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}

	mux := http.NewServeMux()
	mux.Handle(callbackPath(redirect), handler)
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", redirect.Host).Msg("Starting OAuth callback server")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("Error shutting down callback server")
		}
	}()

	out := cmd.OutOrStdout()
	authURL := conf.AuthCodeURL(state)
	if authNoBrowser {
		fmt.Fprintf(out, "Please open this URL in your browser:\n\n  %s\n\n", authURL)
	} else if err := browser.OpenURL(authURL); err != nil {
		logger.Warn().Err(err).Msg("Failed to open browser")
		fmt.Fprintf(out, "Could not open a browser. Please open this URL:\n\n  %s\n\n", authURL)
	}

	fmt.Fprintf(out, "Waiting for authorization (%s timeout)...\n", authTimeout)

	var result callbackResult
	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return fmt.Errorf("callback server error: %w", err)
	case <-time.After(authTimeout):
		return fmt.Errorf("authorization timed out after %s", authTimeout)
	}
	if result.err != nil {
		return fmt.Errorf("authorization failed: %w", result.err)
	}

	cfg.Spotify.AccessToken = result.token.AccessToken
	cfg.Spotify.RefreshToken = result.token.RefreshToken
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "\n✓ Authorization successful!\n")
	fmt.Fprintf(out, "✓ Tokens saved to %s/config.yaml\n", config.GetConfigDir())
	fmt.Fprintf(out, "\nAccess tokens expire after an hour; run 'spotctl refresh' to renew.\n")

	return nil
}

func oauthConfig(cfg *config.Config) *oauth2.Config {
	accounts := cfg.Spotify.AccountsURL
	if accounts == "" {
		accounts = spotify.DefaultAccountsURL
	}
	accounts = strings.TrimSuffix(accounts, "/")

	return &oauth2.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RedirectURL:  cfg.Spotify.RedirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   accounts + "/authorize",
			TokenURL:  accounts + "/api/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

func callbackPath(redirect *url.URL) string {
	if redirect.Path == "" {
		return "/"
	}
	return redirect.Path
}

type callbackResult struct {
	token *oauth2.Token
	err   error
}

// callbackHandler receives the authorization redirect, checks the state and
// exchanges the code. Only the first request is processed.
type callbackHandler struct {
	config *oauth2.Config
	state  string

	mu      sync.Mutex
	handled bool
	once    sync.Once
	result  chan callbackResult
}

func newCallbackHandler(conf *oauth2.Config, state string) *callbackHandler {
	return &callbackHandler{
		config: conf,
		state:  state,
		result: make(chan callbackResult, 1),
	}
}

func (h *callbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.handled {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.handled = true
	h.mu.Unlock()

	query := r.URL.Query()
	if query.Get("state") != h.state {
		h.send(callbackResult{err: errors.New("invalid state parameter")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.send(callbackResult{err: fmt.Errorf("authorization denied: %s", query.Get("error"))})
		http.Error(w, "Authorization denied", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.send(callbackResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.send(callbackResult{token: token})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Authorization successful. You can close this window and return to the terminal.")
}

func (h *callbackHandler) send(result callbackResult) {
	h.once.Do(func() {
		h.result <- result
		close(h.result)
	})
}

// Result delivers exactly one result and is then closed.
func (h *callbackHandler) Result() <-chan callbackResult {
	return h.result
}
