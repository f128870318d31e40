package spotify

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Token is the payload returned by the accounts service token endpoint.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`

	received time.Time
}

// Expiry returns when the access token stops being valid, measured from the
// moment the token was received. It is zero when the service did not say.
func (t *Token) Expiry() time.Time {
	if t.ExpiresIn <= 0 || t.received.IsZero() {
		return time.Time{}
	}
	return t.received.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// OAuth2 converts the token for use with golang.org/x/oauth2.
func (t *Token) OAuth2() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry(),
	}
	return tok.WithExtra(map[string]interface{}{"scope": t.Scope})
}

// RefreshConfig holds everything a token refresh needs. No client instance
// is involved, so timeouts and retries are given explicitly; zero values use
// the client defaults.
type RefreshConfig struct {
	ClientID     string        // Required
	ClientSecret string        // Required
	RefreshToken string        // Required
	AccountsURL  string        // Optional: defaults to DefaultAccountsURL
	Retries      int           // Optional: the request is not idempotent, so retries never apply
	ReadTimeout  time.Duration // Optional: defaults to 10s
	WriteTimeout time.Duration // Optional: defaults to 10s
	HTTPClient   *http.Client  // Optional
	Transport    Transport     // Optional: replaces the HTTP transport entirely
	Logger       Logger        // Optional
}

// RefreshToken exchanges a refresh token for a new access token.
//
// The request authenticates with HTTP Basic credentials built from the
// client id and secret and posts a URL-encoded form. Failures are reported
// with the same error kinds as API calls and are always returned.
//
// Example:
//
//	tok, err := spotify.RefreshToken(ctx, spotify.RefreshConfig{
//	    ClientID:     id,
//	    ClientSecret: secret,
//	    RefreshToken: refresh,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client.SetAccessToken(tok.AccessToken)
func RefreshToken(ctx context.Context, cfg RefreshConfig) (*Token, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, invalidArgument("client id and client secret are required")
	}
	if cfg.RefreshToken == "" {
		return nil, invalidArgument("refresh token is required")
	}

	accountsURL := cfg.AccountsURL
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}

	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport(TransportConfig{
			ReadTimeout:  durationOr(cfg.ReadTimeout, DefaultReadTimeout),
			WriteTimeout: durationOr(cfg.WriteTimeout, DefaultWriteTimeout),
			HTTPClient:   cfg.HTTPClient,
			Logger:       cfg.Logger,
		})
		defer func() { _ = transport.Close() }()
	}

	exec := &executor{
		transport: transport,
		baseURL:   strings.TrimSuffix(accountsURL, "/"),
		userAgent: DefaultUserAgent,
		retries:   cfg.Retries,
		logger:    cfg.Logger,
	}

	req := (&request{
		method: http.MethodPost,
		path:   "/api/token",
		expect: statusOK,
		header: http.Header{"Authorization": {basicAuth(cfg.ClientID, cfg.ClientSecret)}},
	}).withForm(url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {cfg.RefreshToken},
	})

	var tok Token
	if err := exec.executeInto(ctx, req, &tok); err != nil {
		return nil, err
	}
	tok.received = time.Now()
	if tok.RefreshToken == "" {
		tok.RefreshToken = cfg.RefreshToken
	}
	return &tok, nil
}

func basicAuth(id, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(id+":"+secret))
}
