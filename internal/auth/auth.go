// Package auth fetches Spotify access tokens with the client-credentials grant.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTimeout bounds a single token request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrMissingCredentials is returned when the client ID or secret is empty.
	ErrMissingCredentials = errors.New("missing Spotify client ID or secret")

	// ErrAuthFailed is returned when the token endpoint does not issue a token.
	ErrAuthFailed = errors.New("spotify token request failed")
)

// TokenProvider obtains a fresh bearer token on every call.
// It keeps no token between calls and never retries.
type TokenProvider struct {
	config     clientcredentials.Config
	httpClient *http.Client
}

// Option configures a TokenProvider.
type Option func(*TokenProvider)

// WithTokenURL overrides the Spotify accounts token endpoint.
func WithTokenURL(url string) Option {
	return func(p *TokenProvider) {
		if url != "" {
			p.config.TokenURL = url
		}
	}
}

// WithHTTPClient sets the HTTP client used for token requests.
func WithHTTPClient(c *http.Client) Option {
	return func(p *TokenProvider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// NewTokenProvider creates a TokenProvider for the given client credentials.
// Returns ErrMissingCredentials if either value is empty.
func NewTokenProvider(clientID, clientSecret string, opts ...Option) (*TokenProvider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	p := &TokenProvider{
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyauth.TokenURL,
			// Spotify expects HTTP Basic credentials, not form fields.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// TokenURL returns the endpoint tokens are requested from.
func (p *TokenProvider) TokenURL() string {
	return p.config.TokenURL
}

// FetchToken performs one client-credentials exchange.
// Any failure, including a non-success HTTP status, wraps ErrAuthFailed.
func (p *TokenProvider) FetchToken(ctx context.Context) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.config.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, fmt.Errorf("%w: status %d", ErrAuthFailed, retrieveErr.Response.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	return token, nil
}
