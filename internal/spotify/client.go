// Package spotify searches the Spotify catalog for music matching a mood.
package spotify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the Spotify Web API root. It must end with a slash.
	DefaultBaseURL = "https://api.spotify.com/v1/"

	// DefaultLimit is the number of results requested per search.
	DefaultLimit = 3

	defaultTimeout = 10 * time.Second
)

// Catalog issues searches against the Spotify Web API.
// It holds no per-request state; every search is authorized with the
// token passed to it.
type Catalog struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithBaseURL overrides the Web API root.
func WithBaseURL(url string) Option {
	return func(c *Catalog) {
		if url == "" {
			return
		}
		if !strings.HasSuffix(url, "/") {
			url += "/"
		}
		c.baseURL = url
	}
}

// WithHTTPClient sets the base HTTP client. The bearer token is layered
// on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Catalog) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewCatalog creates a new Spotify catalog client.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// api builds a Web API client authorized with token.
func (c *Catalog) api(ctx context.Context, token *oauth2.Token) *spotify.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	authed := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	authed.Timeout = c.httpClient.Timeout
	return spotify.New(authed, spotify.WithBaseURL(c.baseURL))
}
