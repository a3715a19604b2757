// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/go-spotify-mood-recommender/internal/config"
)

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api       *spotify.Client
	seedGenre string
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
// An empty seedGenre uses config.DefaultSeedGenre.
func New(api *spotify.Client, seedGenre string) *Client {
	if seedGenre == "" {
		seedGenre = config.DefaultSeedGenre
	}
	return &Client{api: api, seedGenre: seedGenre}
}

// NewFromConfig creates a client authenticated with the client-credentials
// flow. Tokens are fetched and refreshed by the oauth2 transport.
func NewFromConfig(ctx context.Context, cfg config.Spotify) *Client {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return New(spotify.New(creds.Client(ctx)), cfg.SeedGenre)
}
