// Package config loads the recommender's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// Environment keys, lower-cased as viper stores them.
const (
	keyWatsonURL       = "watson_api_url"
	keyWatsonAPIKey    = "watson_api_key"
	keyWatsonVersion   = "watson_api_version"
	keyGoogleParent    = "google_project_parent"
	keyGoogleURL       = "google_translate_url"
	keySpotifyID       = "spotify_client_id"
	keySpotifySecret   = "spotify_client_secret"
	keySpotifySeed     = "spotify_seed_genre"
	keyLogLevel        = "log_level"
	keyAddr            = "addr"
	defaultEnvFileName = ".env"
)

// Defaults.
const (
	DefaultWatsonVersion = "2021-08-01"
	DefaultTranslateURL  = "https://translation.googleapis.com"
	DefaultSeedGenre     = "pop"
	DefaultLogLevel      = "info"
	DefaultAddr          = "127.0.0.1:8080"
)

var (
	// ErrMissingWatson is returned when WATSON_API_URL or WATSON_API_KEY is not set.
	ErrMissingWatson = errors.New("missing WATSON_API_URL or WATSON_API_KEY environment variable")

	// ErrMissingSpotify is returned when SPOTIFY_CLIENT_ID or SPOTIFY_CLIENT_SECRET is not set.
	ErrMissingSpotify = errors.New("missing SPOTIFY_CLIENT_ID or SPOTIFY_CLIENT_SECRET environment variable")

	// ErrMissingTranslateParent is returned when GOOGLE_PROJECT_PARENT is not set.
	ErrMissingTranslateParent = errors.New("missing GOOGLE_PROJECT_PARENT environment variable")
)

// Watson holds Watson Natural Language Understanding settings.
type Watson struct {
	URL     string
	APIKey  string
	Version string
}

// Translate holds Google Cloud Translation settings.
type Translate struct {
	// Parent is the resource the requests are scoped to,
	// e.g. "projects/my-project/locations/global".
	Parent  string
	BaseURL string
}

// Spotify holds Spotify client-credentials settings.
type Spotify struct {
	ClientID     string
	ClientSecret string
	SeedGenre    string
}

// Config is the complete application configuration.
type Config struct {
	Watson    Watson
	Translate Translate
	Spotify   Spotify
	LogLevel  string
	Addr      string
}

// Load reads configuration from the environment and, when present, from
// envFile (dotenv format). An empty envFile means ".env". A missing file is
// not an error. v may carry flag bindings; nil uses a fresh viper instance.
func Load(v *viper.Viper, envFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	if envFile == "" {
		envFile = defaultEnvFileName
	}

	v.SetDefault(keyWatsonVersion, DefaultWatsonVersion)
	v.SetDefault(keyGoogleURL, DefaultTranslateURL)
	v.SetDefault(keySpotifySeed, DefaultSeedGenre)
	v.SetDefault(keyLogLevel, DefaultLogLevel)
	v.SetDefault(keyAddr, DefaultAddr)
	v.AutomaticEnv()

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}

	return &Config{
		Watson: Watson{
			URL:     v.GetString(keyWatsonURL),
			APIKey:  v.GetString(keyWatsonAPIKey),
			Version: v.GetString(keyWatsonVersion),
		},
		Translate: Translate{
			Parent:  v.GetString(keyGoogleParent),
			BaseURL: v.GetString(keyGoogleURL),
		},
		Spotify: Spotify{
			ClientID:     v.GetString(keySpotifyID),
			ClientSecret: v.GetString(keySpotifySecret),
			SeedGenre:    v.GetString(keySpotifySeed),
		},
		LogLevel: v.GetString(keyLogLevel),
		Addr:     v.GetString(keyAddr),
	}, nil
}

// Validate reports every missing required value.
func (c *Config) Validate() error {
	var errs []error
	if c.Watson.URL == "" || c.Watson.APIKey == "" {
		errs = append(errs, ErrMissingWatson)
	}
	if c.Translate.Parent == "" {
		errs = append(errs, ErrMissingTranslateParent)
	}
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		errs = append(errs, ErrMissingSpotify)
	}
	return errors.Join(errs...)
}
