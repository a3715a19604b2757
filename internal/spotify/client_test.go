package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/go-spotify-mood-recommender/internal/config"
	"github.com/justestif/go-spotify-mood-recommender/internal/mood"
)

func TestConvertRecommendation(t *testing.T) {
	tests := []struct {
		name  string
		track spotify.SimpleTrack
		want  Recommendation
	}{
		{
			name: "single artist",
			track: spotify.SimpleTrack{
				ID:   "track123",
				Name: "Test Song",
				Artists: []spotify.SimpleArtist{
					{Name: "Artist One"},
				},
				ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/track/track123"},
			},
			want: Recommendation{
				ID:     "track123",
				Title:  "Test Song",
				Artist: "Artist One",
				URL:    "https://open.spotify.com/track/track123",
			},
		},
		{
			name: "multiple artists keeps the first",
			track: spotify.SimpleTrack{
				ID:   "track456",
				Name: "Collab Track",
				Artists: []spotify.SimpleArtist{
					{Name: "Artist A"},
					{Name: "Artist B"},
				},
			},
			want: Recommendation{ID: "track456", Title: "Collab Track", Artist: "Artist A"},
		},
		{
			name: "no artists",
			track: spotify.SimpleTrack{
				ID:      "track000",
				Name:    "Unknown Track",
				Artists: []spotify.SimpleArtist{},
			},
			want: Recommendation{ID: "track000", Title: "Unknown Track"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertRecommendation(tt.track); got != tt.want {
				t.Errorf("convertRecommendation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := spotify.New(server.Client(), spotify.WithBaseURL(server.URL+"/"))
	return New(api, "")
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		want     *Recommendation
		wantErr  error
	}{
		{
			name:     "returns first track",
			status:   http.StatusOK,
			response: `{"seeds":[],"tracks":[{"id":"abc","name":"Test Song","artists":[{"name":"Test Artist"},{"name":"Feature"}]}]}`,
			want:     &Recommendation{ID: "abc", Title: "Test Song", Artist: "Test Artist"},
		},
		{
			name:     "zero tracks",
			status:   http.StatusOK,
			response: `{"seeds":[],"tracks":[]}`,
			wantErr:  ErrNoTrackFound,
		},
		{
			name:     "api error",
			status:   http.StatusBadRequest,
			response: `{"error":{"status":400,"message":"invalid request"}}`,
			wantErr:  ErrNoTrackFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.response))
			})

			got, err := client.Recommend(context.Background(), mood.Params{Energy: 0.8, Valence: 0.9})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Recommend() error = %v, want %v", err, tt.wantErr)
				}
				if got != nil {
					t.Errorf("Recommend() = %+v, want nil", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if *got != *tt.want {
				t.Errorf("Recommend() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecommend_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommendations" {
			t.Errorf("path = %s, want /recommendations", r.URL.Path)
		}

		q := r.URL.Query()
		if got := q.Get("seed_genres"); got != config.DefaultSeedGenre {
			t.Errorf("seed_genres = %q, want %q", got, config.DefaultSeedGenre)
		}
		if got := q.Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		assertFloatParam(t, q.Get("target_energy"), 0.3)
		assertFloatParam(t, q.Get("target_valence"), 0.2)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tracks":[{"id":"x","name":"Sad Song","artists":[{"name":"Someone"}]}]}`))
	})

	if _, err := client.Recommend(context.Background(), mood.ParamsFor(mood.Sadness)); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
}

func assertFloatParam(t *testing.T, raw string, want float64) {
	t.Helper()
	got, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		t.Errorf("parsing %q: %v", raw, err)
		return
	}
	if got != want {
		t.Errorf("param = %v, want %v", got, want)
	}
}

func TestNew_DefaultSeedGenre(t *testing.T) {
	if c := New(nil, ""); c.seedGenre != config.DefaultSeedGenre {
		t.Errorf("New() seedGenre = %q, want %q", c.seedGenre, config.DefaultSeedGenre)
	}
	if c := New(nil, "indie"); c.seedGenre != "indie" {
		t.Errorf("New() seedGenre = %q, want indie", c.seedGenre)
	}
}
