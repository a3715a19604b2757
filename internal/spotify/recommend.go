package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/go-spotify-mood-recommender/internal/mood"
)

// ErrNoTrackFound is returned when no recommendation could be produced.
var ErrNoTrackFound = errors.New("no track found")

// Recommend asks Spotify for exactly one track seeded by the configured genre
// and biased toward the given energy and valence targets.
// Returns ErrNoTrackFound when Spotify answers with zero tracks; call
// failures are wrapped so they also match ErrNoTrackFound.
func (c *Client) Recommend(ctx context.Context, p mood.Params) (*Recommendation, error) {
	seeds := spotify.Seeds{Genres: []string{c.seedGenre}}
	attrs := spotify.NewTrackAttributes().
		TargetEnergy(p.Energy).
		TargetValence(p.Valence)

	recs, err := c.api.GetRecommendations(ctx, seeds, attrs, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("%w: fetching recommendations: %w", ErrNoTrackFound, err)
	}

	if recs == nil || len(recs.Tracks) == 0 {
		return nil, ErrNoTrackFound
	}

	rec := convertRecommendation(recs.Tracks[0])
	return &rec, nil
}

// convertRecommendation converts a Spotify SimpleTrack to a Recommendation.
func convertRecommendation(track spotify.SimpleTrack) Recommendation {
	var artist string
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}

	return Recommendation{
		ID:     track.ID.String(),
		Title:  track.Name,
		Artist: artist,
		URL:    track.ExternalURLs["spotify"],
	}
}
