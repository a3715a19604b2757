// Package mood maps emotion scores to Spotify audio-feature targets.
package mood

// Emotion is one of the labels reported by the emotion classifier.
type Emotion string

// Known emotion labels.
const (
	Joy     Emotion = "joy"
	Sadness Emotion = "sadness"
	Fear    Emotion = "fear"
	Disgust Emotion = "disgust"
	Anger   Emotion = "anger"
)

// MinWords is the minimum number of whitespace-separated words a mood
// description needs before it is worth classifying.
const MinWords = 3

// Labels is the fixed label order. Dominant uses it to break ties.
var Labels = []Emotion{Joy, Sadness, Fear, Disgust, Anger}

// Scores holds the intensity (0..1) of each known emotion.
type Scores map[Emotion]float64

// NeutralScores returns the fallback used when no emotion stands out.
func NeutralScores() Scores {
	s := make(Scores, len(Labels))
	for _, l := range Labels {
		s[l] = 0.5
	}
	return s
}

// FromMap converts a raw label→score map into Scores.
// Unknown labels are dropped and values are clamped to [0, 1].
func FromMap(raw map[string]float64) Scores {
	s := make(Scores, len(Labels))
	for _, l := range Labels {
		v, ok := raw[string(l)]
		if !ok {
			continue
		}
		s[l] = clamp(v)
	}
	return s
}

// Dominant returns the label with the highest score. Ties go to the label
// that comes first in Labels. Returns "" when scores are empty or when every
// label scores the same, since a flat distribution has no dominant emotion.
func (s Scores) Dominant() Emotion {
	var (
		best    Emotion
		score   float64
		found   bool
		uniform = true
		seen    int
	)
	for _, l := range Labels {
		v, ok := s[l]
		if !ok {
			continue
		}
		seen++
		if found && v != score {
			uniform = false
		}
		if !found || v > score {
			best, score, found = l, v, true
		}
	}
	if seen > 1 && uniform {
		return ""
	}
	return best
}

// Params are the audio-feature targets sent to the recommendation service.
type Params struct {
	Energy  float64
	Valence float64
}

// DefaultParams is used for any emotion without its own row.
var DefaultParams = Params{Energy: 0.5, Valence: 0.5}

var paramsByEmotion = map[Emotion]Params{
	Joy:     {Energy: 0.8, Valence: 0.9},
	Sadness: {Energy: 0.3, Valence: 0.2},
	Anger:   {Energy: 0.7, Valence: 0.3},
	Fear:    {Energy: 0.4, Valence: 0.4},
	Disgust: {Energy: 0.5, Valence: 0.2},
}

// ParamsFor returns the audio-feature targets for an emotion.
func ParamsFor(e Emotion) Params {
	if p, ok := paramsByEmotion[e]; ok {
		return p
	}
	return DefaultParams
}

// ParamsForScores returns the targets for the dominant emotion in s.
func ParamsForScores(s Scores) Params {
	return ParamsFor(s.Dominant())
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
