package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/justestif/go-spotify-mood-recommender/internal/mood"
	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
	"github.com/justestif/go-spotify-mood-recommender/internal/translate"
)

// Stage is the pipeline state a run finished in.
type Stage string

const (
	StageLengthCheck Stage = "length_check"
	StageTranslate   Stage = "translate"
	StageClassify    Stage = "classify"
	StageRecommend   Stage = "recommend"
	StageDone        Stage = "done"
)

// Outcome is the result of a single pipeline run: either a Recommendation,
// or the stage that stopped the run and why.
type Outcome struct {
	RunID          uuid.UUID
	Stage          Stage
	Recommendation *spotify.Recommendation
	Err            error

	Translated     bool
	SourceLanguage string
	Scores         mood.Scores
	Emotion        mood.Emotion
	Params         mood.Params
}

// OK reports whether the run produced a recommendation.
func (o Outcome) OK() bool {
	return o.Recommendation != nil
}

// Message returns the text shown to the user for this outcome.
func (o Outcome) Message() string {
	if o.OK() {
		return fmt.Sprintf("Recommended song: %s by %s", o.Recommendation.Title, o.Recommendation.Artist)
	}

	switch {
	case errors.Is(o.Err, ErrInputTooShort):
		return "The input text is too short for emotion analysis. Please provide a more descriptive sentence."
	case errors.Is(o.Err, translate.ErrTranslation):
		return "Translation failed. Please try again with a different input."
	case o.Stage == StageClassify:
		return "Emotion detection failed. Please try again with a different input."
	default:
		return "No song recommendation found."
	}
}

func (o Outcome) fail(stage Stage, err error) Outcome {
	o.Stage = stage
	o.Err = err
	return o
}
