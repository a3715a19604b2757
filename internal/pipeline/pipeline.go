// Package pipeline turns a mood description into a single song recommendation.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justestif/go-spotify-mood-recommender/internal/logging"
	"github.com/justestif/go-spotify-mood-recommender/internal/mood"
	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
	"github.com/justestif/go-spotify-mood-recommender/internal/translate"
)

// ErrInputTooShort is reported when the mood text has fewer than mood.MinWords words.
var ErrInputTooShort = errors.New("input too short for emotion analysis")

// Translator converts text to English when needed.
type Translator interface {
	DetectAndTranslate(ctx context.Context, text string) (translate.Result, error)
}

// Classifier scores English text by emotion.
type Classifier interface {
	Classify(ctx context.Context, text string) (mood.Scores, error)
}

// Recommender finds a track matching audio-feature targets.
type Recommender interface {
	Recommend(ctx context.Context, p mood.Params) (*spotify.Recommendation, error)
}

// Pipeline runs translate → classify → map → recommend, strictly in sequence.
type Pipeline struct {
	translator  Translator
	classifier  Classifier
	recommender Recommender
	logger      *zap.Logger
}

// New constructs a Pipeline.
func New(t Translator, c Classifier, r Recommender, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		translator:  t,
		classifier:  c,
		recommender: r,
		logger:      logging.OrNop(logger),
	}
}

// Run processes one mood description. Failures of the collaborators are not
// returned as errors; they are recorded in the Outcome, which then carries
// no recommendation.
func (p *Pipeline) Run(ctx context.Context, text string) Outcome {
	runID := uuid.New()
	log := p.logger.With(zap.String("run_id", runID.String()))
	out := Outcome{RunID: runID}

	// 1. Length check
	if len(strings.Fields(text)) < mood.MinWords {
		log.Info("input too short", zap.Int("min_words", mood.MinWords))
		return out.fail(StageLengthCheck, ErrInputTooShort)
	}

	// 2. Translate
	tr, err := p.translator.DetectAndTranslate(ctx, text)
	if err != nil {
		log.Warn("translation failed", zap.Error(err))
		return out.fail(StageTranslate, err)
	}
	out.Translated = tr.Translated
	out.SourceLanguage = tr.SourceLanguage

	// 3. Classify
	scores, err := p.classifier.Classify(ctx, tr.Text)
	if err != nil {
		log.Warn("emotion detection failed", zap.Error(err))
		return out.fail(StageClassify, err)
	}
	out.Scores = scores

	// 4. Map to audio-feature targets (cannot fail)
	out.Emotion = scores.Dominant()
	out.Params = mood.ParamsFor(out.Emotion)
	log.Debug("mapped emotion",
		zap.String("emotion", string(out.Emotion)),
		zap.Float64("target_energy", out.Params.Energy),
		zap.Float64("target_valence", out.Params.Valence),
	)

	// 5. Recommend
	rec, err := p.recommender.Recommend(ctx, out.Params)
	if err != nil {
		log.Info("no recommendation", zap.Error(err))
		if !errors.Is(err, spotify.ErrNoTrackFound) {
			err = errors.Join(spotify.ErrNoTrackFound, err)
		}
		return out.fail(StageRecommend, err)
	}
	if rec == nil {
		return out.fail(StageRecommend, spotify.ErrNoTrackFound)
	}

	out.Stage = StageDone
	out.Recommendation = rec
	log.Info("recommended track", zap.String("title", rec.Title), zap.String("artist", rec.Artist))
	return out
}
