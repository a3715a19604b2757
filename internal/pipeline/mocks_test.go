package pipeline

import (
	"context"

	"github.com/justestif/go-spotify-mood-recommender/internal/mood"
	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
	"github.com/justestif/go-spotify-mood-recommender/internal/translate"
)

type mockTranslator struct {
	result translate.Result
	err    error
	calls  int
}

func (m *mockTranslator) DetectAndTranslate(ctx context.Context, text string) (translate.Result, error) {
	m.calls++
	if m.err != nil {
		return translate.Result{}, m.err
	}
	if m.result.Text == "" {
		return translate.Result{Text: text, SourceLanguage: "en"}, nil
	}
	return m.result, nil
}

type mockClassifier struct {
	scores   mood.Scores
	err      error
	calls    int
	lastText string
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (mood.Scores, error) {
	m.calls++
	m.lastText = text
	return m.scores, m.err
}

type mockRecommender struct {
	rec        *spotify.Recommendation
	err        error
	calls      int
	lastParams mood.Params
}

func (m *mockRecommender) Recommend(ctx context.Context, p mood.Params) (*spotify.Recommendation, error) {
	m.calls++
	m.lastParams = p
	return m.rec, m.err
}
