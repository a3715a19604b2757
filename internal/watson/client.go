// Package watson classifies text into emotions with IBM Watson Natural
// Language Understanding.
package watson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/justestif/go-spotify-mood-recommender/internal/config"
	"github.com/justestif/go-spotify-mood-recommender/internal/logging"
	"github.com/justestif/go-spotify-mood-recommender/internal/mood"
)

const analyzePath = "/v1/analyze"

// Sentinel errors.
var (
	// ErrClassifierHTTP is returned when Watson answers with a non-2xx status.
	ErrClassifierHTTP = errors.New("emotion classifier HTTP failure")

	// ErrClassifierNetwork is returned when Watson cannot be reached.
	ErrClassifierNetwork = errors.New("emotion classifier network failure")
)

// HTTPError carries the status and body of a failed analyze call.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("watson: status %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrClassifierHTTP
}

// Client is a Watson NLU client restricted to emotion analysis.
type Client struct {
	apiKey     string
	version    string
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a Watson client from the provided configuration.
func NewClient(cfg config.Watson, logger *zap.Logger) *Client {
	version := cfg.Version
	if version == "" {
		version = config.DefaultWatsonVersion
	}
	return &Client{
		apiKey:  cfg.APIKey,
		version: version,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		logger:  logging.OrNop(logger),
	}
}

// Classify returns the document-level emotion scores for English text.
// When Watson reports no emotion object the neutral scores are returned.
func (c *Client) Classify(ctx context.Context, text string) (mood.Scores, error) {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encoding analyze request: %w", err)
	}

	reqURL := c.baseURL + analyzePath + "?" + url.Values{"version": {c.version}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassifierNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrClassifierNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	c.logger.Debug("watson response", zap.ByteString("body", respBody))

	var parsed analyzeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parsing analyze response: %w", err)
	}

	raw := parsed.documentEmotion()
	if len(raw) == 0 {
		c.logger.Info("no significant emotions detected, using neutral scores")
		return mood.NeutralScores(), nil
	}

	scores := mood.FromMap(raw)
	if len(scores) == 0 {
		c.logger.Info("no known emotion labels in response, using neutral scores")
		return mood.NeutralScores(), nil
	}
	return scores, nil
}
