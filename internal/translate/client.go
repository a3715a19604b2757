// Package translate detects the language of mood text and translates it to
// English with the Google Cloud Translation v3 REST API.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"golang.org/x/text/language"

	"github.com/justestif/go-spotify-mood-recommender/internal/config"
	"github.com/justestif/go-spotify-mood-recommender/internal/logging"
)

const (
	cloudTranslationScope = "https://www.googleapis.com/auth/cloud-translation"
	targetLanguage        = "en"
	mimeTypePlain         = "text/plain"
)

// ErrTranslation matches every failure of DetectAndTranslate.
var ErrTranslation = errors.New("translation failure")

// Error wraps the underlying cause of a detection or translation failure.
type Error struct {
	Op  string // "detect" or "translate"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("translate: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrTranslation }

// Client is a Cloud Translation client.
type Client struct {
	parent     string
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a Client that sends requests with httpClient, which is
// expected to attach Google credentials.
func NewClient(cfg config.Translate, httpClient *http.Client, logger *zap.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultTranslateURL
	}
	return &Client{
		parent:     strings.Trim(cfg.Parent, "/"),
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logging.OrNop(logger),
	}
}

// NewFromConfig creates a Client authenticated with Application Default Credentials.
func NewFromConfig(ctx context.Context, cfg config.Translate, logger *zap.Logger) (*Client, error) {
	httpClient, err := google.DefaultClient(ctx, cloudTranslationScope)
	if err != nil {
		return nil, fmt.Errorf("creating google credentials client: %w", err)
	}
	httpClient.Timeout = 15 * time.Second
	return NewClient(cfg, httpClient, logger), nil
}

// DetectAndTranslate detects the language of text and, when it is not
// English, translates it to English. A single attempt is made per call.
func (c *Client) DetectAndTranslate(ctx context.Context, text string) (Result, error) {
	code, err := c.detect(ctx, text)
	if err != nil {
		return Result{}, &Error{Op: "detect", Err: err}
	}

	base := baseLanguage(code)
	if !needsTranslation(base) {
		return Result{Text: text, SourceLanguage: base}, nil
	}

	c.logger.Info("translating text to English", zap.String("source_language", base))

	translated, err := c.translate(ctx, text, sourceCode(code, base))
	if err != nil {
		return Result{}, &Error{Op: "translate", Err: err}
	}

	return Result{Text: translated, SourceLanguage: base, Translated: true}, nil
}

func (c *Client) detect(ctx context.Context, text string) (string, error) {
	var resp detectResponse
	err := c.post(ctx, "detectLanguage", detectRequest{Content: text, MimeType: mimeTypePlain}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Languages) == 0 || resp.Languages[0].LanguageCode == "" {
		return "", errors.New("no language detected")
	}
	return resp.Languages[0].LanguageCode, nil
}

func (c *Client) translate(ctx context.Context, text, sourceCode string) (string, error) {
	var resp translateResponse
	err := c.post(ctx, "translateText", translateRequest{
		Contents:           []string{text},
		MimeType:           mimeTypePlain,
		SourceLanguageCode: sourceCode,
		TargetLanguageCode: targetLanguage,
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Translations) == 0 {
		return "", errors.New("empty translation response")
	}
	return resp.Translations[0].TranslatedText, nil
}

// post sends a JSON request to {baseURL}/v3/{parent}:{method} and decodes the reply into out.
func (c *Client) post(ctx context.Context, method string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v3/%s:%s", c.baseURL, c.parent, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// baseLanguage reduces a BCP 47 code such as "en-US" or "zh-Hant" to its
// base language ("en", "zh"). Codes x/text cannot parse are lower-cased and
// cut at the first separator.
func baseLanguage(code string) string {
	if tag, err := language.Parse(code); err == nil {
		base, _ := tag.Base()
		return base.String()
	}
	code = strings.ToLower(code)
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		code = code[:idx]
	}
	return code
}

// needsTranslation reports whether text in the base language must be
// translated. Everything except English is, undetermined input included.
func needsTranslation(base string) bool {
	english, _ := language.English.Base()
	return base != english.String()
}

// sourceCode returns the sourceLanguageCode for a translate request. It is
// empty for undetermined input so the service detects the language itself.
func sourceCode(code, base string) string {
	und, _ := language.Und.Base()
	if base == und.String() {
		return ""
	}
	return code
}
