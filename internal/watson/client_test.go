package watson

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/justestif/go-spotify-mood-recommender/internal/config"
	"github.com/justestif/go-spotify-mood-recommender/internal/mood"
)

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		apiKey:     "test-api-key",
		version:    "2021-08-01",
		httpClient: server.Client(),
		baseURL:    server.URL,
		logger:     zap.NewNop(),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		response   string
		wantScores mood.Scores
		wantErr    error
	}{
		{
			name:       "emotion object present",
			status:     http.StatusOK,
			response:   `{"language":"en","emotion":{"document":{"emotion":{"joy":0.9,"sadness":0.1,"fear":0.05,"disgust":0.02,"anger":0.03}}}}`,
			wantScores: mood.Scores{mood.Joy: 0.9, mood.Sadness: 0.1, mood.Fear: 0.05, mood.Disgust: 0.02, mood.Anger: 0.03},
		},
		{
			name:       "empty emotion object falls back to neutral",
			status:     http.StatusOK,
			response:   `{"language":"en","emotion":{"document":{"emotion":{}}}}`,
			wantScores: mood.NeutralScores(),
		},
		{
			name:       "missing emotion object falls back to neutral",
			status:     http.StatusOK,
			response:   `{"language":"en"}`,
			wantScores: mood.NeutralScores(),
		},
		{
			name:       "only unknown labels falls back to neutral",
			status:     http.StatusOK,
			response:   `{"emotion":{"document":{"emotion":{"surprise":0.7}}}}`,
			wantScores: mood.NeutralScores(),
		},
		{
			name:     "client error",
			status:   http.StatusBadRequest,
			response: `{"error":"not enough text for language id","code":400}`,
			wantErr:  ErrClassifierHTTP,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			response: `{"error":"internal","code":500}`,
			wantErr:  ErrClassifierHTTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			scores, err := newTestClient(server).Classify(context.Background(), "I am feeling great today")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Classify() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if len(scores) != len(tt.wantScores) {
				t.Fatalf("Classify() = %v, want %v", scores, tt.wantScores)
			}
			for l, v := range tt.wantScores {
				if scores[l] != v {
					t.Errorf("Classify()[%s] = %v, want %v", l, scores[l], v)
				}
			}
		})
	}
}

func TestClassify_Request(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/analyze" {
			t.Errorf("path = %s, want /v1/analyze", r.URL.Path)
		}
		if v := r.URL.Query().Get("version"); v != "2021-08-01" {
			t.Errorf("version = %q, want 2021-08-01", v)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "apikey" || pass != "test-api-key" {
			t.Errorf("basic auth = (%q, %q, %v), want (apikey, test-api-key, true)", user, pass, ok)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body["text"] != "I am feeling great today" {
			t.Errorf("text = %v", body["text"])
		}
		feats, ok := body["features"].(map[string]any)
		if !ok {
			t.Fatalf("features missing: %v", body)
		}
		if _, ok := feats["emotion"]; !ok || len(feats) != 1 {
			t.Errorf("features = %v, want only emotion", feats)
		}

		w.Write([]byte(`{"emotion":{"document":{"emotion":{"joy":0.8}}}}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server).Classify(context.Background(), "I am feeling great today"); err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
}

func TestClassify_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(server)
	server.Close()

	_, err := client.Classify(context.Background(), "I'm feeling great!")
	if !errors.Is(err, ErrClassifierNetwork) {
		t.Fatalf("Classify() error = %v, want ErrClassifierNetwork", err)
	}
	if errors.Is(err, ErrClassifierHTTP) {
		t.Errorf("network error also matched ErrClassifierHTTP")
	}
}

func TestClassify_HTTPErrorCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server).Classify(context.Background(), "some words here")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Classify() error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", httpErr.StatusCode, http.StatusUnauthorized)
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(config.Watson{URL: "https://watson.example/", APIKey: "key"}, nil)

	if client.apiKey != "key" {
		t.Errorf("NewClient() apiKey = %s, want key", client.apiKey)
	}
	if client.baseURL != "https://watson.example" {
		t.Errorf("NewClient() baseURL = %s, want trailing slash trimmed", client.baseURL)
	}
	if client.version != config.DefaultWatsonVersion {
		t.Errorf("NewClient() version = %s, want %s", client.version, config.DefaultWatsonVersion)
	}
	if client.httpClient == nil {
		t.Error("NewClient() httpClient is nil")
	}
	if client.logger == nil {
		t.Error("NewClient() logger is nil")
	}
}
