package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/justestif/go-spotify-mood-recommender/internal/mood"
	"github.com/justestif/go-spotify-mood-recommender/internal/pipeline"
)

const maxMoodBytes = 4 << 10

// Runner runs the recommendation pipeline for one mood description.
type Runner interface {
	Run(ctx context.Context, text string) pipeline.Outcome
}

// Handlers contains HTTP handlers for the web interface.
type Handlers struct {
	pipeline  Runner
	templates *Templates
	logger    *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(p Runner, templates *Templates, logger *zap.Logger) *Handlers {
	return &Handlers{
		pipeline:  p,
		templates: templates,
		logger:    logger,
	}
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	data := HomePageData{
		PageData: PageData{
			Title:       "Mood Recommender",
			CurrentPath: r.URL.Path,
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		h.logger.Error("rendering home", zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// Recommend handles the mood form (POST /recommend). HTMX requests get the
// result fragment; a plain form post gets the home page with the result filled in.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMoodBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(r.PostForm.Get("mood"))
	out := h.pipeline.Run(r.Context(), text)
	result := toResultData(text, out)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", "HX-Request")

	var err error
	if r.Header.Get("HX-Request") == "true" {
		err = h.templates.RenderPartial(w, "result", result)
	} else {
		err = h.templates.Render(w, "home", HomePageData{
			PageData: PageData{
				Title:       "Mood Recommender",
				CurrentPath: r.URL.Path,
			},
			Result: &result,
		})
	}
	if err != nil {
		h.logger.Error("rendering result", zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// recommendRequest is the JSON body of POST /api/recommend.
type recommendRequest struct {
	Mood string `json:"mood"`
}

// recommendResponse is the JSON reply of POST /api/recommend.
type recommendResponse struct {
	RunID      string  `json:"run_id"`
	Title      string  `json:"title,omitempty"`
	Artist     string  `json:"artist,omitempty"`
	URL        string  `json:"url,omitempty"`
	Emotion    string  `json:"emotion,omitempty"`
	Energy     float64 `json:"energy,omitempty"`
	Valence    float64 `json:"valence,omitempty"`
	Mood       string  `json:"mood,omitempty"`
	Translated bool    `json:"translated"`
	Stage      string  `json:"stage"`
	Error      string  `json:"error,omitempty"`
}

// RecommendJSON handles POST /api/recommend.
// Responds 200 with the track, or 422 with the reason when there is none.
func (h *Handlers) RecommendJSON(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMoodBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, recommendResponse{Error: "invalid JSON body"})
		return
	}

	out := h.pipeline.Run(r.Context(), req.Mood)

	resp := recommendResponse{
		RunID:      out.RunID.String(),
		Translated: out.Translated,
		Stage:      string(out.Stage),
	}

	if !out.OK() {
		resp.Error = out.Message()
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	desc := mood.Describe(out.Params)
	resp.Title = out.Recommendation.Title
	resp.Artist = out.Recommendation.Artist
	resp.URL = out.Recommendation.URL
	resp.Emotion = string(out.Emotion)
	resp.Energy = out.Params.Energy
	resp.Valence = out.Params.Valence
	resp.Mood = desc.Name
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func toResultData(text string, out pipeline.Outcome) ResultData {
	data := ResultData{
		Mood:       text,
		OK:         out.OK(),
		Message:    out.Message(),
		Translated: out.Translated,
	}
	if !out.OK() {
		return data
	}

	desc := mood.Describe(out.Params)
	data.Title = out.Recommendation.Title
	data.Artist = out.Recommendation.Artist
	data.URL = out.Recommendation.URL
	data.Emotion = string(out.Emotion)
	data.Energy = out.Params.Energy
	data.Valence = out.Params.Valence
	data.MoodName = desc.Name
	data.MoodSummary = desc.Summary
	return data
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
