package watson

// analyzeRequest is the JSON body sent to /v1/analyze.
type analyzeRequest struct {
	Text     string   `json:"text"`
	Features features `json:"features"`
}

type features struct {
	Emotion struct{} `json:"emotion"`
}

// analyzeResponse is the subset of the /v1/analyze response we read.
type analyzeResponse struct {
	Language string `json:"language"`
	Emotion  *struct {
		Document *struct {
			Emotion map[string]float64 `json:"emotion"`
		} `json:"document"`
	} `json:"emotion"`
}

// documentEmotion returns the document-level scores, or nil when absent.
func (r analyzeResponse) documentEmotion() map[string]float64 {
	if r.Emotion == nil || r.Emotion.Document == nil {
		return nil
	}
	return r.Emotion.Document.Emotion
}
