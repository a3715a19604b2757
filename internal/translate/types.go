package translate

type detectRequest struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
}

type detectResponse struct {
	Languages []struct {
		LanguageCode string  `json:"languageCode"`
		Confidence   float64 `json:"confidence"`
	} `json:"languages"`
}

type translateRequest struct {
	Contents           []string `json:"contents"`
	MimeType           string   `json:"mimeType"`
	SourceLanguageCode string   `json:"sourceLanguageCode,omitempty"`
	TargetLanguageCode string   `json:"targetLanguageCode"`
}

type translateResponse struct {
	Translations []struct {
		TranslatedText       string `json:"translatedText"`
		DetectedLanguageCode string `json:"detectedLanguageCode"`
	} `json:"translations"`
}

// Result is the outcome of DetectAndTranslate.
type Result struct {
	Text           string // English text (original text when no translation was needed)
	SourceLanguage string // Base language code as detected, e.g. "pt"
	Translated     bool
}
