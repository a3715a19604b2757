package spotify

// Recommendation is the single track suggested for a mood.
type Recommendation struct {
	ID     string
	Title  string
	Artist string // Primary (first) artist only
	URL    string // Open-in-Spotify link, empty when not provided
}
