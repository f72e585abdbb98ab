package models

// SuggestionSource identifies which terminal branch produced a suggestion set.
type SuggestionSource string

const (
	// SuggestionSourceWeather means the genre was derived from current conditions.
	SuggestionSourceWeather SuggestionSource = "weather"
	// SuggestionSourceTopRated means the weather path failed and the top-rated
	// listing from the video-metadata provider was used instead.
	SuggestionSourceTopRated SuggestionSource = "topRated"
	// SuggestionSourceFallback means both primary paths failed and a generic
	// keyword search produced the rows.
	SuggestionSourceFallback SuggestionSource = "fallback"
)

// Suggestions is the initial "Suggested for you" result set.
type Suggestions struct {
	Genre  string           `json:"genre,omitempty"`
	Reason string           `json:"reason"`
	Source SuggestionSource `json:"source"`
	Movies []Movie          `json:"movies"`
}
