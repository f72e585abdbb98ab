package models

// TrailerResult is the resolved trailer for a movie. A zero Key is a valid
// outcome ("no trailer"); FallbackSearchURL is always populated so clients can
// offer a manual external search when no key was found.
type TrailerResult struct {
	Key               string `json:"key,omitempty"`
	Site              string `json:"site,omitempty"` // always YouTube when Key is set
	Kind              string `json:"kind,omitempty"` // Trailer | Teaser | other provider video type
	WatchURL          string `json:"watchUrl,omitempty"`
	EmbedURL          string `json:"embedUrl,omitempty"`
	FallbackSearchURL string `json:"fallbackSearchUrl"`
}

// TrailerQuery identifies the movie whose trailer should be resolved. ID is
// the search provider's stable id and keys the session cache.
type TrailerQuery struct {
	ID    string
	Title string
	Year  string
}

// TrailerState is the transient per-hover lookup state inside a preview
// session. It is discarded whenever the hover target changes.
type TrailerState struct {
	Key     string `json:"key,omitempty"`
	Loading bool   `json:"loading"`
	Error   bool   `json:"error"`
}
