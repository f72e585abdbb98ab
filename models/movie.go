package models

// Basic data structures shared by the discovery pipeline.

// Movie is a single result from the movie-search provider. Identity is the
// provider-assigned id; a Movie is immutable once fetched.
type Movie struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Year   string `json:"year"`   // kept as a string: the provider emits ranges like "2011–2013" for series
	Poster string `json:"poster"` // empty when the provider reports no artwork
}

// HistoryEntry is one superseded search: the query and the exact result set
// that was displayed when the next search replaced it.
type HistoryEntry struct {
	Query  string  `json:"query"`
	Movies []Movie `json:"movies"`
}

// SearchState is the wire snapshot of a search session.
type SearchState struct {
	Query        string  `json:"query"`
	Searching    bool    `json:"searching"`
	Movies       []Movie `json:"movies"`
	HistoryDepth int     `json:"historyDepth"`
}
