package metadata

import (
	"strings"

	"moodstream/models"
)

// Curated public domain titles served when demo mode is enabled, so the UI is
// explorable without provider API keys.
var demoMovies = []models.Movie{
	{ID: "tt0063350", Title: "Night of the Living Dead", Year: "1968"},
	{ID: "tt0052646", Title: "The Brain That Wouldn't Die", Year: "1962"},
	{ID: "tt0037638", Title: "Detour", Year: "1945"},
	{ID: "tt0055830", Title: "Carnival of Souls", Year: "1962"},
	{ID: "tt0045826", Title: "The Hitch-Hiker", Year: "1953"},
	{ID: "tt0054443", Title: "The Little Shop of Horrors", Year: "1960"},
	{ID: "tt0029992", Title: "A Star Is Born", Year: "1937"},
	{ID: "tt0033717", Title: "Meet John Doe", Year: "1941"},
}

func demoSearch(query string) []models.Movie {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := []models.Movie{}
	for _, m := range demoMovies {
		if strings.Contains(strings.ToLower(m.Title), query) {
			matched = append(matched, m)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	// Genre keywords won't substring-match curated titles; return the full
	// set so every demo search shows rows.
	return append([]models.Movie{}, demoMovies...)
}

func demoTopRated() []models.Movie {
	return append([]models.Movie{}, demoMovies...)
}
