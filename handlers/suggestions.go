package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"moodstream/models"
	"moodstream/services/suggest"
	"moodstream/services/weather"
)

type suggestionLoader interface {
	Load(ctx context.Context, coords *suggest.Coords) models.Suggestions
}

var _ suggestionLoader = (*suggest.Service)(nil)

type SuggestionsHandler struct {
	Loader suggestionLoader
}

func NewSuggestionsHandler(loader suggestionLoader) *SuggestionsHandler {
	return &SuggestionsHandler{Loader: loader}
}

// Get serves the initial suggestion rows. Location arrives as lat/lon query
// parameters; their absence means the client's geolocation was denied or
// unavailable and selects the fallback branch. Loading never fails, so this
// endpoint never returns an error status.
func (h *SuggestionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var coords *suggest.Coords
	latStr := strings.TrimSpace(query.Get("lat"))
	lonStr := strings.TrimSpace(query.Get("lon"))
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr == nil && lonErr == nil {
			coords = &suggest.Coords{Lat: lat, Lon: lon}
		}
	}

	suggestions := h.Loader.Load(r.Context(), coords)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggestions)
}

// Genres lists the genre filter labels in their display order.
func (h *SuggestionsHandler) Genres(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"genres": weather.Genres()})
}
