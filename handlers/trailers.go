package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"moodstream/models"
	metadatapkg "moodstream/services/metadata"
)

type trailerResolver interface {
	Trailer(ctx context.Context, q models.TrailerQuery) models.TrailerResult
}

var _ trailerResolver = (*metadatapkg.Service)(nil)

type TrailersHandler struct {
	Service trailerResolver
}

func NewTrailersHandler(s trailerResolver) *TrailersHandler {
	return &TrailersHandler{Service: s}
}

// Get resolves the trailer for a movie. Resolution never fails: when no
// trailer is found, the key is empty and FallbackSearchURL carries the
// external search the client should offer instead.
func (h *TrailersHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id := strings.TrimSpace(query.Get("id"))
	title := strings.TrimSpace(query.Get("title"))

	if id == "" && title == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "id or title is required"})
		return
	}

	result := h.Service.Trailer(r.Context(), models.TrailerQuery{
		ID:    id,
		Title: title,
		Year:  strings.TrimSpace(query.Get("year")),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
