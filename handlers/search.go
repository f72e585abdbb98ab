package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"moodstream/services/search"
)

type SearchHandler struct {
	Sessions *search.Sessions
}

func NewSearchHandler(sessions *search.Sessions) *SearchHandler {
	return &SearchHandler{Sessions: sessions}
}

type submitRequest struct {
	Query string `json:"query"`
}

type genreRequest struct {
	Genre string `json:"genre"`
}

// Submit runs a search in the caller's session and returns the resulting
// state. A whitespace-only query is a no-op and returns the prior state
// unchanged.
func (h *SearchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
		return
	}

	controller := h.Sessions.Get(clientID(w, r))
	state, err := controller.Submit(r.Context(), req.Query)
	if err != nil {
		log.Printf("[search] submit %q failed: %v", req.Query, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// Genre applies a genre filter: a search whose query is the genre keyword,
// superseding any free-text query.
func (h *SearchHandler) Genre(w http.ResponseWriter, r *http.Request) {
	var req genreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
		return
	}

	controller := h.Sessions.Get(clientID(w, r))
	state, err := controller.SelectGenre(r.Context(), req.Genre)
	if err != nil {
		log.Printf("[search] genre %q failed: %v", req.Genre, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// Back pops the session's history stack, restoring the previous search
// verbatim, or resets to the initial suggestions view when the stack is
// empty.
func (h *SearchHandler) Back(w http.ResponseWriter, r *http.Request) {
	controller := h.Sessions.Get(clientID(w, r))
	state := controller.Back()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// State reports the session's current search state without mutating it.
func (h *SearchHandler) State(w http.ResponseWriter, r *http.Request) {
	controller := h.Sessions.Get(clientID(w, r))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(controller.Snapshot())
}
