package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"moodstream/models"
	"moodstream/services/preview"
)

type PreviewHandler struct {
	Sessions *preview.Sessions
}

func NewPreviewHandler(sessions *preview.Sessions) *PreviewHandler {
	return &PreviewHandler{Sessions: sessions}
}

type hoverEnterRequest struct {
	Movie struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Year  string `json:"year"`
	} `json:"movie"`
	Card     models.Rect        `json:"card"`
	Viewport models.Viewport    `json:"viewport"`
	Mode     models.PreviewMode `json:"mode"`
}

type closeRequest struct {
	Cause string `json:"cause"`
}

// HoverEnter arms the show timer for the hovered card. Hovering a new card
// while another is pending or visible cancels the previous card outright.
func (h *PreviewHandler) HoverEnter(w http.ResponseWriter, r *http.Request) {
	var req hoverEnterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Movie.ID) == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "movie id is required"})
		return
	}
	if req.Mode != models.PreviewModeModal {
		req.Mode = models.PreviewModeInline
	}

	controller := h.Sessions.Get(clientID(w, r))
	state := controller.HoverEnter(preview.Hover{
		Movie: models.TrailerQuery{
			ID:    req.Movie.ID,
			Title: req.Movie.Title,
			Year:  req.Movie.Year,
		},
		Card:     req.Card,
		Viewport: req.Viewport,
		Mode:     req.Mode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// HoverLeave reports the pointer leaving the hovered card.
func (h *PreviewHandler) HoverLeave(w http.ResponseWriter, r *http.Request) {
	controller := h.Sessions.Get(clientID(w, r))
	state := controller.HoverLeave()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// PanelEnter reports the pointer reaching the open preview panel, cancelling
// the inline-mode close grace timer.
func (h *PreviewHandler) PanelEnter(w http.ResponseWriter, r *http.Request) {
	controller := h.Sessions.Get(clientID(w, r))
	state := controller.HoverPanel()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// Close closes the preview immediately. The cause (escape, backdrop,
// control) is informational; every explicit close bypasses the grace timer.
func (h *PreviewHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Cause = string(preview.CloseCauseControl)
	}

	controller := h.Sessions.Get(clientID(w, r))
	state := controller.Close(preview.CloseCause(req.Cause))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// State reports the session's preview state, including trailer lookup
// progress once the preview is visible.
func (h *PreviewHandler) State(w http.ResponseWriter, r *http.Request) {
	controller := h.Sessions.Get(clientID(w, r))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(controller.Snapshot())
}
