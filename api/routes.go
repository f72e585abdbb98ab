package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"moodstream/handlers"
)

// Handlers bundles the endpoint handlers Register mounts.
type Handlers struct {
	Suggestions *handlers.SuggestionsHandler
	Search      *handlers.SearchHandler
	Preview     *handlers.PreviewHandler
	Trailers    *handlers.TrailersHandler
}

// handleOptions answers CORS preflight for routes registered with explicit
// methods; the CORS headers themselves come from the router middleware.
func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Register mounts the API under /api on the provided router. A nil limiter
// disables rate limiting (tests).
func Register(router *mux.Router, h Handlers, limiter *RateLimiter) {
	api := router.PathPrefix("/api").Subrouter()
	if limiter != nil {
		api.Use(limiter.Middleware)
	}

	api.HandleFunc("/suggestions", h.Suggestions.Get).Methods(http.MethodGet)
	api.HandleFunc("/suggestions", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/genres", h.Suggestions.Genres).Methods(http.MethodGet)
	api.HandleFunc("/genres", handleOptions).Methods(http.MethodOptions)

	api.HandleFunc("/search", h.Search.Submit).Methods(http.MethodPost)
	api.HandleFunc("/search", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/search/back", h.Search.Back).Methods(http.MethodPost)
	api.HandleFunc("/search/back", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/search/genre", h.Search.Genre).Methods(http.MethodPost)
	api.HandleFunc("/search/genre", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/search/state", h.Search.State).Methods(http.MethodGet)
	api.HandleFunc("/search/state", handleOptions).Methods(http.MethodOptions)

	api.HandleFunc("/preview/hover-enter", h.Preview.HoverEnter).Methods(http.MethodPost)
	api.HandleFunc("/preview/hover-enter", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/preview/hover-leave", h.Preview.HoverLeave).Methods(http.MethodPost)
	api.HandleFunc("/preview/hover-leave", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/preview/panel-enter", h.Preview.PanelEnter).Methods(http.MethodPost)
	api.HandleFunc("/preview/panel-enter", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/preview/close", h.Preview.Close).Methods(http.MethodPost)
	api.HandleFunc("/preview/close", handleOptions).Methods(http.MethodOptions)
	api.HandleFunc("/preview/state", h.Preview.State).Methods(http.MethodGet)
	api.HandleFunc("/preview/state", handleOptions).Methods(http.MethodOptions)

	api.HandleFunc("/trailers", h.Trailers.Get).Methods(http.MethodGet)
	api.HandleFunc("/trailers", handleOptions).Methods(http.MethodOptions)
}
