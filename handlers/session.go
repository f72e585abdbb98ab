package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// clientIDHeader carries the caller's session identity. Clients that omit it
// are issued a fresh id, echoed back so they can persist it for the session.
const clientIDHeader = "X-Client-ID"

func clientID(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(clientIDHeader))
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(clientIDHeader, id)
	return id
}
