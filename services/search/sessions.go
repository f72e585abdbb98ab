package search

import (
	"sync"
	"time"
)

// Sessions maps client ids to their search controllers. Controllers live in
// memory only; nothing survives a restart.
type Sessions struct {
	movies fetcher

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	controller *Controller
	lastSeen   time.Time
}

func NewSessions(movies fetcher) *Sessions {
	return &Sessions{
		movies:   movies,
		sessions: make(map[string]*session),
	}
}

// Get returns the controller for a client id, creating it on first use.
func (s *Sessions) Get(id string) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{controller: NewController(s.movies)}
		s.sessions[id] = sess
	}
	sess.lastSeen = time.Now()
	return sess.controller
}

// Prune drops sessions idle longer than maxAge and reports how many were
// removed.
func (s *Sessions) Prune(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports how many sessions are live; used by the health surface.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
