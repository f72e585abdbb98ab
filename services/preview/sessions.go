package preview

import (
	"sync"
	"time"
)

// Sessions maps client ids to their preview controllers.
type Sessions struct {
	cfg      Config
	trailers trailerSource

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	controller *Controller
	lastSeen   time.Time
}

func NewSessions(cfg Config, trailers trailerSource) *Sessions {
	return &Sessions{
		cfg:      cfg,
		trailers: trailers,
		sessions: make(map[string]*session),
	}
}

// Get returns the controller for a client id, creating it on first use.
func (s *Sessions) Get(id string) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{controller: NewController(s.cfg, s.trailers)}
		s.sessions[id] = sess
	}
	sess.lastSeen = time.Now()
	return sess.controller
}

// Prune closes and drops sessions idle longer than maxAge.
func (s *Sessions) Prune(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			sess.controller.Close(CloseCauseControl)
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports how many sessions are live.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
