package preview

import (
	"context"
	"sync"
	"time"

	"moodstream/models"
)

// Phase is the preview lifecycle state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
	PhaseVisible Phase = "visible"
)

// CloseCause labels the explicit action that closed a visible preview.
type CloseCause string

const (
	CloseCauseEscape   CloseCause = "escape"
	CloseCauseBackdrop CloseCause = "backdrop"
	CloseCauseControl  CloseCause = "control"
)

// Config holds the hover timing and panel geometry. Tests shorten the delays;
// production values come from settings.
type Config struct {
	ShowDelay  time.Duration
	CloseDelay time.Duration
	PanelWidth float64
	EdgeMargin float64
}

// trailerSource is the slice of the metadata service the controller needs.
type trailerSource interface {
	Trailer(ctx context.Context, q models.TrailerQuery) models.TrailerResult
}

// State is the wire snapshot of a preview session.
type State struct {
	Phase    Phase                `json:"phase"`
	MovieID  string               `json:"movieId,omitempty"`
	Mode     models.PreviewMode   `json:"mode,omitempty"`
	Position models.Position      `json:"position"`
	Trailer  models.TrailerState  `json:"trailer"`
	Result   models.TrailerResult `json:"result"`
}

// Hover describes a hover-enter event: the movie under the pointer, its card
// rectangle, the viewport, and the display mode the client renders in.
type Hover struct {
	Movie    models.TrailerQuery
	Card     models.Rect
	Viewport models.Viewport
	Mode     models.PreviewMode
}

// Controller runs one client's hover preview state machine:
// idle → pending (show timer armed) → visible (position computed, trailer
// lookup started) → idle. At most one card is pending or visible at a time;
// a hover on a new card cancels the previous card's timers outright. Timer
// callbacks are fenced by a generation counter so a cancelled timer that
// already fired cannot mutate a newer hover's state.
type Controller struct {
	cfg      Config
	trailers trailerSource

	mu         sync.Mutex
	phase      Phase
	hover      Hover
	position   models.Position
	trailer    models.TrailerState
	result     models.TrailerResult
	generation uint64
	showTimer  *time.Timer
	closeTimer *time.Timer
}

func NewController(cfg Config, trailers trailerSource) *Controller {
	if cfg.ShowDelay <= 0 {
		cfg.ShowDelay = 700 * time.Millisecond
	}
	if cfg.CloseDelay <= 0 {
		cfg.CloseDelay = 300 * time.Millisecond
	}
	if cfg.PanelWidth <= 0 {
		cfg.PanelWidth = 360
	}
	if cfg.EdgeMargin <= 0 {
		cfg.EdgeMargin = 10
	}
	return &Controller{cfg: cfg, trailers: trailers, phase: PhaseIdle}
}

// HoverEnter starts the show countdown for a card. Entering the card that is
// already visible just cancels a pending close. Entering a different card
// cancels whatever the previous card had going and restarts from pending.
func (c *Controller) HoverEnter(h Hover) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseVisible && c.hover.Movie.ID == h.Movie.ID {
		c.stopCloseTimerLocked()
		return c.stateLocked()
	}

	c.resetLocked()
	c.hover = h
	c.phase = PhasePending
	gen := c.generation
	c.showTimer = time.AfterFunc(c.cfg.ShowDelay, func() { c.show(gen) })
	return c.stateLocked()
}

// HoverLeave handles the pointer leaving the card. Before the show delay
// elapses it cancels the pending preview entirely. While visible, inline mode
// arms the close grace timer; modal mode ignores the event.
func (c *Controller) HoverLeave() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhasePending:
		c.resetLocked()
	case PhaseVisible:
		if c.hover.Mode == models.PreviewModeModal {
			break
		}
		c.stopCloseTimerLocked()
		gen := c.generation
		c.closeTimer = time.AfterFunc(c.cfg.CloseDelay, func() { c.closeIfCurrent(gen) })
	}
	return c.stateLocked()
}

// HoverPanel handles the pointer reaching the preview panel itself within the
// grace period: the armed close timer is cancelled and the preview stays open.
func (c *Controller) HoverPanel() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseVisible {
		c.stopCloseTimerLocked()
	}
	return c.stateLocked()
}

// Close closes the preview immediately, bypassing any grace timer. The cause
// is accepted for all explicit actions (Escape, backdrop click, close
// control) and handled identically.
func (c *Controller) Close(cause CloseCause) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	return c.stateLocked()
}

// Snapshot reports the current state without mutating it.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// show is the show-timer callback: compute the panel position from the card
// rectangle, go visible, and start the trailer lookup.
func (c *Controller) show(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhasePending {
		c.mu.Unlock()
		return
	}
	h := c.hover
	c.position = positionFor(h.Mode, h.Card, h.Viewport, c.cfg.PanelWidth, c.cfg.EdgeMargin)
	c.phase = PhaseVisible
	c.trailer = models.TrailerState{Loading: true}
	c.result = models.TrailerResult{}
	c.mu.Unlock()

	// The lookup outlives the hover request that armed the timer, so it runs
	// on its own context; the resolver degrades instead of erroring.
	result := c.trailers.Trailer(context.Background(), h.Movie)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// Target changed while the lookup was in flight; drop it.
		return
	}
	c.result = result
	c.trailer = models.TrailerState{
		Key:     result.Key,
		Loading: false,
		Error:   result.Key == "",
	}
}

// closeIfCurrent is the close-timer callback.
func (c *Controller) closeIfCurrent(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.phase != PhaseVisible {
		return
	}
	c.resetLocked()
}

// resetLocked returns to idle, invalidating outstanding timer callbacks and
// discarding the per-hover trailer state.
func (c *Controller) resetLocked() {
	c.generation++
	if c.showTimer != nil {
		c.showTimer.Stop()
		c.showTimer = nil
	}
	c.stopCloseTimerLocked()
	c.phase = PhaseIdle
	c.hover = Hover{}
	c.position = models.Position{}
	c.trailer = models.TrailerState{}
	c.result = models.TrailerResult{}
}

func (c *Controller) stopCloseTimerLocked() {
	if c.closeTimer != nil {
		c.closeTimer.Stop()
		c.closeTimer = nil
	}
}

func (c *Controller) stateLocked() State {
	return State{
		Phase:    c.phase,
		MovieID:  c.hover.Movie.ID,
		Mode:     c.hover.Mode,
		Position: c.position,
		Trailer:  c.trailer,
		Result:   c.result,
	}
}
