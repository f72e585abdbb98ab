package preview

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodstream/models"
)

type fakeTrailers struct {
	calls   atomic.Int64
	mu      sync.Mutex
	results map[string]models.TrailerResult
	block   map[string]chan struct{} // optional gate per movie id
}

func newFakeTrailers() *fakeTrailers {
	return &fakeTrailers{
		results: map[string]models.TrailerResult{},
		block:   map[string]chan struct{}{},
	}
}

func (f *fakeTrailers) Trailer(ctx context.Context, q models.TrailerQuery) models.TrailerResult {
	f.calls.Add(1)
	f.mu.Lock()
	gate := f.block[q.ID]
	result, ok := f.results[q.ID]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if !ok {
		result = models.TrailerResult{FallbackSearchURL: "https://www.youtube.com/results?search_query=" + q.Title}
	}
	return result
}

func testConfig() Config {
	return Config{
		ShowDelay:  25 * time.Millisecond,
		CloseDelay: 20 * time.Millisecond,
		PanelWidth: 360,
		EdgeMargin: 10,
	}
}

func testHover(id string, mode models.PreviewMode) Hover {
	return Hover{
		Movie:    models.TrailerQuery{ID: id, Title: "Movie " + id, Year: "2001"},
		Card:     models.Rect{Top: 200, Left: 400, Width: 180, Height: 260},
		Viewport: models.Viewport{Width: 1280, Height: 800},
		Mode:     mode,
	}
}

func waitVisible(t *testing.T, c *Controller) {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.Snapshot().Phase == PhaseVisible
	}, time.Second, time.Millisecond, "preview never became visible")
}

func TestLeaveBeforeShowDelayNeverShowsOrFetches(t *testing.T) {
	f := newFakeTrailers()
	c := NewController(testConfig(), f)

	state := c.HoverEnter(testHover("tt0000001", models.PreviewModeInline))
	assert.Equal(t, PhasePending, state.Phase)

	state = c.HoverLeave()
	assert.Equal(t, PhaseIdle, state.Phase)

	// Wait well past the show delay to make sure the cancelled timer stays dead.
	time.Sleep(3 * testConfig().ShowDelay)
	assert.Equal(t, PhaseIdle, c.Snapshot().Phase)
	assert.EqualValues(t, 0, f.calls.Load(), "no trailer fetch before the delay elapses")
}

func TestShowDelayElapsedDisplaysPreviewAndFetchesTrailer(t *testing.T) {
	f := newFakeTrailers()
	f.results["tt0000001"] = models.TrailerResult{
		Key:               "abc123",
		Site:              "YouTube",
		Kind:              "Trailer",
		FallbackSearchURL: "https://www.youtube.com/results?search_query=x",
	}
	c := NewController(testConfig(), f)

	c.HoverEnter(testHover("tt0000001", models.PreviewModeInline))
	waitVisible(t, c)

	require.Eventually(t, func() bool {
		return !c.Snapshot().Trailer.Loading
	}, time.Second, time.Millisecond, "trailer lookup never completed")

	state := c.Snapshot()
	assert.Equal(t, "abc123", state.Trailer.Key)
	assert.False(t, state.Trailer.Error)
	assert.Equal(t, "tt0000001", state.MovieID)
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestEscapeClosesImmediately(t *testing.T) {
	f := newFakeTrailers()
	c := NewController(testConfig(), f)

	c.HoverEnter(testHover("tt0000001", models.PreviewModeInline))
	waitVisible(t, c)

	state := c.Close(CloseCauseEscape)
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Empty(t, state.MovieID)
}

func TestInlineGracePeriodAndPanelHover(t *testing.T) {
	cfg := testConfig()
	f := newFakeTrailers()
	c := NewController(cfg, f)

	c.HoverEnter(testHover("tt0000001", models.PreviewModeInline))
	waitVisible(t, c)

	// Reaching the panel within the grace period keeps the preview open.
	c.HoverLeave()
	c.HoverPanel()
	time.Sleep(3 * cfg.CloseDelay)
	assert.Equal(t, PhaseVisible, c.Snapshot().Phase, "panel hover must cancel the close timer")

	// Leaving for good closes after the grace period.
	c.HoverLeave()
	require.Eventually(t, func() bool {
		return c.Snapshot().Phase == PhaseIdle
	}, time.Second, time.Millisecond, "inline preview never closed after leave")
}

func TestModalIgnoresHoverLeave(t *testing.T) {
	cfg := testConfig()
	f := newFakeTrailers()
	c := NewController(cfg, f)

	c.HoverEnter(testHover("tt0000001", models.PreviewModeModal))
	waitVisible(t, c)

	c.HoverLeave()
	time.Sleep(3 * cfg.CloseDelay)
	assert.Equal(t, PhaseVisible, c.Snapshot().Phase, "modal must survive hover-leave past the grace period")

	state := c.Close(CloseCauseBackdrop)
	assert.Equal(t, PhaseIdle, state.Phase)
}

func TestNewHoverCancelsPreviousCard(t *testing.T) {
	f := newFakeTrailers()
	c := NewController(testConfig(), f)

	c.HoverEnter(testHover("tt0000001", models.PreviewModeInline))
	// Switch targets before the first card's show delay elapses.
	c.HoverEnter(testHover("tt0000002", models.PreviewModeInline))

	waitVisible(t, c)
	require.Eventually(t, func() bool {
		return !c.Snapshot().Trailer.Loading
	}, time.Second, time.Millisecond)

	state := c.Snapshot()
	assert.Equal(t, "tt0000002", state.MovieID)
	assert.EqualValues(t, 1, f.calls.Load(), "only the second card may fetch")
}

func TestReenteringVisibleCardCancelsClose(t *testing.T) {
	cfg := testConfig()
	f := newFakeTrailers()
	c := NewController(cfg, f)

	h := testHover("tt0000001", models.PreviewModeInline)
	c.HoverEnter(h)
	waitVisible(t, c)

	c.HoverLeave()
	c.HoverEnter(h) // pointer came back to the same card
	time.Sleep(3 * cfg.CloseDelay)
	assert.Equal(t, PhaseVisible, c.Snapshot().Phase)
	assert.EqualValues(t, 1, f.calls.Load(), "re-entering the visible card must not refetch")
}

func TestFailedLookupSurfacesFallbackOnly(t *testing.T) {
	f := newFakeTrailers() // no configured result: empty key, fallback URL
	c := NewController(testConfig(), f)

	c.HoverEnter(testHover("tt0000001", models.PreviewModeInline))
	waitVisible(t, c)
	require.Eventually(t, func() bool {
		return !c.Snapshot().Trailer.Loading
	}, time.Second, time.Millisecond)

	state := c.Snapshot()
	assert.Empty(t, state.Trailer.Key)
	assert.True(t, state.Trailer.Error)
	assert.NotEmpty(t, state.Result.FallbackSearchURL)
}

func TestLateLookupForSupersededTargetIsDropped(t *testing.T) {
	f := newFakeTrailers()
	gate := make(chan struct{})
	f.block["tt0000001"] = gate
	f.results["tt0000001"] = models.TrailerResult{Key: "stale"}
	f.results["tt0000002"] = models.TrailerResult{Key: "fresh"}
	c := NewController(testConfig(), f)

	c.HoverEnter(testHover("tt0000001", models.PreviewModeInline))
	waitVisible(t, c)

	// Switch targets while the first lookup is blocked in flight.
	c.HoverEnter(testHover("tt0000002", models.PreviewModeInline))
	close(gate)

	require.Eventually(t, func() bool {
		s := c.Snapshot()
		return s.Phase == PhaseVisible && !s.Trailer.Loading
	}, time.Second, time.Millisecond)

	state := c.Snapshot()
	assert.Equal(t, "tt0000002", state.MovieID)
	assert.Equal(t, "fresh", state.Trailer.Key, "stale lookup must not attach to the new target")
}

func TestSessionsIsolateClients(t *testing.T) {
	f := newFakeTrailers()
	s := NewSessions(testConfig(), f)

	a := s.Get("client-a")
	b := s.Get("client-b")
	require.NotSame(t, a, b)

	a.HoverEnter(testHover("tt0000001", models.PreviewModeInline))
	assert.Equal(t, PhasePending, a.Snapshot().Phase)
	assert.Equal(t, PhaseIdle, b.Snapshot().Phase)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Prune(0))
	assert.Equal(t, 0, s.Len())
}
