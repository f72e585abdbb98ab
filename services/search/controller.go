package search

import (
	"context"
	"strings"
	"sync"

	"moodstream/models"
)

// fetcher is the slice of the metadata service the controller needs.
type fetcher interface {
	Search(ctx context.Context, query string) ([]models.Movie, error)
}

// Controller owns one client's search state: the current query and results,
// the searching flag, and a back-navigable history stack of superseded
// searches. Submits that overlap are fenced by a generation counter so a
// superseded fetch's results are discarded instead of clobbering a newer
// search.
type Controller struct {
	movies fetcher

	mu         sync.Mutex
	query      string
	results    []models.Movie
	searching  bool
	active     bool // a search result set is currently displayed
	history    []models.HistoryEntry
	generation uint64
}

func NewController(movies fetcher) *Controller {
	return &Controller{movies: movies}
}

// Submit runs a search for query. A whitespace-only query is a no-op: no
// request is issued and the prior state is returned untouched. A new search
// pushes the currently displayed one onto the history stack first.
func (c *Controller) Submit(ctx context.Context, query string) (models.SearchState, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Snapshot(), nil
	}

	c.mu.Lock()
	if c.active {
		c.history = append(c.history, models.HistoryEntry{Query: c.query, Movies: c.results})
	}
	c.query = query
	c.results = nil
	c.searching = true
	c.active = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	movies, err := c.movies.Search(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// A newer submit superseded this fetch; drop the result.
		return c.snapshotLocked(), nil
	}
	c.searching = false
	if err != nil {
		c.results = []models.Movie{}
		return c.snapshotLocked(), err
	}
	c.results = movies
	return c.snapshotLocked(), nil
}

// SelectGenre behaves like a search whose query is the genre keyword; any
// free-text query currently displayed is superseded the same way.
func (c *Controller) SelectGenre(ctx context.Context, genre string) (models.SearchState, error) {
	return c.Submit(ctx, genre)
}

// Back pops the most recent history entry and restores it verbatim. With an
// empty stack it resets to the initial suggestions view: query cleared, no
// results displayed.
func (c *Controller) Back() models.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++ // an in-flight submit no longer owns the view
	c.searching = false

	if n := len(c.history); n > 0 {
		entry := c.history[n-1]
		c.history = c.history[:n-1]
		c.query = entry.Query
		c.results = entry.Movies
		c.active = true
		return c.snapshotLocked()
	}

	c.query = ""
	c.results = nil
	c.active = false
	return c.snapshotLocked()
}

// Snapshot reports the current state without mutating it.
func (c *Controller) Snapshot() models.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() models.SearchState {
	movies := make([]models.Movie, len(c.results))
	copy(movies, c.results)
	return models.SearchState{
		Query:        c.query,
		Searching:    c.searching,
		Movies:       movies,
		HistoryDepth: len(c.history),
	}
}
