package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"moodstream/models"
)

// maxSearchPages bounds the fetch-until-empty loop regardless of what the
// provider reports, capping worst-case latency and request volume.
const maxSearchPages = 10

const omdbNotAvailable = "N/A"

type omdbClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client

	// Rate limiting
	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newOMDBClient(apiKey, baseURL string, httpc *http.Client) *omdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &omdbClient{
		apiKey:      strings.TrimSpace(apiKey),
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpc:       httpc,
		minInterval: 50 * time.Millisecond,
	}
}

func (c *omdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

type omdbSearchResponse struct {
	// Search is a pointer so a page past the end of the data, which omits the
	// field entirely, is distinguishable from an empty page.
	Search *[]omdbSearchEntry `json:"Search"`
	Error  string             `json:"Error"`
}

type omdbSearchEntry struct {
	IMDBID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
}

// searchPage fetches one page of search results. The second return value is
// false when the provider signalled end-of-data by omitting the results
// field; a network or decode failure is returned as an error instead.
func (c *omdbClient) searchPage(ctx context.Context, query string, page int) ([]models.Movie, bool, error) {
	if !c.isConfigured() {
		return nil, false, errors.New("omdb api key not configured")
	}

	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("s", query)
	q.Set("page", strconv.Itoa(page))
	endpoint := c.baseURL + "/?" + q.Encode()

	var payload omdbSearchResponse
	err := retry.Do(
		func() error {
			c.throttle()
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("omdb search failed: %s", resp.Status)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(fmt.Errorf("omdb search failed: %s", resp.Status))
			}
			payload = omdbSearchResponse{}
			return json.NewDecoder(resp.Body).Decode(&payload)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, false, err
	}

	if payload.Search == nil {
		return nil, false, nil
	}

	movies := make([]models.Movie, 0, len(*payload.Search))
	for _, e := range *payload.Search {
		id := strings.TrimSpace(e.IMDBID)
		if id == "" {
			continue
		}
		poster := strings.TrimSpace(e.Poster)
		if poster == omdbNotAvailable {
			poster = ""
		}
		movies = append(movies, models.Movie{
			ID:     id,
			Title:  e.Title,
			Year:   e.Year,
			Poster: poster,
		})
	}
	return movies, true, nil
}

// searchAll accumulates pages 1, 2, 3, … in order until the provider signals
// end-of-data or the page ceiling is reached. An empty slice with a nil error
// is a valid "no results" outcome.
func (c *omdbClient) searchAll(ctx context.Context, query string) ([]models.Movie, error) {
	all := []models.Movie{}
	for page := 1; page <= maxSearchPages; page++ {
		movies, more, err := c.searchPage(ctx, query, page)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		all = append(all, movies...)
	}
	return all, nil
}

func (c *omdbClient) throttle() {
	c.throttleMu.Lock()
	since := time.Since(c.lastRequest)
	if since < c.minInterval {
		time.Sleep(c.minInterval - since)
	}
	c.lastRequest = time.Now()
	c.throttleMu.Unlock()
}
