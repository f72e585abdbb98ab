package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	tmdbImageBaseURL = "https://image.tmdb.org/t/p"
	// w500 is plenty for poster cards; "original" wastes memory.
	tmdbPosterSize = "w500"

	tmdbSiteYouTube = "YouTube"
	tmdbTypeTrailer = "Trailer"
	tmdbTypeTeaser  = "Teaser"
)

type tmdbClient struct {
	apiKey   string
	baseURL  string
	language string
	httpc    *http.Client

	// Rate limiting
	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newTMDBClient(apiKey, baseURL, language string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		apiKey:      strings.TrimSpace(apiKey),
		baseURL:     strings.TrimRight(baseURL, "/"),
		language:    language,
		httpc:       httpc,
		minInterval: 20 * time.Millisecond, // TMDB has generous rate limits
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

// doGET performs an HTTP GET with rate limiting and retry with exponential backoff.
func (c *tmdbClient) doGET(ctx context.Context, endpoint string, v any) error {
	var lastErr error
	backoff := 300 * time.Millisecond

	for attempt := 0; attempt < 3; attempt++ {
		c.throttleMu.Lock()
		since := time.Since(c.lastRequest)
		if since < c.minInterval {
			time.Sleep(c.minInterval - since)
		}
		c.lastRequest = time.Now()
		c.throttleMu.Unlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			lastErr = err
			log.Printf("[tmdb] http error (attempt %d/3): %v", attempt+1, err)
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			log.Printf("[tmdb] rate limited or server error (attempt %d/3): status %d", attempt+1, resp.StatusCode)
			lastErr = fmt.Errorf("tmdb request failed: %s", resp.Status)
			time.Sleep(backoff)
			backoff *= 2
			continue
		}

		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return fmt.Errorf("tmdb request failed: %s", resp.Status)
		}

		err = json.NewDecoder(resp.Body).Decode(v)
		resp.Body.Close()
		if err != nil {
			return err
		}
		return nil
	}

	return lastErr
}

func (c *tmdbClient) endpoint(parts []string, q url.Values) (string, error) {
	joined, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return "", err
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	if lang := strings.TrimSpace(c.language); lang != "" {
		q.Set("language", normalizeLanguage(lang))
	} else {
		q.Set("language", "en-US")
	}
	return joined + "?" + q.Encode(), nil
}

type tmdbSearchResponse struct {
	Results []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	} `json:"results"`
}

// searchMovie finds the provider-internal id for a title; the first candidate
// wins. Year is optional and may be a range string; only leading digits are
// used.
func (c *tmdbClient) searchMovie(ctx context.Context, title, year string) (int64, error) {
	if !c.isConfigured() {
		return 0, errors.New("tmdb api key not configured")
	}

	q := url.Values{}
	q.Set("query", title)
	if y := leadingYear(year); y != "" {
		q.Set("year", y)
	}
	endpoint, err := c.endpoint([]string{"search", "movie"}, q)
	if err != nil {
		return 0, err
	}

	var payload tmdbSearchResponse
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return 0, err
	}
	if len(payload.Results) == 0 {
		return 0, fmt.Errorf("no match for %q", title)
	}
	return payload.Results[0].ID, nil
}

type tmdbVideosResponse struct {
	Results []tmdbVideo `json:"results"`
}

type tmdbVideo struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

func (c *tmdbClient) videos(ctx context.Context, tmdbID int64) ([]tmdbVideo, error) {
	if !c.isConfigured() {
		return nil, errors.New("tmdb api key not configured")
	}

	endpoint, err := c.endpoint([]string{"movie", strconv.FormatInt(tmdbID, 10), "videos"}, nil)
	if err != nil {
		return nil, err
	}

	var payload tmdbVideosResponse
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

type tmdbTopRatedResponse struct {
	Results []tmdbTopRatedEntry `json:"results"`
}

type tmdbTopRatedEntry struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

func (c *tmdbClient) topRated(ctx context.Context, page int) ([]tmdbTopRatedEntry, error) {
	if !c.isConfigured() {
		return nil, errors.New("tmdb api key not configured")
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	endpoint, err := c.endpoint([]string{"movie", "top_rated"}, q)
	if err != nil {
		return nil, err
	}

	var payload tmdbTopRatedResponse
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

type tmdbExternalIDsResponse struct {
	IMDBID string `json:"imdb_id"`
}

// fetchExternalID bridges a TMDB movie id to the search provider's id scheme.
func (c *tmdbClient) fetchExternalID(ctx context.Context, tmdbID int64) (string, error) {
	if !c.isConfigured() {
		return "", errors.New("tmdb api key not configured")
	}

	endpoint, err := c.endpoint([]string{"movie", strconv.FormatInt(tmdbID, 10), "external_ids"}, nil)
	if err != nil {
		return "", err
	}

	var payload tmdbExternalIDsResponse
	if err := c.doGET(ctx, endpoint, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.IMDBID), nil
}

func buildTMDBPoster(imagePath string) string {
	trimmed := strings.TrimSpace(imagePath)
	if trimmed == "" {
		return ""
	}
	fullPath := path.Join(tmdbPosterSize, strings.TrimPrefix(trimmed, "/"))
	return fmt.Sprintf("%s/%s", tmdbImageBaseURL, fullPath)
}

// leadingYear extracts the leading 4-digit year from strings like "2013" or
// "2011–2013"; returns "" when no year prefix is present.
func leadingYear(year string) string {
	year = strings.TrimSpace(year)
	if len(year) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(year[:4]); err != nil {
		return ""
	}
	return year[:4]
}

func normalizeLanguage(lang string) string {
	lang = strings.ReplaceAll(lang, "_", "-")
	if len(lang) == 2 {
		return strings.ToLower(lang) + "-US"
	}
	if len(lang) >= 5 {
		return strings.ToLower(lang[:2]) + "-" + strings.ToUpper(lang[3:])
	}
	return "en-US"
}
