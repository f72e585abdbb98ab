package metadata

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"moodstream/models"
)

// topRatedPages is how many pages of the top-rated listing feed the fallback
// suggestion rows.
const topRatedPages = 2

// externalIDWorkers bounds concurrent external-id bridge lookups.
const externalIDWorkers = 5

// Options configures a metadata Service.
type Options struct {
	OMDBAPIKey  string
	OMDBBaseURL string
	TMDBAPIKey  string
	TMDBBaseURL string
	Language    string
	CacheDir    string
	CacheTTL    int // hours
	CacheFs     afero.Fs
	HTTPClient  *http.Client
	DemoMode    bool
}

// Service fronts both movie data providers: paginated search against the
// movie-search provider and trailer/top-rated lookups against the
// video-metadata provider, with a file-backed search cache and a
// process-lifetime trailer cache.
type Service struct {
	omdb     *omdbClient
	tmdb     *tmdbClient
	searches *fileCache
	trailers *trailerCache
	inflight singleflight.Group
	demoMode bool
}

func NewService(opts Options) *Service {
	return &Service{
		omdb:     newOMDBClient(opts.OMDBAPIKey, opts.OMDBBaseURL, opts.HTTPClient),
		tmdb:     newTMDBClient(opts.TMDBAPIKey, opts.TMDBBaseURL, opts.Language, opts.HTTPClient),
		searches: newFileCache(opts.CacheFs, filepath.Join(opts.CacheDir, "metadata"), opts.CacheTTL),
		trailers: newTrailerCache(),
		demoMode: opts.DemoMode,
	}
}

// Search runs the bounded paginated fetch for a query. An empty slice is a
// valid result; only transport-level failures return an error.
func (s *Service) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Movie{}, nil
	}

	if s.demoMode {
		return demoSearch(query), nil
	}

	key := cacheKey("search", strings.ToLower(query))
	var cached []models.Movie
	if ok, _ := s.searches.get(key, &cached); ok {
		return cached, nil
	}

	movies, err := s.omdb.searchAll(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := s.searches.set(key, movies); err != nil {
		log.Printf("[metadata] failed to cache search %q: %v", query, err)
	}
	return movies, nil
}

// Trailer resolves the best trailer for a movie. Failures never propagate:
// the result degrades to an empty key with the external-search fallback URL
// populated. The outcome, positive or negative, is cached by movie id for the
// rest of the session; concurrent lookups for the same id are collapsed into
// one provider round trip.
func (s *Service) Trailer(ctx context.Context, q models.TrailerQuery) models.TrailerResult {
	key := strings.TrimSpace(q.ID)
	if key == "" {
		key = cacheKey("trailer", q.Title, q.Year)
	}

	if cached, ok := s.trailers.get(key); ok {
		return cached
	}

	v, _, _ := s.inflight.Do(key, func() (any, error) {
		if cached, ok := s.trailers.get(key); ok {
			return cached, nil
		}
		result := s.resolveTrailer(ctx, q)
		s.trailers.put(key, result)
		return result, nil
	})
	return v.(models.TrailerResult)
}

func (s *Service) resolveTrailer(ctx context.Context, q models.TrailerQuery) models.TrailerResult {
	result := models.TrailerResult{
		FallbackSearchURL: externalSearchURL(q.Title, q.Year),
	}

	if s.demoMode {
		return result
	}

	tmdbID, err := s.tmdb.searchMovie(ctx, q.Title, q.Year)
	if err != nil {
		log.Printf("[metadata] trailer search for %q failed: %v", q.Title, err)
		return result
	}

	videos, err := s.tmdb.videos(ctx, tmdbID)
	if err != nil {
		log.Printf("[metadata] trailer videos for %q failed: %v", q.Title, err)
		return result
	}

	picked, ok := pickTrailer(videos)
	if !ok {
		return result
	}

	result.Key = picked.Key
	result.Site = picked.Site
	result.Kind = picked.Type
	result.WatchURL = fmt.Sprintf("https://www.youtube.com/watch?v=%s", picked.Key)
	result.EmbedURL = fmt.Sprintf("https://www.youtube.com/embed/%s", picked.Key)
	return result
}

// pickTrailer selects, in priority order, the first YouTube trailer, else the
// first YouTube teaser, else any YouTube entry.
func pickTrailer(videos []tmdbVideo) (tmdbVideo, bool) {
	var teaser, other *tmdbVideo
	for i := range videos {
		v := &videos[i]
		if strings.TrimSpace(v.Key) == "" || !strings.EqualFold(v.Site, tmdbSiteYouTube) {
			continue
		}
		switch {
		case strings.EqualFold(v.Type, tmdbTypeTrailer):
			return *v, true
		case strings.EqualFold(v.Type, tmdbTypeTeaser):
			if teaser == nil {
				teaser = v
			}
		default:
			if other == nil {
				other = v
			}
		}
	}
	if teaser != nil {
		return *teaser, true
	}
	if other != nil {
		return *other, true
	}
	return tmdbVideo{}, false
}

// TopRated fetches the top-rated listing and bridges each entry to the search
// provider's id scheme so the rest of the pipeline can treat the rows like
// search results. Bridge failures for individual titles fall back to a
// provider-scoped synthetic id rather than dropping the row.
func (s *Service) TopRated(ctx context.Context) ([]models.Movie, error) {
	if s.demoMode {
		return demoTopRated(), nil
	}

	var entries []tmdbTopRatedEntry
	for page := 1; page <= topRatedPages; page++ {
		batch, err := s.tmdb.topRated(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}
		entries = append(entries, batch...)
	}

	movies := make([]models.Movie, len(entries))
	var mu sync.Mutex
	workers := pool.New().WithMaxGoroutines(externalIDWorkers)
	for i := range entries {
		i := i
		workers.Go(func() {
			e := entries[i]
			id, err := s.tmdb.fetchExternalID(ctx, e.ID)
			if err != nil || id == "" {
				id = fmt.Sprintf("tmdb:%d", e.ID)
			}
			m := models.Movie{
				ID:     id,
				Title:  e.Title,
				Year:   leadingYear(e.ReleaseDate),
				Poster: buildTMDBPoster(e.PosterPath),
			}
			mu.Lock()
			movies[i] = m
			mu.Unlock()
		})
	}
	workers.Wait()

	return movies, nil
}

// TrailerLookups reports how many trailer outcomes are cached; used by the
// health surface and tests.
func (s *Service) TrailerLookups() int {
	return s.trailers.len()
}

func externalSearchURL(title, year string) string {
	terms := strings.TrimSpace(title)
	if y := leadingYear(year); y != "" {
		terms += " " + y
	}
	terms += " trailer"
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(terms)
}
