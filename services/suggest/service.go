package suggest

import (
	"context"
	"log"

	"moodstream/models"
	"moodstream/services/weather"
)

// Reason strings for the two fallback branches. The weather branch reasons
// come from the genre mapper so the explanation always matches the rule that
// fired.
const (
	reasonTopRated = "Couldn't check the weather, so here are some all-time favorites"
	reasonFallback = "Here are some adventures to get you started"
)

// Coords is a client-reported location. A nil *Coords means geolocation was
// denied or unavailable on the client side.
type Coords struct {
	Lat float64
	Lon float64
}

// catalog is the slice of the metadata service the loader needs.
type catalog interface {
	Search(ctx context.Context, query string) ([]models.Movie, error)
	TopRated(ctx context.Context) ([]models.Movie, error)
}

// conditions is the weather lookup the loader needs.
type conditions interface {
	Current(ctx context.Context, lat, lon float64) (*weather.Conditions, error)
}

// Service builds the initial "Suggested for you" rows. Every load ends in one
// of three terminal outcomes and never returns an error to the caller: the
// weather-derived genre search, the top-rated listing, or a generic keyword
// search. There are no retries across branches; each failure moves one step
// down the chain.
type Service struct {
	weather       conditions
	movies        catalog
	fallbackQuery string
}

func NewService(weatherClient conditions, movies catalog, fallbackQuery string) *Service {
	if fallbackQuery == "" {
		fallbackQuery = weather.GenreAdventure
	}
	return &Service{
		weather:       weatherClient,
		movies:        movies,
		fallbackQuery: fallbackQuery,
	}
}

// Load resolves suggestions for a client. With coordinates it tries the
// weather-derived genre first; without them, or when any step of that path
// fails, it falls back to the top-rated listing and finally to a generic
// keyword search.
func (s *Service) Load(ctx context.Context, coords *Coords) models.Suggestions {
	if coords == nil {
		log.Printf("[suggest] no location provided, using fallback path")
		return s.fallback(ctx)
	}

	cond, err := s.weather.Current(ctx, coords.Lat, coords.Lon)
	if err != nil {
		log.Printf("[suggest] weather lookup failed: %v", err)
		return s.fallback(ctx)
	}

	mood := weather.MoodFor(cond.Code, cond.Temperature)
	movies, err := s.movies.Search(ctx, mood.Genre)
	if err != nil {
		log.Printf("[suggest] genre search for %q failed: %v", mood.Genre, err)
		return s.fallback(ctx)
	}

	return models.Suggestions{
		Genre:  mood.Genre,
		Reason: mood.Reason,
		Source: models.SuggestionSourceWeather,
		Movies: movies,
	}
}

// fallback is the shared tail of branches (2) and (3): the top-rated listing,
// then a generic keyword search if that also fails. The final branch absorbs
// its own failure into an empty result set rather than surfacing an error.
func (s *Service) fallback(ctx context.Context) models.Suggestions {
	movies, err := s.movies.TopRated(ctx)
	if err == nil {
		return models.Suggestions{
			Reason: reasonTopRated,
			Source: models.SuggestionSourceTopRated,
			Movies: movies,
		}
	}
	log.Printf("[suggest] top rated fallback failed: %v", err)

	movies, err = s.movies.Search(ctx, s.fallbackQuery)
	if err != nil {
		log.Printf("[suggest] fallback search for %q failed: %v", s.fallbackQuery, err)
		movies = []models.Movie{}
	}
	return models.Suggestions{
		Genre:  s.fallbackQuery,
		Reason: reasonFallback,
		Source: models.SuggestionSourceFallback,
		Movies: movies,
	}
}
