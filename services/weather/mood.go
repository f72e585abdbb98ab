package weather

// Mood is a genre suggestion derived from current conditions, together with
// the explanation shown to the user for that branch.
type Mood struct {
	Genre  string
	Reason string
}

// The seven genre labels the mapper can produce.
const (
	GenreAdventure = "adventure"
	GenreMystery   = "mystery"
	GenreRomance   = "romance"
	GenreFantasy   = "fantasy"
	GenreAction    = "action"
	GenreFamily    = "family"
	GenreDrama     = "drama"
)

// MoodFor maps a WMO weather code and a temperature in Celsius to a genre.
// Rules are evaluated in order and the first match wins: the code ranges are
// not mutually exclusive with the temperature thresholds, and temperature is
// only consulted once every code range has failed.
func MoodFor(code int, tempC float64) Mood {
	switch {
	case code >= 0 && code <= 3:
		return Mood{GenreAdventure, "Clear skies outside, perfect for an adventure"}
	case code >= 45 && code <= 48:
		return Mood{GenreMystery, "Fog is rolling in, time for a mystery"}
	case code >= 51 && code <= 67:
		return Mood{GenreRomance, "Rainy weather calls for a romance"}
	case code >= 71 && code <= 77:
		return Mood{GenreFantasy, "Snow is falling, escape into a fantasy"}
	case tempC >= 30:
		return Mood{GenreAction, "It's scorching out there, cool off with some action"}
	case tempC <= 5:
		return Mood{GenreFamily, "Cold enough to stay in, gather round for a family film"}
	default:
		return Mood{GenreDrama, "Mild weather, a good day for a drama"}
	}
}

// Genres lists every label MoodFor can return, used by clients to render the
// genre filter row.
func Genres() []string {
	return []string{
		GenreAdventure,
		GenreMystery,
		GenreRomance,
		GenreFantasy,
		GenreAction,
		GenreFamily,
		GenreDrama,
	}
}
