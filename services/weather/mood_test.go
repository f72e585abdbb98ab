package weather

import "testing"

func TestMoodForCodeRanges(t *testing.T) {
	// For every code inside a range the genre must hold regardless of
	// temperature, because code rules run before temperature rules.
	temps := []float64{-20, 0, 5, 17, 30, 45}

	ranges := []struct {
		lo, hi int
		genre  string
	}{
		{0, 3, GenreAdventure},
		{45, 48, GenreMystery},
		{51, 67, GenreRomance},
		{71, 77, GenreFantasy},
	}

	for _, r := range ranges {
		for code := r.lo; code <= r.hi; code++ {
			for _, temp := range temps {
				if got := MoodFor(code, temp); got.Genre != r.genre {
					t.Fatalf("MoodFor(%d, %v) = %q, want %q", code, temp, got.Genre, r.genre)
				}
			}
		}
	}
}

func TestMoodForTemperatureFallthrough(t *testing.T) {
	// Codes outside every range fall through to the temperature checks.
	outsideCodes := []int{4, 30, 44, 49, 50, 68, 70, 78, 95, 99, -1}

	for _, code := range outsideCodes {
		if got := MoodFor(code, 30); got.Genre != GenreAction {
			t.Fatalf("MoodFor(%d, 30) = %q, want action", code, got.Genre)
		}
		if got := MoodFor(code, 35.5); got.Genre != GenreAction {
			t.Fatalf("MoodFor(%d, 35.5) = %q, want action", code, got.Genre)
		}
		if got := MoodFor(code, 5); got.Genre != GenreFamily {
			t.Fatalf("MoodFor(%d, 5) = %q, want family", code, got.Genre)
		}
		if got := MoodFor(code, -12); got.Genre != GenreFamily {
			t.Fatalf("MoodFor(%d, -12) = %q, want family", code, got.Genre)
		}
		if got := MoodFor(code, 18); got.Genre != GenreDrama {
			t.Fatalf("MoodFor(%d, 18) = %q, want drama", code, got.Genre)
		}
	}
}

func TestMoodForCodeBeatsTemperature(t *testing.T) {
	// Code 0 with a scorching temperature still maps to adventure: ordering
	// matters because the ranges are not mutually exclusive by construction.
	if got := MoodFor(0, 40); got.Genre != GenreAdventure {
		t.Fatalf("MoodFor(0, 40) = %q, want adventure", got.Genre)
	}
	if got := MoodFor(71, 35); got.Genre != GenreFantasy {
		t.Fatalf("MoodFor(71, 35) = %q, want fantasy", got.Genre)
	}
}

func TestMoodReasonsAreDistinct(t *testing.T) {
	seen := map[string]string{}
	cases := []struct {
		code int
		temp float64
	}{
		{0, 20}, {45, 20}, {51, 20}, {71, 20}, {80, 31}, {80, 2}, {80, 15},
	}
	for _, c := range cases {
		m := MoodFor(c.code, c.temp)
		if m.Reason == "" {
			t.Fatalf("MoodFor(%d, %v) has empty reason", c.code, c.temp)
		}
		if prior, ok := seen[m.Reason]; ok && prior != m.Genre {
			t.Fatalf("reason %q shared by %q and %q", m.Reason, prior, m.Genre)
		}
		seen[m.Reason] = m.Genre
	}
	if len(seen) != 7 {
		t.Fatalf("expected 7 distinct reasons, got %d", len(seen))
	}
}

func TestGenresListsAllSeven(t *testing.T) {
	genres := Genres()
	if len(genres) != 7 {
		t.Fatalf("expected 7 genres, got %d", len(genres))
	}
	want := map[string]bool{
		GenreAdventure: true, GenreMystery: true, GenreRomance: true,
		GenreFantasy: true, GenreAction: true, GenreFamily: true, GenreDrama: true,
	}
	for _, g := range genres {
		if !want[g] {
			t.Fatalf("unexpected genre %q", g)
		}
		delete(want, g)
	}
}
