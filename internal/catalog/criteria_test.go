package catalog

import "testing"

func TestCapClamp(t *testing.T) {
	tests := []struct {
		name      string
		cap       Cap
		requested int
		expected  int
	}{
		{"zero uses default", ToolCap, 0, 5},
		{"negative uses default", MoodCap, -3, 5},
		{"within range kept", MoodCap, 12, 12},
		{"over mood cap clamped", MoodCap, 500, 20},
		{"over tool cap clamped", ToolCap, 500, 10},
		{"over browse cap clamped", BrowseCap, 10000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cap.Clamp(tt.requested); got != tt.expected {
				t.Errorf("Clamp(%d) = %d, want %d", tt.requested, got, tt.expected)
			}
		})
	}
}

func TestCompileYearPrecedence(t *testing.T) {
	c := Compile(Filters{Year: 1999, YearFrom: 1990, YearTo: 2000}, BrowseCap)

	if c.Year != 1999 {
		t.Errorf("expected single year 1999, got %d", c.Year)
	}
	if c.YearFrom != 0 || c.YearTo != 0 {
		t.Errorf("expected range dropped when single year given, got [%d, %d]", c.YearFrom, c.YearTo)
	}
}

func TestCompileYearRange(t *testing.T) {
	c := Compile(Filters{YearFrom: 1990, YearTo: 2000}, BrowseCap)

	if c.Year != 0 {
		t.Errorf("expected no single year, got %d", c.Year)
	}
	if c.YearFrom != 1990 || c.YearTo != 2000 {
		t.Errorf("expected range [1990, 2000], got [%d, %d]", c.YearFrom, c.YearTo)
	}
}

func TestCompileOmitsEmptyFields(t *testing.T) {
	c := Compile(Filters{Genres: []string{"", ""}}, BrowseCap)

	if len(c.Genres) != 0 {
		t.Errorf("expected empty genres omitted, got %v", c.Genres)
	}
	if c.HasRating {
		t.Error("expected no rating threshold when none requested")
	}
}

func TestCompileDefaultSort(t *testing.T) {
	c := Compile(Filters{}, BrowseCap)

	expected := []SortField{
		{Key: "rating", Desc: true},
		{Key: "popularity", Desc: true},
		{Key: "id", Desc: false},
	}
	assertSort(t, c.Sort, expected)
}

func TestCompileUnknownSortKeyFallsBack(t *testing.T) {
	c := Compile(Filters{SortBy: "plot; DROP TABLE movies", SortOrder: "asc"}, BrowseCap)

	expected := []SortField{
		{Key: "rating", Desc: true},
		{Key: "popularity", Desc: true},
		{Key: "id", Desc: false},
	}
	assertSort(t, c.Sort, expected)
}

func TestCompileExplicitSortKeepsTieBreaks(t *testing.T) {
	c := Compile(Filters{SortBy: "year", SortOrder: "asc"}, BrowseCap)

	expected := []SortField{
		{Key: "year", Desc: false},
		{Key: "popularity", Desc: true},
		{Key: "id", Desc: false},
	}
	assertSort(t, c.Sort, expected)
}

func TestCompilePagination(t *testing.T) {
	c := Compile(Filters{Page: 3, Limit: 10}, BrowseCap)

	if c.Limit != 10 {
		t.Errorf("expected limit 10, got %d", c.Limit)
	}
	if c.Offset != 20 {
		t.Errorf("expected offset 20 for page 3, got %d", c.Offset)
	}
}

func TestCompileMinRating(t *testing.T) {
	c := Compile(Filters{MinRating: 7.5}, BrowseCap)

	if !c.HasRating || c.MinRating != 7.5 {
		t.Errorf("expected rating threshold 7.5, got %v (%v)", c.MinRating, c.HasRating)
	}
}

func assertSort(t *testing.T, got, expected []SortField) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d sort fields, got %v", len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("sort[%d] = %+v, want %+v", i, got[i], expected[i])
		}
	}
}
