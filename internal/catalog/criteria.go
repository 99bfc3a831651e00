// Package catalog compiles raw filter input into canonical store queries
// and executes them: browsing, mood recommendations, similarity lookups
// and the search capability exposed to the assistant.
package catalog

// Cap bounds the result count for one caller class. Max is a hard limit
// applied regardless of the requested limit.
type Cap struct {
	Default int
	Max     int
}

var (
	// BrowseCap applies to the paginated catalog listing.
	BrowseCap = Cap{Default: 20, Max: 100}
	// MoodCap applies to mood recommendations.
	MoodCap = Cap{Default: 5, Max: 20}
	// ToolCap applies to assistant-invoked searches, kept small to bound
	// LLM context growth.
	ToolCap = Cap{Default: 5, Max: 10}
)

// Clamp resolves a requested limit against the cap. Over-limit requests
// are silently clamped, never rejected.
func (c Cap) Clamp(requested int) int {
	if requested <= 0 {
		return c.Default
	}
	if requested > c.Max {
		return c.Max
	}
	return requested
}

// Filters is the loosely-typed input collected from a request. Absent
// fields stay zero-valued and are omitted from the compiled criteria.
type Filters struct {
	Genres    []string
	Year      int
	YearFrom  int
	YearTo    int
	Directors []string
	Actors    []string
	Search    string
	MinRating float64
	SortBy    string
	SortOrder string
	Limit     int
	Page      int
}

// SortField is one key of the compiled sort specification.
type SortField struct {
	Key  string
	Desc bool
}

// Criteria is the compiled, canonical query. Distinct from Filters so
// the raw request shape never leaks into the store layer.
type Criteria struct {
	Genres    []string
	Year      int
	YearFrom  int
	YearTo    int
	Directors []string // case-insensitive substrings, any may match
	Actors    []string // case-insensitive substrings, any may match
	Search    string   // full-text over title/plot/cast/director/keywords
	MinRating float64
	HasRating bool
	ExcludeID string

	// Mood matching: when MatchAny is set a movie matches if its genres
	// intersect Genres OR its keywords/mood tags intersect Keywords.
	Keywords []string
	MatchAny bool

	Sort   []SortField
	Limit  int
	Offset int
}

var sortKeys = map[string]bool{
	"rating":     true,
	"year":       true,
	"popularity": true,
	"title":      true,
}

// Compile turns raw filters into canonical criteria for the given caller
// cap. Pure: no I/O, no store knowledge beyond field names.
func Compile(f Filters, cap Cap) Criteria {
	c := Criteria{
		Genres:    compact(f.Genres),
		Directors: compact(f.Directors),
		Actors:    compact(f.Actors),
		Search:    f.Search,
		Limit:     cap.Clamp(f.Limit),
	}

	// A single year takes precedence over a range.
	if f.Year > 0 {
		c.Year = f.Year
	} else {
		c.YearFrom = f.YearFrom
		c.YearTo = f.YearTo
	}

	if f.MinRating > 0 {
		c.MinRating = f.MinRating
		c.HasRating = true
	}

	if f.Page > 1 {
		c.Offset = (f.Page - 1) * c.Limit
	}

	c.Sort = compileSort(f.SortBy, f.SortOrder)
	return c
}

// compileSort whitelists the sort key and always appends tie-breaks so
// ordering stays deterministic across identical calls.
func compileSort(key, order string) []SortField {
	if !sortKeys[key] {
		key = "rating"
		order = "desc"
	}
	sort := []SortField{{Key: key, Desc: order != "asc"}}
	if key != "popularity" {
		sort = append(sort, SortField{Key: "popularity", Desc: true})
	}
	return append(sort, SortField{Key: "id", Desc: false})
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
