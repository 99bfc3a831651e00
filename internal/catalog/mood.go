package catalog

import "strings"

type moodMapping struct {
	genres   []string
	keywords []string
}

// moodMappings is the closed mood vocabulary. Lookups are
// case-insensitive; anything unrecognized falls back to "happy", a
// deliberate lenient default rather than an error.
var moodMappings = map[string]moodMapping{
	"happy":      {genres: []string{"Comedy", "Adventure", "Family"}, keywords: []string{"uplifting", "funny", "feel-good"}},
	"sad":        {genres: []string{"Drama", "Romance"}, keywords: []string{"emotional", "touching", "heartfelt"}},
	"excited":    {genres: []string{"Action", "Adventure", "Sci-Fi"}, keywords: []string{"thrilling", "adventure", "exciting"}},
	"relaxed":    {genres: []string{"Comedy", "Drama", "Documentary"}, keywords: []string{"calm", "peaceful", "easy-going"}},
	"nostalgic":  {genres: []string{"Drama", "Romance", "Comedy"}, keywords: []string{"retro", "vintage", "classic"}},
	"mysterious": {genres: []string{"Mystery", "Thriller", "Crime"}, keywords: []string{"suspense", "mystery", "intriguing"}},
	"romantic":   {genres: []string{"Romance", "Drama", "Comedy"}, keywords: []string{"romantic", "love", "relationship"}},
}

// MoodCriteria compiles a mood label into catalog criteria. Total over
// all inputs: never fails, never returns empty criteria. The second
// return value is the mood the label resolved to.
func MoodCriteria(mood string, limit int) (Criteria, string) {
	resolved := strings.ToLower(strings.TrimSpace(mood))
	mapping, ok := moodMappings[resolved]
	if !ok {
		resolved = "happy"
		mapping = moodMappings[resolved]
	}

	return Criteria{
		Genres:   mapping.genres,
		Keywords: mapping.keywords,
		MatchAny: true,
		Sort: []SortField{
			{Key: "rating", Desc: true},
			{Key: "popularity", Desc: true},
			{Key: "id", Desc: false},
		},
		Limit: MoodCap.Clamp(limit),
	}, resolved
}
