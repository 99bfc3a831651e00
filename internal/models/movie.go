package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Genres is the closed vocabulary for movie genre tags.
var Genres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Family", "Fantasy", "Horror", "Mystery", "Romance",
	"Sci-Fi", "Thriller", "War", "Western",
}

// ValidGenre reports whether g belongs to the closed genre vocabulary.
func ValidGenre(g string) bool {
	for _, known := range Genres {
		if known == g {
			return true
		}
	}
	return false
}

// Movie is the full catalog record. Year and Plot are always present;
// Rating is 0-10 when set. PlotEmbedding is internal-only and must never
// leave the service.
type Movie struct {
	ID            string
	Title         string
	OriginalTitle string
	Year          int
	Genres        []string
	Director      string
	Directors     []string
	Cast          []string
	Plot          string
	PlotEmbedding []float64
	Runtime       int
	Rating        float64
	IMDBRating    float64
	PosterURL     string
	BackdropURL   string
	Language      string
	Country       string
	Keywords      []string
	Mood          []string
	Popularity    int
	WatchCount    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewMovie(title string, year int, plot string) *Movie {
	now := time.Now().UTC()
	return &Movie{
		ID:        uuid.New().String(),
		Title:     title,
		Year:      year,
		Plot:      plot,
		Language:  "English",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MovieSummary is the projection returned to clients and to the LLM.
// It deliberately omits PlotEmbedding and other internal fields.
type MovieSummary struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Year       int      `json:"year"`
	Genres     []string `json:"genres"`
	Director   string   `json:"director"`
	Plot       string   `json:"plot"`
	Rating     float64  `json:"rating"`
	IMDBRating float64  `json:"imdbRating,omitempty"`
	PosterURL  string   `json:"posterUrl,omitempty"`
	Runtime    string   `json:"runtime,omitempty"`
	Popularity int      `json:"popularity"`
}

// Summary builds the externally safe projection of the movie.
func (m *Movie) Summary() MovieSummary {
	return MovieSummary{
		ID:         m.ID,
		Title:      m.Title,
		Year:       m.Year,
		Genres:     m.Genres,
		Director:   m.Director,
		Plot:       m.Plot,
		Rating:     m.Rating,
		IMDBRating: m.IMDBRating,
		PosterURL:  m.PosterURL,
		Runtime:    m.FormattedRuntime(),
		Popularity: m.Popularity,
	}
}

// FormattedRuntime renders the runtime as "2h 28m", or "" when unknown.
func (m *Movie) FormattedRuntime() string {
	if m.Runtime <= 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", m.Runtime/60, m.Runtime%60)
}
