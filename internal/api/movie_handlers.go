package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kdimtricp/cinematch/internal/catalog"
	"github.com/kdimtricp/cinematch/internal/models"
)

// movieDetail is the full-record response shape. PlotEmbedding is
// deliberately absent.
type movieDetail struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"originalTitle,omitempty"`
	Year          int      `json:"year"`
	Genres        []string `json:"genres"`
	Director      string   `json:"director"`
	Directors     []string `json:"directors,omitempty"`
	Cast          []string `json:"cast"`
	Plot          string   `json:"plot"`
	Runtime       string   `json:"runtime,omitempty"`
	Rating        float64  `json:"rating"`
	IMDBRating    float64  `json:"imdbRating,omitempty"`
	PosterURL     string   `json:"posterUrl,omitempty"`
	BackdropURL   string   `json:"backdropUrl,omitempty"`
	Language      string   `json:"language,omitempty"`
	Country       string   `json:"country,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	Mood          []string `json:"mood,omitempty"`
	Popularity    int      `json:"popularity"`
	WatchCount    int      `json:"watchCount"`
}

func toMovieDetail(m *models.Movie) movieDetail {
	return movieDetail{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Year:          m.Year,
		Genres:        m.Genres,
		Director:      m.Director,
		Directors:     m.Directors,
		Cast:          m.Cast,
		Plot:          m.Plot,
		Runtime:       m.FormattedRuntime(),
		Rating:        m.Rating,
		IMDBRating:    m.IMDBRating,
		PosterURL:     m.PosterURL,
		BackdropURL:   m.BackdropURL,
		Language:      m.Language,
		Country:       m.Country,
		Keywords:      m.Keywords,
		Mood:          m.Mood,
		Popularity:    m.Popularity,
		WatchCount:    m.WatchCount,
	}
}

func (app *App) BrowseMoviesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := catalog.Filters{
		Genres:    q["genre"],
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if director := q.Get("director"); director != "" {
		filters.Directors = []string{director}
	}
	if actor := q.Get("actor"); actor != "" {
		filters.Actors = []string{actor}
	}
	filters.Year, _ = strconv.Atoi(q.Get("year"))
	filters.YearFrom, _ = strconv.Atoi(q.Get("yearFrom"))
	filters.YearTo, _ = strconv.Atoi(q.Get("yearTo"))
	filters.MinRating, _ = strconv.ParseFloat(q.Get("minRating"), 64)
	filters.Limit, _ = strconv.Atoi(q.Get("limit"))
	filters.Page, _ = strconv.Atoi(q.Get("page"))

	start := time.Now()
	movies, pagination, err := app.Catalog.Browse(r.Context(), filters)
	app.Metrics.SearchSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		writeError(w, app.Log, err)
		return
	}

	writeJSON(w, app.Log, http.StatusOK, map[string]interface{}{
		"movies":     movies,
		"pagination": pagination,
	})
}

func (app *App) MovieDetailHandler(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	movie, err := app.Catalog.Get(r.Context(), movieID)
	if err != nil {
		writeError(w, app.Log, err)
		return
	}

	response := map[string]interface{}{"movie": toMovieDetail(movie)}
	if user := userFrom(r); user != nil {
		rel, err := app.Library.Relationship(r.Context(), user.ID, movieID)
		if err != nil {
			writeError(w, app.Log, err)
			return
		}
		response["userData"] = rel
	}

	writeJSON(w, app.Log, http.StatusOK, response)
}

func (app *App) SimilarMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	movies, err := app.Catalog.Similar(r.Context(), movieID, limit)
	if err != nil {
		writeError(w, app.Log, err)
		return
	}

	writeJSON(w, app.Log, http.StatusOK, map[string]interface{}{"movies": movies})
}
