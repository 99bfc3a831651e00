package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kdimtricp/cinematch/internal/ai"
	"github.com/kdimtricp/cinematch/internal/catalog"
	"github.com/kdimtricp/cinematch/internal/library"
	"github.com/kdimtricp/cinematch/internal/observability"
)

type App struct {
	Catalog      *catalog.Service
	Library      *library.Service
	Orchestrator *ai.Orchestrator
	Resolver     UserResolver
	Metrics      *observability.Metrics
	Gatherer     prometheus.Gatherer
	Log          zerolog.Logger
}

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(app.requestLogger)

	r.Get("/ping", PingHandler)
	if app.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(app.optionalAuth)
			r.Get("/movies", app.BrowseMoviesHandler)
			r.Get("/movies/{id}", app.MovieDetailHandler)
			r.Get("/movies/{id}/similar", app.SimilarMoviesHandler)
			r.Post("/ai/chat", app.ChatHandler)
			r.Post("/ai/mood", app.MoodHandler)
			r.Post("/ai/qa", app.QAHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuth)
			r.Post("/movies/{id}/watchlist", app.AddToWatchlistHandler)
			r.Delete("/movies/{id}/watchlist", app.RemoveFromWatchlistHandler)
			r.Post("/movies/{id}/watched", app.MarkWatchedHandler)
			r.Get("/users/me/watchlist", app.WatchlistHandler)
			r.Get("/users/me/history", app.HistoryHandler)
		})
	})

	return r
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
