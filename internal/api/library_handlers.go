package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kdimtricp/cinematch/internal/apperr"
)

func (app *App) AddToWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	movieID := chi.URLParam(r, "id")

	if err := app.Library.AddToWatchlist(r.Context(), user.ID, movieID); err != nil {
		writeError(w, app.Log, err)
		return
	}
	writeJSON(w, app.Log, http.StatusOK, map[string]string{"message": "Movie added to watchlist"})
}

func (app *App) RemoveFromWatchlistHandler(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	movieID := chi.URLParam(r, "id")

	if err := app.Library.RemoveFromWatchlist(r.Context(), user.ID, movieID); err != nil {
		writeError(w, app.Log, err)
		return
	}
	writeJSON(w, app.Log, http.StatusOK, map[string]string{"message": "Movie removed from watchlist"})
}

type markWatchedRequest struct {
	Rating *int `json:"rating"`
}

func (app *App) MarkWatchedHandler(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	movieID := chi.URLParam(r, "id")

	// The body is optional; marking watched without a rating is valid.
	var req markWatchedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, app.Log, apperr.Validation("invalid request body"))
		return
	}

	rel, err := app.Library.MarkWatched(r.Context(), user.ID, movieID, req.Rating)
	if err != nil {
		writeError(w, app.Log, err)
		return
	}

	writeJSON(w, app.Log, http.StatusOK, map[string]interface{}{
		"message":  "Movie marked as watched",
		"userData": rel,
	})
}

func (app *App) WatchlistHandler(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	items, err := app.Library.Watchlist(r.Context(), user.ID)
	if err != nil {
		writeError(w, app.Log, err)
		return
	}
	writeJSON(w, app.Log, http.StatusOK, map[string]interface{}{"watchlist": items})
}

func (app *App) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	items, err := app.Library.History(r.Context(), user.ID)
	if err != nil {
		writeError(w, app.Log, err)
		return
	}
	writeJSON(w, app.Log, http.StatusOK, map[string]interface{}{"history": items})
}
