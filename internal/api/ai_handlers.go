package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kdimtricp/cinematch/internal/ai"
	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/models"
)

type chatRequest struct {
	Message string    `json:"message"`
	Context []ai.Turn `json:"context"`
}

type chatResponse struct {
	Response string                `json:"response"`
	Movies   []models.MovieSummary `json:"movies,omitempty"`
}

func (app *App) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if app.Orchestrator == nil {
		writeError(w, app.Log, apperr.Upstream("assistant is not configured", nil))
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, app.Log, apperr.Validation("invalid request body"))
		return
	}

	result, err := app.Orchestrator.Chat(r.Context(), userFrom(r), req.Message, req.Context)
	if err != nil {
		writeError(w, app.Log, err)
		return
	}

	writeJSON(w, app.Log, http.StatusOK, chatResponse{
		Response: result.Answer,
		Movies:   result.Movies,
	})
}

type moodRequest struct {
	Mood  string `json:"mood"`
	Limit int    `json:"limit"`
}

func (app *App) MoodHandler(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, app.Log, apperr.Validation("invalid request body"))
		return
	}
	if req.Mood == "" {
		writeError(w, app.Log, apperr.Validation("mood is required"))
		return
	}

	start := time.Now()
	movies, resolved, err := app.Catalog.Mood(r.Context(), req.Mood, req.Limit)
	app.Metrics.SearchSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		writeError(w, app.Log, err)
		return
	}

	writeJSON(w, app.Log, http.StatusOK, map[string]interface{}{
		"movies": movies,
		"mood":   resolved,
	})
}

type qaRequest struct {
	Question string `json:"question"`
}

func (app *App) QAHandler(w http.ResponseWriter, r *http.Request) {
	if app.Orchestrator == nil {
		writeError(w, app.Log, apperr.Upstream("assistant is not configured", nil))
		return
	}

	var req qaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, app.Log, apperr.Validation("invalid request body"))
		return
	}

	answer, err := app.Orchestrator.QA(r.Context(), req.Question)
	if err != nil {
		writeError(w, app.Log, err)
		return
	}

	writeJSON(w, app.Log, http.StatusOK, map[string]interface{}{
		"answer":   answer,
		"question": req.Question,
	})
}
