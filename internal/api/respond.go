package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/kdimtricp/cinematch/internal/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps an error kind to its status code. Only the
// client-safe message goes on the wire; the cause is logged.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := http.StatusBadGateway
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindDuplicateState:
		status = http.StatusConflict
	case apperr.KindUpstream:
		log.Error().Err(err).Msg("upstream failure")
	}
	writeJSON(w, log, status, errorResponse{Error: apperr.MessageOf(err)})
}
