package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kdimtricp/cinematch/internal/models"
)

// UserResolver turns request credentials into a resolved user. Token
// verification lives outside this core; the handlers only ever see the
// resolved identity and preferences.
type UserResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type contextKey string

const userContextKey contextKey = "user"

// userFrom returns the resolved user for the request, nil when the
// caller is anonymous.
func userFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}

// optionalAuth resolves the caller when a token is present but lets
// anonymous and unresolvable requests through.
func (app *App) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if user, err := app.Resolver.Resolve(r.Context(), token); err == nil && user != nil {
				r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests without a resolvable identity.
func (app *App) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, app.Log, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}
		user, err := app.Resolver.Resolve(r.Context(), token)
		if err != nil || user == nil {
			writeJSON(w, app.Log, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// requestLogger logs each request and feeds the request counter.
func (app *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		app.Metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		app.Log.Info().
			Str("method", r.Method).
			Str("route", route).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
