// Package library enforces the watchlist/watch-history membership rules.
// The transitions are pure functions over the two entry lists so they
// can be tested without any storage.
package library

import (
	"time"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/models"
)

// addToWatchlist appends the movie. Adding a movie already present is a
// duplicate-state error, not a silent no-op, so callers can react.
func addToWatchlist(watchlist []models.WatchlistEntry, movieID string, now time.Time) ([]models.WatchlistEntry, error) {
	for _, entry := range watchlist {
		if entry.MovieID == movieID {
			return nil, apperr.DuplicateState("movie already in watchlist")
		}
	}
	return append(watchlist, models.WatchlistEntry{MovieID: movieID, AddedAt: now}), nil
}

// removeFromWatchlist filters the movie out without touching the input
// slice. Removing an absent entry succeeds with no change.
func removeFromWatchlist(watchlist []models.WatchlistEntry, movieID string) []models.WatchlistEntry {
	kept := make([]models.WatchlistEntry, 0, len(watchlist))
	for _, entry := range watchlist {
		if entry.MovieID != movieID {
			kept = append(kept, entry)
		}
	}
	return kept
}

// markWatched upserts the history entry and always strips the movie
// from the watchlist. On re-watch the timestamp is refreshed and a
// supplied rating overwrites the old one; an omitted rating preserves
// whatever was there before. A first insert without a rating stays nil.
func markWatched(watchlist []models.WatchlistEntry, history []models.HistoryEntry, movieID string, rating *int, now time.Time) ([]models.WatchlistEntry, []models.HistoryEntry, bool) {
	firstWatch := true
	for i := range history {
		if history[i].MovieID == movieID {
			history[i].WatchedAt = now
			if rating != nil {
				history[i].Rating = rating
			}
			firstWatch = false
			break
		}
	}
	if firstWatch {
		history = append(history, models.HistoryEntry{MovieID: movieID, WatchedAt: now, Rating: rating})
	}
	return removeFromWatchlist(watchlist, movieID), history, firstWatch
}
