package models

import "time"

// User is the identity/preferences object handed to the core by the
// authentication layer. Credential material never reaches this type.
type User struct {
	ID          string
	Username    string
	Email       string
	Preferences Preferences
}

// Preferences drive the system-prompt hint and default browse filters.
type Preferences struct {
	Genres    []string `json:"genres"`
	Actors    []string `json:"actors"`
	Directors []string `json:"directors"`
	MinRating float64  `json:"minRating"`
	MaxYear   int      `json:"maxYear"`
}

// WatchlistEntry records one movie on a user's watchlist.
type WatchlistEntry struct {
	MovieID string    `json:"movieId"`
	AddedAt time.Time `json:"addedAt"`
}

// HistoryEntry records one watched movie. Rating is the user's personal
// 1-5 rating, nil until the user supplies one.
type HistoryEntry struct {
	MovieID   string    `json:"movieId"`
	WatchedAt time.Time `json:"watchedAt"`
	Rating    *int      `json:"rating"`
}

// Relationship describes how a given user relates to a given movie.
type Relationship struct {
	InWatchlist bool `json:"inWatchlist"`
	Watched     bool `json:"watched"`
	UserRating  *int `json:"userRating"`
}
