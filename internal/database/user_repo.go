package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/models"
)

// UserRepository stores each user's watchlist and watch history as JSON
// columns on the user row, so every mutation is one single-row write and
// the database's per-row serialization is the only concurrency control.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	query := r.db.rebind(`INSERT INTO users (id, username, email, preferences, watchlist, watch_history, created_at)
		VALUES (?, ?, ?, ?, '[]', '[]', CURRENT_TIMESTAMP)`)
	if _, err := r.db.conn.ExecContext(ctx, query, u.ID, u.Username, u.Email, string(prefs)); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	var prefs string

	query := r.db.rebind(`SELECT id, username, email, preferences FROM users WHERE id = ?`)
	err := r.db.conn.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Email, &prefs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := json.Unmarshal([]byte(prefs), &u.Preferences); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return &u, nil
}

// GetLists loads both membership lists for one user.
func (r *UserRepository) GetLists(ctx context.Context, userID string) ([]models.WatchlistEntry, []models.HistoryEntry, error) {
	var watchlistRaw, historyRaw string

	query := r.db.rebind(`SELECT watchlist, watch_history FROM users WHERE id = ?`)
	err := r.db.conn.QueryRowContext(ctx, query, userID).Scan(&watchlistRaw, &historyRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user lists: %w", err)
	}

	var watchlist []models.WatchlistEntry
	if err := json.Unmarshal([]byte(watchlistRaw), &watchlist); err != nil {
		return nil, nil, fmt.Errorf("failed to decode watchlist: %w", err)
	}
	var history []models.HistoryEntry
	if err := json.Unmarshal([]byte(historyRaw), &history); err != nil {
		return nil, nil, fmt.Errorf("failed to decode watch history: %w", err)
	}
	return watchlist, history, nil
}

// SaveLists writes both lists back in a single statement, last writer
// wins.
func (r *UserRepository) SaveLists(ctx context.Context, userID string, watchlist []models.WatchlistEntry, history []models.HistoryEntry) error {
	if watchlist == nil {
		watchlist = []models.WatchlistEntry{}
	}
	if history == nil {
		history = []models.HistoryEntry{}
	}

	watchlistData, err := json.Marshal(watchlist)
	if err != nil {
		return fmt.Errorf("failed to encode watchlist: %w", err)
	}
	historyData, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode watch history: %w", err)
	}

	query := r.db.rebind(`UPDATE users SET watchlist = ?, watch_history = ? WHERE id = ?`)
	result, err := r.db.conn.ExecContext(ctx, query, string(watchlistData), string(historyData), userID)
	if err != nil {
		return fmt.Errorf("failed to save user lists: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
