package database

import (
	"context"
	"testing"
	"time"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/models"
)

func seedUser(t *testing.T, repo *UserRepository, id string) {
	t.Helper()
	user := &models.User{
		ID:       id,
		Username: "user-" + id,
		Email:    id + "@example.com",
		Preferences: models.Preferences{
			Genres:    []string{"Horror", "Thriller"},
			MinRating: 7.0,
		},
	}
	if err := repo.Insert(context.Background(), user); err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
}

func TestUserRepositoryInsertAndGet(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "u1")

	got, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "user-u1" || got.Email != "u1@example.com" {
		t.Errorf("unexpected user: %+v", got)
	}
	if len(got.Preferences.Genres) != 2 || got.Preferences.Genres[0] != "Horror" {
		t.Errorf("preferences did not round-trip: %v", got.Preferences.Genres)
	}
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "nobody")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestUserRepositoryListsRoundTrip(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "u1")

	// Fresh user starts with empty lists.
	watchlist, history, err := repo.GetLists(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watchlist) != 0 || len(history) != 0 {
		t.Fatalf("expected empty lists, got %v / %v", watchlist, history)
	}

	added := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rating := 4
	watchlist = []models.WatchlistEntry{{MovieID: "m1", AddedAt: added}}
	history = []models.HistoryEntry{{MovieID: "m2", WatchedAt: added.Add(time.Hour), Rating: &rating}}

	if err := repo.SaveLists(context.Background(), "u1", watchlist, history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	watchlist, history, err = repo.GetLists(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watchlist) != 1 || watchlist[0].MovieID != "m1" {
		t.Fatalf("watchlist did not round-trip: %v", watchlist)
	}
	if !watchlist[0].AddedAt.Equal(added) {
		t.Errorf("AddedAt did not round-trip: %v", watchlist[0].AddedAt)
	}
	if len(history) != 1 || history[0].MovieID != "m2" {
		t.Fatalf("history did not round-trip: %v", history)
	}
	if history[0].Rating == nil || *history[0].Rating != 4 {
		t.Errorf("rating did not round-trip: %v", history[0].Rating)
	}
}

func TestUserRepositorySaveListsNilBecomesEmpty(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "u1")

	if err := repo.SaveLists(context.Background(), "u1", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	watchlist, history, err := repo.GetLists(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watchlist) != 0 || len(history) != 0 {
		t.Errorf("expected empty lists, got %v / %v", watchlist, history)
	}
}

func TestUserRepositorySaveListsMissingUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	err := repo.SaveLists(context.Background(), "ghost", nil, nil)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestUserRepositoryGetListsMissingUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, _, err := repo.GetLists(context.Background(), "ghost")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found kind, got %v", err)
	}
}
