package library

import (
	"testing"
	"time"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/models"
)

var now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestAddToWatchlist(t *testing.T) {
	watchlist, err := addToWatchlist(nil, "m1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watchlist) != 1 || watchlist[0].MovieID != "m1" {
		t.Fatalf("expected single entry for m1, got %v", watchlist)
	}
	if !watchlist[0].AddedAt.Equal(now) {
		t.Errorf("expected AddedAt %v, got %v", now, watchlist[0].AddedAt)
	}
}

func TestAddToWatchlistDuplicateRejected(t *testing.T) {
	watchlist := []models.WatchlistEntry{{MovieID: "m1", AddedAt: now}}

	_, err := addToWatchlist(watchlist, "m1", now.Add(time.Hour))
	if err == nil {
		t.Fatal("expected duplicate-state error")
	}
	if !apperr.Is(err, apperr.KindDuplicateState) {
		t.Errorf("expected duplicate-state kind, got %v", err)
	}
}

func TestRemoveFromWatchlistIdempotent(t *testing.T) {
	watchlist := []models.WatchlistEntry{{MovieID: "m1"}, {MovieID: "m2"}}

	watchlist = removeFromWatchlist(watchlist, "m1")
	if len(watchlist) != 1 || watchlist[0].MovieID != "m2" {
		t.Fatalf("expected only m2 left, got %v", watchlist)
	}

	// Removing again is a silent no-op.
	watchlist = removeFromWatchlist(watchlist, "m1")
	if len(watchlist) != 1 {
		t.Errorf("expected no change on repeat removal, got %v", watchlist)
	}
}

func TestRemoveFromWatchlistLeavesInputIntact(t *testing.T) {
	original := []models.WatchlistEntry{{MovieID: "m1"}, {MovieID: "m2"}, {MovieID: "m3"}}

	filtered := removeFromWatchlist(original, "m1")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 entries kept, got %v", filtered)
	}
	// The input slice must not be rewritten in place.
	for i, id := range []string{"m1", "m2", "m3"} {
		if original[i].MovieID != id {
			t.Fatalf("input mutated: entry %d is %s, want %s", i, original[i].MovieID, id)
		}
	}
}

func TestMarkWatchedFromAbsent(t *testing.T) {
	watchlist, history, firstWatch := markWatched(nil, nil, "m1", nil, now)

	if !firstWatch {
		t.Error("expected first watch")
	}
	if len(watchlist) != 0 {
		t.Errorf("expected empty watchlist, got %v", watchlist)
	}
	if len(history) != 1 || history[0].MovieID != "m1" {
		t.Fatalf("expected single history entry, got %v", history)
	}
	if history[0].Rating != nil {
		t.Errorf("expected nil rating on first insert without rating, got %v", *history[0].Rating)
	}
}

func TestMarkWatchedRemovesFromWatchlist(t *testing.T) {
	watchlist := []models.WatchlistEntry{{MovieID: "m1", AddedAt: now}}
	rating := 4

	watchlist, history, _ := markWatched(watchlist, nil, "m1", &rating, now)

	if len(watchlist) != 0 {
		t.Errorf("expected movie stripped from watchlist, got %v", watchlist)
	}
	if len(history) != 1 || history[0].Rating == nil || *history[0].Rating != 4 {
		t.Fatalf("expected history entry with rating 4, got %v", history)
	}
}

func TestMarkWatchedRewatchUpdatesInPlace(t *testing.T) {
	oldRating := 2
	history := []models.HistoryEntry{{MovieID: "m1", WatchedAt: now.Add(-24 * time.Hour), Rating: &oldRating}}
	later := now.Add(time.Hour)
	newRating := 5

	_, history, firstWatch := markWatched(nil, history, "m1", &newRating, later)

	if firstWatch {
		t.Error("expected re-watch, not first watch")
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(history))
	}
	if !history[0].WatchedAt.Equal(later) {
		t.Errorf("expected refreshed timestamp %v, got %v", later, history[0].WatchedAt)
	}
	if history[0].Rating == nil || *history[0].Rating != 5 {
		t.Errorf("expected rating overwritten to 5, got %v", history[0].Rating)
	}
}

func TestMarkWatchedRewatchPreservesRatingWhenOmitted(t *testing.T) {
	oldRating := 3
	history := []models.HistoryEntry{{MovieID: "m1", WatchedAt: now, Rating: &oldRating}}

	_, history, _ = markWatched(nil, history, "m1", nil, now.Add(time.Hour))

	if history[0].Rating == nil || *history[0].Rating != 3 {
		t.Errorf("expected prior rating 3 preserved, got %v", history[0].Rating)
	}
}

func TestMarkWatchedUniquenessHoldsFromEveryPriorState(t *testing.T) {
	rating := 4
	states := []struct {
		name      string
		watchlist []models.WatchlistEntry
		history   []models.HistoryEntry
	}{
		{"absent", nil, nil},
		{"in watchlist", []models.WatchlistEntry{{MovieID: "m1"}}, nil},
		{"already watched", nil, []models.HistoryEntry{{MovieID: "m1", Rating: &rating}}},
		{"both", []models.WatchlistEntry{{MovieID: "m1"}}, []models.HistoryEntry{{MovieID: "m1"}}},
	}

	for _, tt := range states {
		t.Run(tt.name, func(t *testing.T) {
			watchlist, history, _ := markWatched(tt.watchlist, tt.history, "m1", nil, now)

			count := 0
			for _, entry := range history {
				if entry.MovieID == "m1" {
					count++
				}
			}
			if count != 1 {
				t.Errorf("expected movie in history exactly once, found %d", count)
			}
			for _, entry := range watchlist {
				if entry.MovieID == "m1" {
					t.Error("expected movie absent from watchlist")
				}
			}
		})
	}
}
