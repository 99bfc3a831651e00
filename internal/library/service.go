package library

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/models"
)

// UserStore persists a user's two membership lists. Each save is a
// single-row write; the service relies on that for serialization and
// accepts last-writer-wins between concurrent mutations.
type UserStore interface {
	GetLists(ctx context.Context, userID string) ([]models.WatchlistEntry, []models.HistoryEntry, error)
	SaveLists(ctx context.Context, userID string, watchlist []models.WatchlistEntry, history []models.HistoryEntry) error
}

// MovieStore resolves movie identities referenced by transitions.
type MovieStore interface {
	GetByID(ctx context.Context, id string) (*models.Movie, error)
	IncrementWatchCount(ctx context.Context, id string) error
}

type Service struct {
	users  UserStore
	movies MovieStore
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(users UserStore, movies MovieStore, log zerolog.Logger) *Service {
	return &Service{
		users:  users,
		movies: movies,
		log:    log.With().Str("component", "library").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WatchlistItem is a watchlist entry joined with its movie summary.
type WatchlistItem struct {
	Movie   models.MovieSummary `json:"movie"`
	AddedAt time.Time           `json:"addedAt"`
}

// HistoryItem is a history entry joined with its movie summary.
type HistoryItem struct {
	Movie     models.MovieSummary `json:"movie"`
	WatchedAt time.Time           `json:"watchedAt"`
	Rating    *int                `json:"rating"`
}

func (s *Service) AddToWatchlist(ctx context.Context, userID, movieID string) error {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return err
	}

	watchlist, history, err := s.users.GetLists(ctx, userID)
	if err != nil {
		return err
	}

	watchlist, err = addToWatchlist(watchlist, movieID, s.now())
	if err != nil {
		return err
	}

	if err := s.users.SaveLists(ctx, userID, watchlist, history); err != nil {
		return err
	}
	s.log.Debug().Str("user_id", userID).Str("movie_id", movieID).Msg("added to watchlist")
	return nil
}

func (s *Service) RemoveFromWatchlist(ctx context.Context, userID, movieID string) error {
	watchlist, history, err := s.users.GetLists(ctx, userID)
	if err != nil {
		return err
	}
	return s.users.SaveLists(ctx, userID, removeFromWatchlist(watchlist, movieID), history)
}

// MarkWatched records a watch, optionally with a 1-5 rating, and
// returns the resulting relationship state.
func (s *Service) MarkWatched(ctx context.Context, userID, movieID string, rating *int) (models.Relationship, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return models.Relationship{}, apperr.Validation("rating must be between 1 and 5")
	}

	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return models.Relationship{}, err
	}

	watchlist, history, err := s.users.GetLists(ctx, userID)
	if err != nil {
		return models.Relationship{}, err
	}

	watchlist, history, firstWatch := markWatched(watchlist, history, movieID, rating, s.now())

	if err := s.users.SaveLists(ctx, userID, watchlist, history); err != nil {
		return models.Relationship{}, err
	}

	if firstWatch {
		if err := s.movies.IncrementWatchCount(ctx, movieID); err != nil {
			// Non-fatal: the membership transition already committed.
			s.log.Warn().Err(err).Str("movie_id", movieID).Msg("failed to bump watch count")
		}
	}

	return relationship(watchlist, history, movieID), nil
}

// Relationship reports how the user relates to one movie.
func (s *Service) Relationship(ctx context.Context, userID, movieID string) (models.Relationship, error) {
	watchlist, history, err := s.users.GetLists(ctx, userID)
	if err != nil {
		return models.Relationship{}, err
	}
	return relationship(watchlist, history, movieID), nil
}

// Watchlist returns the user's watchlist joined with movie summaries.
// Entries whose movie no longer resolves are skipped.
func (s *Service) Watchlist(ctx context.Context, userID string) ([]WatchlistItem, error) {
	watchlist, _, err := s.users.GetLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]WatchlistItem, 0, len(watchlist))
	for _, entry := range watchlist {
		movie, err := s.movies.GetByID(ctx, entry.MovieID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, WatchlistItem{Movie: movie.Summary(), AddedAt: entry.AddedAt})
	}
	return items, nil
}

// History returns the user's watch history joined with movie summaries.
func (s *Service) History(ctx context.Context, userID string) ([]HistoryItem, error) {
	_, history, err := s.users.GetLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, 0, len(history))
	for _, entry := range history {
		movie, err := s.movies.GetByID(ctx, entry.MovieID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, HistoryItem{Movie: movie.Summary(), WatchedAt: entry.WatchedAt, Rating: entry.Rating})
	}
	return items, nil
}

func relationship(watchlist []models.WatchlistEntry, history []models.HistoryEntry, movieID string) models.Relationship {
	rel := models.Relationship{}
	for _, entry := range watchlist {
		if entry.MovieID == movieID {
			rel.InWatchlist = true
			break
		}
	}
	for _, entry := range history {
		if entry.MovieID == movieID {
			rel.Watched = true
			rel.UserRating = entry.Rating
			break
		}
	}
	return rel
}
