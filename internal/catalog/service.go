package catalog

import (
	"context"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/models"
)

// SimilarCap bounds similar-movie lookups.
var SimilarCap = Cap{Default: 5, Max: 20}

const similarYearWindow = 5

// Store is the catalog's view of the movie store. Implementations must
// honor the criteria sort exactly so ordering stays deterministic.
type Store interface {
	Search(ctx context.Context, c Criteria) ([]models.Movie, error)
	Count(ctx context.Context, c Criteria) (int, error)
	GetByID(ctx context.Context, id string) (*models.Movie, error)
	GetByTitle(ctx context.Context, title string) (*models.Movie, error)
}

// Pagination describes one page of browse results.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalMovies int  `json:"totalMovies"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Search executes compiled criteria and returns summaries in store
// order. A store failure surfaces whole, never as a truncated list.
func (s *Service) Search(ctx context.Context, c Criteria) ([]models.MovieSummary, error) {
	movies, err := s.store.Search(ctx, c)
	if err != nil {
		return nil, apperr.Upstream("failed to search movies", err)
	}
	return summaries(movies), nil
}

// Browse compiles raw filters under the browse cap and returns one page
// plus pagination metadata.
func (s *Service) Browse(ctx context.Context, f Filters) ([]models.MovieSummary, Pagination, error) {
	c := Compile(f, BrowseCap)

	movies, err := s.store.Search(ctx, c)
	if err != nil {
		return nil, Pagination{}, apperr.Upstream("failed to fetch movies", err)
	}

	total, err := s.store.Count(ctx, c)
	if err != nil {
		return nil, Pagination{}, apperr.Upstream("failed to count movies", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	totalPages := (total + c.Limit - 1) / c.Limit

	return summaries(movies), Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalMovies: total,
		HasNext:     c.Offset+len(movies) < total,
		HasPrev:     page > 1,
	}, nil
}

// Mood maps a mood label to criteria and executes the search.
func (s *Service) Mood(ctx context.Context, mood string, limit int) ([]models.MovieSummary, string, error) {
	c, resolved := MoodCriteria(mood, limit)
	results, err := s.Search(ctx, c)
	if err != nil {
		return nil, "", err
	}
	return results, resolved, nil
}

// Get returns the full record for one movie.
func (s *Service) Get(ctx context.Context, id string) (*models.Movie, error) {
	movie, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return movie, nil
}

// GetByTitle resolves one movie by case-insensitive title substring.
// The not-found case is a typed error so the assistant path can answer
// conversationally instead of failing the request.
func (s *Service) GetByTitle(ctx context.Context, title string) (*models.MovieSummary, error) {
	movie, err := s.store.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	summary := movie.Summary()
	return &summary, nil
}

// Similar returns catalog entries sharing at least one genre with the
// source and released within ±5 years, ranked by rating then
// popularity. A nonexistent source yields an empty list, not an error:
// the resolver is advisory.
func (s *Service) Similar(ctx context.Context, movieID string, limit int) ([]models.MovieSummary, error) {
	source, err := s.store.GetByID(ctx, movieID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return []models.MovieSummary{}, nil
		}
		return nil, err
	}

	// An empty genre set intersects nothing; without this guard the
	// criteria would drop the genre condition and match the whole window.
	if len(source.Genres) == 0 {
		return []models.MovieSummary{}, nil
	}

	c := Criteria{
		Genres:    source.Genres,
		YearFrom:  source.Year - similarYearWindow,
		YearTo:    source.Year + similarYearWindow,
		ExcludeID: source.ID,
		Sort: []SortField{
			{Key: "rating", Desc: true},
			{Key: "popularity", Desc: true},
			{Key: "id", Desc: false},
		},
		Limit: SimilarCap.Clamp(limit),
	}

	results, err := s.store.Search(ctx, c)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch similar movies", err)
	}
	return summaries(results), nil
}

func summaries(movies []models.Movie) []models.MovieSummary {
	out := make([]models.MovieSummary, 0, len(movies))
	for i := range movies {
		out = append(out, movies[i].Summary())
	}
	return out
}
