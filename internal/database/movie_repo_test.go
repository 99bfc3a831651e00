package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/catalog"
	"github.com/kdimtricp/cinematch/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(Config{Type: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testMovie(id, title string, year int, genres []string, rating float64, popularity int) *models.Movie {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.Movie{
		ID:         id,
		Title:      title,
		Year:       year,
		Genres:     genres,
		Director:   "Jane Doe",
		Cast:       []string{"Alice Actor", "Bob Performer"},
		Plot:       "A test plot about " + title,
		Rating:     rating,
		Language:   "English",
		Keywords:   []string{"test"},
		Popularity: popularity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func seedMovies(t *testing.T, repo *MovieRepository, movies ...*models.Movie) {
	t.Helper()
	for _, m := range movies {
		if err := repo.Insert(context.Background(), m); err != nil {
			t.Fatalf("failed to insert %s: %v", m.ID, err)
		}
	}
}

func TestMovieRepositoryInsertAndGet(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	movie := testMovie("m1", "Heat", 1995, []string{"Crime", "Drama"}, 8.3, 90)
	movie.Directors = []string{"Michael Mann"}
	movie.Mood = []string{"intense"}
	movie.PlotEmbedding = []float64{0.1, 0.2, 0.3}
	seedMovies(t, repo, movie)

	got, err := repo.GetByID(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Heat" || got.Year != 1995 {
		t.Errorf("unexpected movie: %s (%d)", got.Title, got.Year)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "Crime" || got.Genres[1] != "Drama" {
		t.Errorf("genres did not round-trip: %v", got.Genres)
	}
	if len(got.Cast) != 2 {
		t.Errorf("cast did not round-trip: %v", got.Cast)
	}
	if len(got.PlotEmbedding) != 3 || got.PlotEmbedding[1] != 0.2 {
		t.Errorf("embedding did not round-trip: %v", got.PlotEmbedding)
	}
}

func TestMovieRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestMovieRepositoryGetByTitle(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	seedMovies(t, repo,
		testMovie("m1", "The Godfather", 1972, []string{"Crime"}, 9.2, 95),
		testMovie("m2", "The Godfather Part II", 1974, []string{"Crime"}, 9.0, 80),
	)

	// Case-insensitive substring resolves to the most popular match.
	got, err := repo.GetByTitle(context.Background(), "godfather")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "m1" {
		t.Errorf("expected most popular match m1, got %s", got.ID)
	}

	if _, err := repo.GetByTitle(context.Background(), "casablanca"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestMovieRepositorySearchByGenre(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	seedMovies(t, repo,
		testMovie("m1", "Alien", 1979, []string{"Horror", "Sci-Fi"}, 8.5, 70),
		testMovie("m2", "Amelie", 2001, []string{"Romance", "Comedy"}, 8.3, 60),
		testMovie("m3", "The Thing", 1982, []string{"Horror"}, 8.2, 50),
	)

	movies, err := repo.Search(context.Background(), catalog.Criteria{Genres: []string{"Horror"}, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 horror movies, got %d", len(movies))
	}
	// Default sort: rating desc.
	if movies[0].ID != "m1" || movies[1].ID != "m3" {
		t.Errorf("unexpected order: %s, %s", movies[0].ID, movies[1].ID)
	}
}

func TestMovieRepositorySearchGenreNoPartialMatch(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	seedMovies(t, repo,
		testMovie("m1", "Scream", 1996, []string{"Horror"}, 7.4, 40),
		testMovie("m2", "Borat", 2006, []string{"Comedy"}, 7.3, 30),
	)

	// "Com" must not match the delimited "Comedy" entry.
	movies, err := repo.Search(context.Background(), catalog.Criteria{Genres: []string{"Com"}, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 0 {
		t.Errorf("expected no matches for partial genre, got %d", len(movies))
	}
}

func TestMovieRepositorySearchFreeText(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	m1 := testMovie("m1", "Blade Runner", 1982, []string{"Sci-Fi"}, 8.1, 60)
	m1.Plot = "A blade runner must pursue replicants"
	m2 := testMovie("m2", "Chinatown", 1974, []string{"Mystery"}, 8.2, 50)
	m2.Plot = "A private detective in Los Angeles"
	seedMovies(t, repo, m1, m2)

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by title", "runner", []string{"m1"}},
		{"by plot", "detective", []string{"m2"}},
		{"by cast", "alice actor", []string{"m2", "m1"}},
		{"no match", "submarine", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := repo.Search(context.Background(), catalog.Criteria{Search: tt.search, Limit: 10})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(movies) != len(tt.want) {
				t.Fatalf("expected %d matches, got %d", len(tt.want), len(movies))
			}
			for i, id := range tt.want {
				if movies[i].ID != id {
					t.Errorf("position %d: expected %s, got %s", i, id, movies[i].ID)
				}
			}
		})
	}
}

func TestMovieRepositorySearchYearWindowAndExclude(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	seedMovies(t, repo,
		testMovie("m1", "Source", 1995, []string{"Drama"}, 8.0, 50),
		testMovie("m2", "Near", 1998, []string{"Drama"}, 7.5, 60),
		testMovie("m3", "Far", 2010, []string{"Drama"}, 7.9, 70),
	)

	movies, err := repo.Search(context.Background(), catalog.Criteria{
		Genres:    []string{"Drama"},
		YearFrom:  1990,
		YearTo:    2000,
		ExcludeID: "m1",
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != "m2" {
		t.Fatalf("expected only m2 in window, got %v", movies)
	}
}

func TestMovieRepositorySearchMatchAny(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	m1 := testMovie("m1", "Genre Hit", 2000, []string{"Comedy"}, 7.0, 10)
	m2 := testMovie("m2", "Keyword Hit", 2001, []string{"Drama"}, 7.1, 20)
	m2.Keywords = []string{"feel-good"}
	m3 := testMovie("m3", "Mood Hit", 2002, []string{"Horror"}, 7.2, 30)
	m3.Mood = []string{"uplifting"}
	m4 := testMovie("m4", "Miss", 2003, []string{"War"}, 7.3, 40)
	seedMovies(t, repo, m1, m2, m3, m4)

	movies, err := repo.Search(context.Background(), catalog.Criteria{
		Genres:   []string{"Comedy"},
		Keywords: []string{"feel-good", "uplifting"},
		MatchAny: true,
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(movies))
	}
	for _, m := range movies {
		if m.ID == "m4" {
			t.Error("m4 must not match any mood criterion")
		}
	}
}

func TestMovieRepositorySearchMinRatingAndDirector(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	m1 := testMovie("m1", "Good One", 2000, []string{"Drama"}, 8.5, 10)
	m1.Director = "Denis Villeneuve"
	m2 := testMovie("m2", "Weak One", 2001, []string{"Drama"}, 5.0, 20)
	m2.Director = "Denis Villeneuve"
	m3 := testMovie("m3", "Other", 2002, []string{"Drama"}, 9.0, 30)
	seedMovies(t, repo, m1, m2, m3)

	movies, err := repo.Search(context.Background(), catalog.Criteria{
		Directors: []string{"villeneuve"},
		MinRating: 7.0,
		HasRating: true,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != "m1" {
		t.Fatalf("expected only m1, got %v", movies)
	}
}

func TestMovieRepositorySearchPagination(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	seedMovies(t, repo,
		testMovie("m1", "First", 2000, nil, 9.0, 10),
		testMovie("m2", "Second", 2001, nil, 8.0, 20),
		testMovie("m3", "Third", 2002, nil, 7.0, 30),
	)

	criteria := catalog.Criteria{Sort: []catalog.SortField{{Key: "rating", Desc: true}}, Limit: 2}
	page1, err := repo.Search(context.Background(), criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page1) != 2 || page1[0].ID != "m1" || page1[1].ID != "m2" {
		t.Fatalf("unexpected first page: %v", page1)
	}

	criteria.Offset = 2
	page2, err := repo.Search(context.Background(), criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page2) != 1 || page2[0].ID != "m3" {
		t.Fatalf("unexpected second page: %v", page2)
	}
}

func TestMovieRepositorySearchDeterministicOrder(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	// Identical rating and popularity: id must break the tie.
	seedMovies(t, repo,
		testMovie("m2", "Twin B", 2000, nil, 8.0, 50),
		testMovie("m1", "Twin A", 2000, nil, 8.0, 50),
	)

	for i := 0; i < 3; i++ {
		movies, err := repo.Search(context.Background(), catalog.Criteria{Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if movies[0].ID != "m1" || movies[1].ID != "m2" {
			t.Fatalf("run %d: unstable order: %s, %s", i, movies[0].ID, movies[1].ID)
		}
	}
}

func TestMovieRepositoryCount(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	seedMovies(t, repo,
		testMovie("m1", "A", 2000, []string{"Drama"}, 8.0, 10),
		testMovie("m2", "B", 2001, []string{"Drama"}, 7.0, 20),
		testMovie("m3", "C", 2002, []string{"Comedy"}, 6.0, 30),
	)

	total, err := repo.Count(context.Background(), catalog.Criteria{Genres: []string{"Drama"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2, got %d", total)
	}

	all, err := repo.Count(context.Background(), catalog.Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all != 3 {
		t.Errorf("expected 3, got %d", all)
	}
}

func TestMovieRepositoryIncrementWatchCount(t *testing.T) {
	repo := NewMovieRepository(newTestDB(t))
	seedMovies(t, repo, testMovie("m1", "Counted", 2000, nil, 8.0, 10))

	if err := repo.IncrementWatchCount(context.Background(), "m1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.IncrementWatchCount(context.Background(), "m1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WatchCount != 2 {
		t.Errorf("expected watch count 2, got %d", got.WatchCount)
	}
}
