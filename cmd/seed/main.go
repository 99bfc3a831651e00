// Command seed loads a JSON catalog file into the movie store,
// optionally enriching entries with TMDb artwork.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kdimtricp/cinematch/internal/config"
	"github.com/kdimtricp/cinematch/internal/database"
	"github.com/kdimtricp/cinematch/internal/enrich"
	"github.com/kdimtricp/cinematch/internal/models"
	"github.com/kdimtricp/cinematch/internal/platform/logger"
)

type seedMovie struct {
	Title         string   `json:"title"`
	OriginalTitle string   `json:"originalTitle"`
	Year          int      `json:"year"`
	Genres        []string `json:"genres"`
	Director      string   `json:"director"`
	Directors     []string `json:"directors"`
	Cast          []string `json:"cast"`
	Plot          string   `json:"plot"`
	Runtime       int      `json:"runtime"`
	Rating        float64  `json:"rating"`
	IMDBRating    float64  `json:"imdbRating"`
	PosterURL     string   `json:"posterUrl"`
	BackdropURL   string   `json:"backdropUrl"`
	Language      string   `json:"language"`
	Country       string   `json:"country"`
	Keywords      []string `json:"keywords"`
	Mood          []string `json:"mood"`
	Popularity    int      `json:"popularity"`
}

func main() {
	log := logger.New("cinematch-seed")

	var (
		file       = flag.String("file", "seed/movies.json", "path to the catalog JSON file")
		enrichment = flag.Bool("enrich", false, "fetch missing artwork from TMDb")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.NewDB(database.Config{
		Type:       cfg.DBType,
		SQLitePath: cfg.DBPath,
		DSN:        cfg.DBDSN,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to read seed file")
	}

	var seeds []seedMovie
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatal().Err(err).Msg("failed to parse seed file")
	}

	var tmdb *enrich.TMDBClient
	if *enrichment {
		if cfg.TMDBAPIKey == "" {
			log.Fatal().Msg("CINEMATCH_TMDB_API_KEY is required with -enrich")
		}
		tmdb = enrich.NewTMDBClient(cfg.TMDBAPIKey)
	}

	repo := database.NewMovieRepository(db)
	ctx := context.Background()

	inserted := 0
	for _, seed := range seeds {
		if seed.Title == "" || seed.Year == 0 || seed.Plot == "" {
			log.Warn().Str("title", seed.Title).Msg("skipping entry missing title, year or plot")
			continue
		}

		for _, g := range seed.Genres {
			if !models.ValidGenre(g) {
				log.Fatal().Str("title", seed.Title).Str("genre", g).Msg("unknown genre")
			}
		}

		now := time.Now().UTC()
		movie := &models.Movie{
			ID:            uuid.New().String(),
			Title:         seed.Title,
			OriginalTitle: seed.OriginalTitle,
			Year:          seed.Year,
			Genres:        seed.Genres,
			Director:      seed.Director,
			Directors:     seed.Directors,
			Cast:          seed.Cast,
			Plot:          seed.Plot,
			Runtime:       seed.Runtime,
			Rating:        seed.Rating,
			IMDBRating:    seed.IMDBRating,
			PosterURL:     seed.PosterURL,
			BackdropURL:   seed.BackdropURL,
			Language:      seed.Language,
			Country:       seed.Country,
			Keywords:      seed.Keywords,
			Mood:          seed.Mood,
			Popularity:    seed.Popularity,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if movie.Language == "" {
			movie.Language = "English"
		}

		if tmdb != nil && movie.PosterURL == "" {
			artwork, err := tmdb.Lookup(ctx, movie.Title, movie.Year)
			if err != nil {
				log.Warn().Err(err).Str("title", movie.Title).Msg("artwork lookup failed")
			} else {
				movie.PosterURL = artwork.PosterURL
				movie.BackdropURL = artwork.BackdropURL
			}
		}

		if err := repo.Insert(ctx, movie); err != nil {
			log.Fatal().Err(err).Str("title", movie.Title).Msg("failed to insert movie")
		}
		inserted++
	}

	log.Info().Int("inserted", inserted).Msg("seed complete")
}
