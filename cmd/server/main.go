package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kdimtricp/cinematch/internal/ai"
	"github.com/kdimtricp/cinematch/internal/api"
	"github.com/kdimtricp/cinematch/internal/catalog"
	"github.com/kdimtricp/cinematch/internal/config"
	"github.com/kdimtricp/cinematch/internal/database"
	"github.com/kdimtricp/cinematch/internal/library"
	"github.com/kdimtricp/cinematch/internal/models"
	"github.com/kdimtricp/cinematch/internal/observability"
	"github.com/kdimtricp/cinematch/internal/platform/logger"
)

// idResolver trusts the bearer token as a user id and loads the user
// record. Stands in for the external session verifier; deployments
// plug their own api.UserResolver.
type idResolver struct {
	users *database.UserRepository
}

func (r *idResolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	return r.users.GetByID(ctx, token)
}

func main() {
	log := logger.New("cinematch")

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

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry, cfg.MetricsNamespace)

	movieRepo := database.NewMovieRepository(db)
	userRepo := database.NewUserRepository(db)

	catalogService := catalog.NewService(movieRepo)
	libraryService := library.NewService(userRepo, movieRepo, log)

	var orchestrator *ai.Orchestrator
	if cfg.OpenAIAPIKey != "" {
		client := ai.NewOpenAIClient(ai.ClientConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.LLMTimeout,
		})
		orchestrator = ai.NewOrchestrator(client, catalogService, metrics, log, cfg.LLMTimeout)
	} else {
		log.Warn().Msg("assistant disabled: CINEMATCH_OPENAI_API_KEY not set")
	}

	app := &api.App{
		Catalog:      catalogService,
		Library:      libraryService,
		Orchestrator: orchestrator,
		Resolver:     &idResolver{users: userRepo},
		Metrics:      metrics,
		Gatherer:     registry,
		Log:          log,
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().
		Str("addr", addr).
		Str("db_type", cfg.DBType).
		Bool("assistant", orchestrator != nil).
		Msg("server starting")

	if err := http.ListenAndServe(addr, api.NewRouter(app)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
