package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/catalog"
	"github.com/kdimtricp/cinematch/internal/models"
	"github.com/kdimtricp/cinematch/internal/observability"
)

const systemPrompt = `You are CineMatch, an AI-powered movie recommendation assistant. You help users find movies based on their preferences, mood, and natural language queries.

Key capabilities:
- Recommend movies based on genre, mood, actors, directors, or plot similarities
- Suggest movies similar to specific films
- Provide movie information and explanations
- Answer questions about movies, plots, and film history

Always respond in a helpful, conversational tone. When recommending movies, provide brief explanations for your suggestions.`

const qaSystemPrompt = `You are a movie expert assistant. Answer questions about movies, plots, actors, directors, and film history. Be informative and engaging. If you don't know something, say so rather than making things up.`

// historyWindow bounds how many caller-echoed turns are replayed.
const historyWindow = 5

// CatalogSearcher is the deterministic capability surface the
// orchestrator executes on the assistant's behalf.
type CatalogSearcher interface {
	Search(ctx context.Context, c catalog.Criteria) ([]models.MovieSummary, error)
	GetByTitle(ctx context.Context, title string) (*models.MovieSummary, error)
}

// Turn is one caller-echoed prior exchange turn. Conversation state is
// never persisted server-side; the client carries its own window.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the terminal outcome of one chat request: the
// assistant's answer plus the structured movies it surfaced, verbatim
// from the executed capability.
type ChatResult struct {
	Answer string
	Movies []models.MovieSummary
}

type Orchestrator struct {
	client  ChatClient
	catalog CatalogSearcher
	metrics *observability.Metrics
	log     zerolog.Logger
	timeout time.Duration
}

func NewOrchestrator(client ChatClient, cat CatalogSearcher, metrics *observability.Metrics, log zerolog.Logger, timeout time.Duration) *Orchestrator {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Orchestrator{
		client:  client,
		catalog: cat,
		metrics: metrics,
		log:     log.With().Str("component", "orchestrator").Logger(),
		timeout: timeout,
	}
}

// Chat runs one bounded exchange: compose turns, let the model answer
// or request a capability, execute at most one capability, and force a
// terminal answer on the second call. Either the full {answer, movies}
// result is returned or the request fails whole.
func (o *Orchestrator) Chat(ctx context.Context, user *models.User, message string, recent []Turn) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.Validation("message is required")
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	messages := o.compose(user, message, recent)

	first, err := o.completion(ctx, messages, toolSchemas())
	if err != nil {
		return nil, apperr.Upstream("failed to process chat request", err)
	}

	if len(first.ToolCalls) == 0 {
		return &ChatResult{Answer: first.Content}, nil
	}

	// Exactly one tool round-trip per request. Additional requested
	// calls in the same response are dropped.
	call := first.ToolCalls[0]
	o.metrics.ToolCalls.WithLabelValues(call.Function.Name).Inc()
	o.log.Debug().Str("tool", call.Function.Name).Msg("executing capability")

	payload, movies, err := o.execute(ctx, call)
	if err != nil {
		return nil, err
	}

	messages = append(messages, *first, Message{
		Role:       RoleTool,
		ToolCallID: call.ID,
		Content:    payload,
	})

	// No schemas on the second call: the model must produce a terminal
	// natural-language answer, so the exchange cannot recurse.
	final, err := o.completion(ctx, messages, nil)
	if err != nil {
		return nil, apperr.Upstream("failed to process chat request", err)
	}

	return &ChatResult{Answer: final.Content, Movies: movies}, nil
}

// QA answers a standalone movie question with no tool access.
func (o *Orchestrator) QA(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apperr.Validation("question is required")
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	answer, err := o.completion(ctx, []Message{
		{Role: RoleSystem, Content: qaSystemPrompt},
		{Role: RoleUser, Content: question},
	}, nil)
	if err != nil {
		return "", apperr.Upstream("failed to process question", err)
	}
	return answer.Content, nil
}

func (o *Orchestrator) compose(user *models.User, message string, recent []Turn) []Message {
	prompt := systemPrompt
	if user != nil && len(user.Preferences.Genres) > 0 {
		prompt += "\n\nUser preferences: Genres: " + strings.Join(user.Preferences.Genres, ", ")
	}

	messages := []Message{{Role: RoleSystem, Content: prompt}}

	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	for _, turn := range recent {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			continue
		}
		messages = append(messages, Message{Role: turn.Role, Content: turn.Content})
	}

	return append(messages, Message{Role: RoleUser, Content: message})
}

func (o *Orchestrator) completion(ctx context.Context, messages []Message, tools []ToolSchema) (*Message, error) {
	start := time.Now()
	msg, err := o.client.ChatCompletion(ctx, messages, tools)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	o.metrics.LLMCallSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return msg, err
}

// execute runs the requested capability and returns the serialized tool
// payload plus the structured movies attached to the final result.
func (o *Orchestrator) execute(ctx context.Context, call ToolCall) (string, []models.MovieSummary, error) {
	switch call.Function.Name {
	case ToolSearchMovies:
		args, err := parseSearchMoviesArgs(call.Function.Arguments)
		if err != nil {
			return "", nil, err
		}
		criteria := catalog.Compile(args.filters(), catalog.ToolCap)
		movies, err := o.catalog.Search(ctx, criteria)
		if err != nil {
			return "", nil, err
		}
		payload, err := json.Marshal(movies)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode tool result: %w", err)
		}
		return string(payload), movies, nil

	case ToolGetMovieInfo:
		args, err := parseMovieInfoArgs(call.Function.Arguments)
		if err != nil {
			return "", nil, err
		}
		summary, err := o.catalog.GetByTitle(ctx, args.Title)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				// Stay conversational: the model explains the miss.
				return `{"error":"Movie not found"}`, nil, nil
			}
			return "", nil, err
		}
		payload, err := json.Marshal(summary)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode tool result: %w", err)
		}
		return string(payload), []models.MovieSummary{*summary}, nil
	}

	return "", nil, apperr.Validation(fmt.Sprintf("unknown tool %q", call.Function.Name))
}
