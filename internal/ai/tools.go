package ai

import (
	"encoding/json"
	"strings"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/catalog"
)

const (
	ToolSearchMovies = "search_movies"
	ToolGetMovieInfo = "get_movie_info"
)

func toolSchemas() []ToolSchema {
	return []ToolSchema{
		{
			Type: "function",
			Function: FunctionSchema{
				Name:        ToolSearchMovies,
				Description: "Search for movies based on various criteria",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"genres": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Movie genres to search for",
						},
						"actors": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Actors to search for",
						},
						"directors": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Directors to search for",
						},
						"year_from": map[string]interface{}{
							"type":        "number",
							"description": "Start year for movie search",
						},
						"year_to": map[string]interface{}{
							"type":        "number",
							"description": "End year for movie search",
						},
						"min_rating": map[string]interface{}{
							"type":        "number",
							"description": "Minimum rating (0-10)",
						},
						"limit": map[string]interface{}{
							"type":        "number",
							"description": "Number of movies to return (max 10)",
						},
					},
				},
			},
		},
		{
			Type: "function",
			Function: FunctionSchema{
				Name:        ToolGetMovieInfo,
				Description: "Get detailed information about a specific movie",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"title": map[string]interface{}{
							"type":        "string",
							"description": "Movie title to search for",
						},
					},
					"required": []string{"title"},
				},
			},
		},
	}
}

type searchMoviesArgs struct {
	Genres    []string `json:"genres"`
	Actors    []string `json:"actors"`
	Directors []string `json:"directors"`
	YearFrom  int      `json:"year_from"`
	YearTo    int      `json:"year_to"`
	MinRating float64  `json:"min_rating"`
	Limit     int      `json:"limit"`
}

func parseSearchMoviesArgs(raw string) (searchMoviesArgs, error) {
	var args searchMoviesArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return searchMoviesArgs{}, apperr.Validation("malformed search_movies arguments")
	}
	return args, nil
}

// filters maps tool arguments onto the raw filter shape the compiler
// accepts. The tool cap is applied by Compile, not trusted from the model.
func (a searchMoviesArgs) filters() catalog.Filters {
	return catalog.Filters{
		Genres:    a.Genres,
		YearFrom:  a.YearFrom,
		YearTo:    a.YearTo,
		Directors: a.Directors,
		Actors:    a.Actors,
		MinRating: a.MinRating,
		Limit:     a.Limit,
	}
}

type movieInfoArgs struct {
	Title string `json:"title"`
}

func parseMovieInfoArgs(raw string) (movieInfoArgs, error) {
	var args movieInfoArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return movieInfoArgs{}, apperr.Validation("malformed get_movie_info arguments")
	}
	if strings.TrimSpace(args.Title) == "" {
		return movieInfoArgs{}, apperr.Validation("get_movie_info requires a title")
	}
	return args, nil
}
