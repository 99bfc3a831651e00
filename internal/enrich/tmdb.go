// Package enrich fills poster/backdrop artwork for seeded catalog
// entries from TMDb. Best-effort: seeding proceeds without artwork when
// TMDb is unavailable.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const imageBaseURL = "https://image.tmdb.org/t/p"

type TMDBClient struct {
	client *resty.Client
	apiKey string
}

func NewTMDBClient(apiKey string) *TMDBClient {
	c := resty.New().
		SetBaseURL("https://api.themoviedb.org/3").
		SetTimeout(30 * time.Second)
	return &TMDBClient{client: c, apiKey: apiKey}
}

type Artwork struct {
	PosterURL   string
	BackdropURL string
}

type searchResponse struct {
	Results []struct {
		Title        string `json:"title"`
		ReleaseDate  string `json:"release_date"`
		PosterPath   string `json:"poster_path"`
		BackdropPath string `json:"backdrop_path"`
	} `json:"results"`
}

// Lookup resolves artwork for a title/year pair, preferring an exact
// release-year match and falling back to the first result.
func (c *TMDBClient) Lookup(ctx context.Context, title string, year int) (*Artwork, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("query", title).
		SetQueryParam("page", "1").
		Get("/search/movie")
	if err != nil {
		return nil, fmt.Errorf("tmdb request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("tmdb returned status %d", resp.StatusCode())
	}

	var parsed searchResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode tmdb response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("no tmdb match for %q", title)
	}

	best := parsed.Results[0]
	yearPrefix := fmt.Sprintf("%d-", year)
	for _, result := range parsed.Results {
		if len(result.ReleaseDate) >= 5 && result.ReleaseDate[:5] == yearPrefix {
			best = result
			break
		}
	}

	return &Artwork{
		PosterURL:   imageURL(best.PosterPath, "w500"),
		BackdropURL: imageURL(best.BackdropPath, "w1280"),
	}, nil
}

func imageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", imageBaseURL, size, path)
}
