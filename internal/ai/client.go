package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.openai.com/v1"

type OpenAIClient struct {
	client *resty.Client
	model  string
}

type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func NewOpenAIClient(cfg ClientConfig) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &OpenAIClient{client: c, model: cfg.Model}
}

type chatRequest struct {
	Model       string       `json:"model"`
	Messages    []Message    `json:"messages"`
	Tools       []ToolSchema `json:"tools,omitempty"`
	ToolChoice  string       `json:"tool_choice,omitempty"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ChatCompletion submits one completion request. When tools are offered
// the model decides on its own whether to invoke one.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, messages []Message, tools []ToolSchema) (*Message, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Tools:       tools,
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	if len(tools) > 0 {
		reqBody.ToolChoice = "auto"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}

	if parsed.Error != nil {
		return nil, fmt.Errorf("openai api error: %s", parsed.Error.Message)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("openai returned status %d", resp.StatusCode())
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	return &parsed.Choices[0].Message, nil
}
