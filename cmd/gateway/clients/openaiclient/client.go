package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"grux/cmd/gateway/httpclient"
	"grux/config"
)

// ErrMissingAPIKey reports an absent upstream credential. It is surfaced
// before any network I/O.
var ErrMissingAPIKey = errors.New("openaiclient: OPENAI_API_KEY is not configured")

// Client calls the OpenAI chat-completions endpoint with a fixed two-message
// payload: one system turn and one user turn.
type Client struct {
	base            *httpclient.BaseClient
	apiKey          string
	model           string
	maxOutputTokens int
	temperature     float64
}

// Usage is the upstream token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is one upstream reply.
type Completion struct {
	Text  string
	Usage *Usage
}

// HTTPError reports a non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("openai request failed: status=%d body=%s", e.StatusCode, e.Body)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

// New builds a client from the application config and the deployment-time
// credential.
func New(cfg config.OpenAIConfig, apiKey string) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.openai.com"
	}

	client := httpclient.New(httpclient.Config{Timeout: 2 * time.Minute})
	return &Client{
		base:            httpclient.NewBaseClientWithClient(client, base),
		apiKey:          apiKey,
		model:           cfg.Model,
		maxOutputTokens: cfg.MaxOutputTokens,
		temperature:     cfg.Temperature,
	}
}

// Complete performs one chat-completion call. No retries; the caller decides
// what a failure means.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (Completion, error) {
	if c.apiKey == "" {
		return Completion{}, ErrMissingAPIKey
	}

	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.maxOutputTokens,
		Temperature: c.temperature,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Completion{}, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/v1/chat/completions", nil, bytes.NewReader(buf))
	if err != nil {
		return Completion{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.base.Do(req)
	if err != nil {
		return Completion{}, err
	}
	defer resp.Body.Close()

	const maxBodySize = 5 * 1024 * 1024
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return Completion{}, fmt.Errorf("openai response read failed: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Completion{}, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Completion{}, fmt.Errorf("openai response decode failed: %w", err)
	}

	var text string
	if len(out.Choices) > 0 {
		text = out.Choices[0].Message.Content
	}
	return Completion{Text: text, Usage: out.Usage}, nil
}
