package geminiclient

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"grux/config"
)

// ErrMissingAPIKey reports an absent upstream credential. It is surfaced
// before any network I/O.
var ErrMissingAPIKey = errors.New("geminiclient: GEMINI_API_KEY is not configured")

// Client calls the Gemini API with a system instruction and one user turn.
type Client struct {
	apiKey          string
	model           string
	maxOutputTokens int32
	temperature     float32
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

// New builds a client from the application config and the deployment-time
// credential.
func New(cfg config.GeminiConfig, apiKey string) *Client {
	return &Client{
		apiKey:          apiKey,
		model:           cfg.Model,
		maxOutputTokens: int32(cfg.MaxOutputTokens),
		temperature:     float32(cfg.Temperature),
	}
}

// Complete performs one generate-content call. No retries; the caller
// decides what a failure means.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (Completion, error) {
	if c.apiKey == "" {
		return Completion{}, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.apiKey,
	})
	if err != nil {
		return Completion{}, err
	}

	temperature := c.temperature
	result, err := client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
			Temperature:       &temperature,
			MaxOutputTokens:   c.maxOutputTokens,
		},
	)
	if err != nil {
		return Completion{}, err
	}

	completion := Completion{Text: result.Text()}
	if result.UsageMetadata != nil {
		completion.Usage = &Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return completion, nil
}
