package openaiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grux/config"
)

func newTestClient(baseURL, apiKey string) *Client {
	return New(config.OpenAIConfig{
		BaseURL:         baseURL,
		Model:           "gpt-4.1-2025-04-14",
		MaxOutputTokens: 1000,
		Temperature:     0.7,
	}, apiKey)
}

func TestCompleteSendsTwoTurnPayload(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Hi there"}},
			},
			"usage": map[string]any{
				"prompt_tokens":     20,
				"completion_tokens": 5,
				"total_tokens":      25,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	completion, err := client.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, "Hi there", completion.Text)
	require.NotNil(t, completion.Usage)
	assert.Equal(t, 25, completion.Usage.TotalTokens)

	assert.Equal(t, "gpt-4.1-2025-04-14", captured["model"])
	assert.Equal(t, float64(1000), captured["max_tokens"])
	assert.Equal(t, 0.7, captured["temperature"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "system prompt", first["content"])
	assert.Equal(t, "user", second["role"])
	assert.Equal(t, "user prompt", second["content"])
}

func TestCompleteMissingAPIKeyFailsFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("upstream must not be called without a credential")
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.Complete(context.Background(), "system", "user")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestCompleteNon2xxIsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	_, err := client.Complete(context.Background(), "system", "user")

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
}

func TestCompleteMissingChoicesYieldsEmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	completion, err := client.Complete(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Empty(t, completion.Text)
}
