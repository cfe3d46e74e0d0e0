package gatewayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"grux/chat"
)

const completionPath = "/api/v1/chat-completion"

// Client talks to the completion gateway over its JSON wire contract and
// implements chat.Completer.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// CompletionRequest is the gateway request body. Files carry metadata only.
type CompletionRequest struct {
	Message string            `json:"message"`
	Files   []chat.Attachment `json:"files"`
}

// Usage mirrors the upstream token accounting when the gateway passes it
// through.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is the gateway response body. Success is authoritative:
// any body with success != true is a failure regardless of HTTP status.
type CompletionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Usage   *Usage `json:"usage,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HTTPError reports a non-2xx gateway response that did not carry a
// decodable body.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gateway request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// APIError reports a well-formed gateway response with success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway reported failure: %s", e.Message)
}

// New builds a client against GRUX_GATEWAY_BASE_URL, falling back to the
// local default.
func New() *Client {
	base := os.Getenv("GRUX_GATEWAY_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return NewWithClient(&http.Client{Timeout: 5 * time.Minute}, base)
}

// NewWithClient builds a client with an explicit http.Client and base URL.
// A nil httpClient falls back to http.DefaultClient.
func NewWithClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// Complete sends one user turn to the gateway and returns the assistant
// reply text.
func (c *Client) Complete(ctx context.Context, text string, files []chat.Attachment) (string, error) {
	if files == nil {
		files = []chat.Attachment{}
	}
	payload := CompletionRequest{Message: text, Files: files}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionPath, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	const maxBodySize = 5 * 1024 * 1024
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return "", fmt.Errorf("gateway response read failed: %w", readErr)
	}

	var out CompletionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
		}
		return "", fmt.Errorf("gateway response decode failed: %w", err)
	}

	if !out.Success {
		message := out.Error
		if message == "" {
			message = "upstream completion failed"
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	return out.Message, nil
}
