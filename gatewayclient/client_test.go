package gatewayclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"grux/chat"
	"grux/gatewayclient"
)

func TestCompleteEchoRoundTrip(t *testing.T) {
	// the mocked gateway echoes the submitted message as the assistant reply
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req gatewayclient.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(gatewayclient.CompletionResponse{
			Success: true,
			Message: req.Message,
		})
	}))
	defer server.Close()

	client := gatewayclient.NewWithClient(server.Client(), server.URL)
	reply, err := client.Complete(context.Background(), "Hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Hello" {
		t.Fatalf("expected echoed reply %q, got %q", "Hello", reply)
	}
}

func TestCompleteSendsAttachmentMetadata(t *testing.T) {
	var captured gatewayclient.CompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(gatewayclient.CompletionResponse{Success: true, Message: "ok"})
	}))
	defer server.Close()

	client := gatewayclient.NewWithClient(server.Client(), server.URL)
	files := []chat.Attachment{{Name: "a.png", Size: 512, Type: "image/png"}}
	if _, err := client.Complete(context.Background(), "", files); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Message != "" {
		t.Fatalf("expected empty message field, got %q", captured.Message)
	}
	if len(captured.Files) != 1 {
		t.Fatalf("expected one file entry, got %d", len(captured.Files))
	}
	if captured.Files[0].Name != "a.png" || captured.Files[0].Size != 512 || captured.Files[0].Type != "image/png" {
		t.Fatalf("unexpected file metadata: %+v", captured.Files[0])
	}
}

func TestCompleteTreatsSuccessFalseAsFailure(t *testing.T) {
	testCases := []struct {
		name   string
		status int
	}{
		{name: "failure body with 200", status: http.StatusOK},
		{name: "failure body with 500", status: http.StatusInternalServerError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				json.NewEncoder(w).Encode(gatewayclient.CompletionResponse{
					Success: false,
					Error:   "upstream_error",
				})
			}))
			defer server.Close()

			client := gatewayclient.NewWithClient(server.Client(), server.URL)
			_, err := client.Complete(context.Background(), "Hello", nil)

			var apiErr *gatewayclient.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Message != "upstream_error" {
				t.Fatalf("expected error message %q, got %q", "upstream_error", apiErr.Message)
			}
		})
	}
}

func TestCompleteUndecodableNon200IsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client := gatewayclient.NewWithClient(server.Client(), server.URL)
	_, err := client.Complete(context.Background(), "Hello", nil)

	var httpErr *gatewayclient.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", httpErr.StatusCode)
	}
}

func TestSessionRoundTripThroughGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gatewayclient.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(gatewayclient.CompletionResponse{Success: true, Message: req.Message})
	}))
	defer server.Close()

	session := chat.NewSession(gatewayclient.NewWithClient(server.Client(), server.URL))
	if _, err := session.Submit(context.Background(), "round trip", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log := session.Log()
	if len(log) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(log))
	}
	if log[1].Role != chat.RoleAssistant || log[1].Content != "round trip" {
		t.Fatalf("expected echoed assistant message, got %+v", log[1])
	}
}

func TestCompleteNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := gatewayclient.NewWithClient(nil, server.URL)
	if _, err := client.Complete(context.Background(), "Hello", nil); err == nil {
		t.Fatalf("expected network error against closed server")
	}
}
