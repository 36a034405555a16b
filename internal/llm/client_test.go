package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Complete(t *testing.T) {
	var got messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/messages" {
			t.Errorf("expected /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != apiVersion {
			t.Errorf("anthropic-version = %q, want %s", r.Header.Get("anthropic-version"), apiVersion)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","content":[{"type":"text","text":"Hello "},{"type":"text","text":"there"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	var outcomes []string
	client := NewClient("test-key",
		WithBaseURL(server.URL),
		WithModel("test-model"),
		WithRateLimit(0),
		WithObserver(func(outcome string, _ time.Duration) { outcomes = append(outcomes, outcome) }),
	)

	reply, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "Hi"}}, ChatParams{System: "be brief", MaxTokens: 2000})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "Hello there" {
		t.Errorf("Complete() = %q, want %q", reply, "Hello there")
	}
	if got.Model != "test-model" || got.MaxTokens != 2000 || got.System != "be brief" {
		t.Errorf("Complete() sent %+v", got)
	}
	if len(outcomes) != 1 || outcomes[0] != "ok" {
		t.Errorf("observer outcomes = %v, want [ok]", outcomes)
	}
}

func TestClient_Complete_DefaultMaxTokens(t *testing.T) {
	var got messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL), WithRateLimit(0))
	if _, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, ChatParams{}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got.MaxTokens != DefaultMaxTokens {
		t.Errorf("max_tokens = %d, want %d", got.MaxTokens, DefaultMaxTokens)
	}
	if got.Model != DefaultModel {
		t.Errorf("model = %s, want %s", got.Model, DefaultModel)
	}
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantIs  error
		wantAPI bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`, wantIs: ErrUnauthorized, wantAPI: true},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":{"type":"rate_limit_error","message":"slow down"}}`, wantIs: ErrRateLimited, wantAPI: true},
		{name: "overloaded", status: 529, body: `{"error":{"type":"overloaded_error","message":"Overloaded"}}`, wantAPI: true},
		{name: "empty reply", status: http.StatusOK, body: `{"content":[]}`, wantIs: ErrEmptyReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("k", WithBaseURL(server.URL), WithRateLimit(0))
			_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, ChatParams{})
			if err == nil {
				t.Fatal("Complete() expected error, got nil")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("Complete() error = %v, want %v", err, tt.wantIs)
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) != tt.wantAPI {
				t.Errorf("errors.As(APIError) = %v, want %v", !tt.wantAPI, tt.wantAPI)
			}
			if tt.wantAPI && apiErr.StatusCode != tt.status {
				t.Errorf("APIError.StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
		})
	}
}

func TestClient_Complete_NoMessages(t *testing.T) {
	client := NewClient("k")
	if _, err := client.Complete(context.Background(), nil, ChatParams{}); err == nil {
		t.Error("Complete() expected error for empty messages")
	}
}
