package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Anthropic API base URL.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultMaxTokens is sent when ChatParams.MaxTokens is zero.
	DefaultMaxTokens = 1000

	apiVersion = "2023-06-01"
)

var (
	// ErrUnauthorized is returned for 401/403 responses.
	ErrUnauthorized = errors.New("model API rejected credentials")

	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New("model API rate limit exceeded")

	// ErrEmptyReply is returned when the reply has no text content.
	ErrEmptyReply = errors.New("model returned no text content")
)

// APIError is a non-2xx response from the model API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("model API error %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("model API error %d: %s", e.StatusCode, e.Message)
}

// Observer is notified after every Complete call with its outcome
// ("ok" or "error") and duration.
type Observer func(outcome string, elapsed time.Duration)

// Client is a rate-limited client for the Anthropic Messages API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	observe    Observer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithModel sets the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit caps requests per second. Zero or negative disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithObserver registers a callback for call metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observe = o
	}
}

// NewClient creates a Messages API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		limiter:    rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the default model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends messages and returns the concatenated text of the reply.
func (c *Client) Complete(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	start := time.Now()
	reply, err := c.complete(ctx, messages, params)
	if c.observe != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.observe(outcome, time.Since(start))
	}
	return reply, err
}

func (c *Client) complete(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	payload := messagesRequest{
		Model:       c.model,
		MaxTokens:   DefaultMaxTokens,
		System:      params.System,
		Messages:    messages,
		Temperature: params.Temperature,
	}
	if params.Model != "" {
		payload.Model = params.Model
	}
	if params.MaxTokens > 0 {
		payload.MaxTokens = params.MaxTokens
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var msg messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyReply
	}
	return sb.String(), nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	var parsed errorResponse
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error.Message != "" {
		apiErr.Type = parsed.Error.Type
		apiErr.Message = parsed.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, apiErr)
	}
	return apiErr
}
