package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"booklingo/internal/contextutil"
)

// Client is a client for an OpenAI-compatible chat completions API
// (llama.cpp server, Ollama, vLLM).
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	client      *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff sets the delay before the first retry; it doubles on every attempt.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.baseBackoff = d }
}

// WithRateLimit caps outgoing requests per second. A non-positive value disables the limit.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
}

// NewClient creates a new LLM client.
func NewClient(baseURL, apiKey, model string, opts ...Option) *Client {
	c := &Client{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		client:      &http.Client{Timeout: 120 * time.Second},
		maxRetries:  2,
		baseBackoff: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat sends a single user message and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	return c.ChatWithMessages(ctx, []Message{{Role: "user", Content: message}}, ChatParams{})
}

// ChatWithMessages sends a chat completion request with the full message list.
// Transient failures (network errors, 408, 429, 5xx) are retried with doubling backoff.
func (c *Client) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	payload := ChatRequest{
		Model:       c.Model,
		Messages:    messages,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	if params.Model != "" {
		payload.Model = params.Model
	}
	if params.JSON {
		payload.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var chatResp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/v1/chat/completions", body, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ListModels returns the IDs of the models the server reports.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var resp ModelsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/models", nil, &resp); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	logger := contextutil.LoggerFromContext(ctx)
	backoff := c.baseBackoff

	for attempt := 0; ; attempt++ {
		err := c.doOnce(ctx, method, path, body, out)
		if err == nil {
			return nil
		}
		if attempt >= c.maxRetries || !isRetryable(ctx, err) {
			return err
		}

		delay := retryDelay(err, backoff)
		logger.Warn("llm request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", delay,
			"error", err.Error(),
		)
		if err := sleepCtx(ctx, delay); err != nil {
			return err
		}
		backoff *= 2
	}
}

func (c *Client) doOnce(ctx context.Context, method, path string, body []byte, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return newStatusError(resp, raw)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
