package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func chatReply(w http.ResponseWriter, content string) {
	resp := ChatResponse{
		ID:     "test-id",
		Object: "chat.completion",
		Choices: []ChatChoice{
			{
				Index:        0,
				Message:      Message{Role: "assistant", Content: content},
				FinishReason: "stop",
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8081", "test-key", "test-model", WithTimeout(5*time.Second), WithMaxRetries(4))
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8081" {
		t.Errorf("NewClient() BaseURL = %v, want http://localhost:8081", client.BaseURL)
	}
	if client.Model != "test-model" {
		t.Errorf("NewClient() Model = %v, want test-model", client.Model)
	}
	if client.client.Timeout != 5*time.Second {
		t.Errorf("NewClient() timeout = %v, want 5s", client.client.Timeout)
	}
	if client.maxRetries != 4 {
		t.Errorf("NewClient() maxRetries = %v, want 4", client.maxRetries)
	}
	if client.limiter != nil {
		t.Error("NewClient() limiter should be nil without WithRateLimit")
	}
}

func TestClient_Chat(t *testing.T) {
	tests := []struct {
		name       string
		serverResp func(w http.ResponseWriter, r *http.Request)
		wantReply  string
		wantErr    bool
	}{
		{
			name: "successful chat",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1/chat/completions" {
					t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer test-key" {
					t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
				}
				chatReply(w, "Hi there!")
			},
			wantReply: "Hi there!",
		},
		{
			name: "no choices returned",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(ChatResponse{ID: "test-id"})
			},
			wantErr: true,
		},
		{
			name: "bad request is not retried",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad request", http.StatusBadRequest)
			},
			wantErr: true,
		},
		{
			name: "invalid json",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model", WithMaxRetries(0))
			reply, err := client.Chat(context.Background(), "Hello")

			if (err != nil) != tt.wantErr {
				t.Errorf("Chat() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && reply != tt.wantReply {
				t.Errorf("Chat() reply = %v, want %v", reply, tt.wantReply)
			}
		})
	}
}

func TestClient_ChatWithMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		if len(req.Messages) != 2 {
			t.Errorf("expected 2 messages, got %d", len(req.Messages))
		}
		if req.Model != "custom-model" {
			t.Errorf("expected model custom-model, got %s", req.Model)
		}
		if req.Temperature != 0.3 {
			t.Errorf("expected temperature 0.3, got %v", req.Temperature)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %+v", req.ResponseFormat)
		}
		chatReply(w, "Response")
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	messages := []Message{
		{Role: "system", Content: "You are a helpful assistant"},
		{Role: "user", Content: "Hello"},
	}
	params := ChatParams{Model: "custom-model", MaxTokens: 100, Temperature: 0.3, JSON: true}

	reply, err := client.ChatWithMessages(context.Background(), messages, params)
	if err != nil {
		t.Fatalf("ChatWithMessages() error = %v", err)
	}
	if reply != "Response" {
		t.Errorf("ChatWithMessages() reply = %v, want Response", reply)
	}
}

func TestClient_ChatWithMessages_DefaultModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req) // Ignore decode error in test

		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %s", req.Model)
		}
		if req.ResponseFormat != nil {
			t.Errorf("expected no response format, got %+v", req.ResponseFormat)
		}
		chatReply(w, "Response")
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	reply, err := client.ChatWithMessages(context.Background(), []Message{{Role: "user", Content: "Hello"}}, ChatParams{})
	if err != nil {
		t.Fatalf("ChatWithMessages() error = %v", err)
	}
	if reply != "Response" {
		t.Errorf("ChatWithMessages() reply = %v, want Response", reply)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		failures  int32
		retries   int
		wantErr   bool
		wantCalls int32
	}{
		{name: "503 then success", status: http.StatusServiceUnavailable, failures: 2, retries: 2, wantCalls: 3},
		{name: "429 then success", status: http.StatusTooManyRequests, failures: 1, retries: 2, wantCalls: 2},
		{name: "retries exhausted", status: http.StatusBadGateway, failures: 5, retries: 2, wantErr: true, wantCalls: 3},
		{name: "client error not retried", status: http.StatusUnauthorized, failures: 5, retries: 2, wantErr: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) <= tt.failures {
					http.Error(w, "unavailable", tt.status)
					return
				}
				chatReply(w, "ok")
			}))
			defer server.Close()

			client := NewClient(server.URL, "k", "m", WithMaxRetries(tt.retries), WithBackoff(time.Millisecond))
			_, err := client.Chat(context.Background(), "Hello")

			if (err != nil) != tt.wantErr {
				t.Errorf("Chat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("server saw %d calls, want %d", got, tt.wantCalls)
			}
			var se *StatusError
			if tt.wantErr && !errors.As(err, &se) {
				t.Errorf("error %v is not a *StatusError", err)
			}
		})
	}
}

func TestClient_CancelledContextStopsRetrying(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := NewClient(server.URL, "k", "m", WithMaxRetries(5), WithBackoff(time.Hour))

	done := make(chan error, 1)
	go func() {
		_, err := client.Chat(ctx, "Hello")
		done <- err
	}()

	// Wait for the first attempt, then cancel while the client sleeps.
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Chat() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Chat() did not return after cancellation")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls, want 1", got)
	}
}

func TestClient_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, "ok")
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", "m", WithRateLimit(20))

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.Chat(context.Background(), "Hello"); err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
	}
	// Burst 1 at 20 rps: the second and third calls wait ~50ms each.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 calls took %v, want rate limiting to space them out", elapsed)
	}
}

func TestClient_ListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/models" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"llama3.2"},{"id":"qwen2.5"}]}`))
	}))
	defer server.Close()

	models, err := NewClient(server.URL, "k", "m").ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if strings.Join(models, ",") != "llama3.2,qwen2.5" {
		t.Errorf("ListModels() = %v", models)
	}
}
