package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/llm"
)

func newTestServer(t *testing.T, status int, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientValidates(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		model  string
	}{
		{name: "missing key", apiKey: " ", model: "deepseek-r1-distill-qwen-32b"},
		{name: "missing model", apiKey: "key", model: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.apiKey, tt.model)
			assert.Error(t, err)
		})
	}
}

func TestCompleteSendsFixedParameters(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		payload map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","choices":[{"message":{"role":"assistant","content":"<think>hm</think>Match Score: 80"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", "deepseek-r1-distill-qwen-32b", WithBaseURL(srv.URL+"/openai/v1/"))
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, "<think>hm</think>Match Score: 80", got)

	assert.Equal(t, "/openai/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "deepseek-r1-distill-qwen-32b", payload["model"])
	assert.Equal(t, 0.7, payload["temperature"])
	assert.Equal(t, float64(2000), payload["max_tokens"])

	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	user := messages[1].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "You are an expert resume analyzer and career coach.", system["content"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "analyze this", user["content"])
}

func TestCompleteFailuresAreWrappedAndNotRetried(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "auth error object", status: http.StatusUnauthorized, body: `{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`},
		{name: "quota exceeded", status: http.StatusTooManyRequests, body: `{"error":{"message":"Rate limit reached","type":"tokens"}}`},
		{name: "server error plain text", status: http.StatusBadGateway, body: `upstream unavailable`},
		{name: "malformed json", status: http.StatusOK, body: `{"choices":`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "empty content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := newTestServer(t, tt.status, tt.body, &calls)
			client, err := NewClient("test-key", "model", WithBaseURL(srv.URL))
			require.NoError(t, err)

			got, err := client.Complete(context.Background(), "prompt")
			require.Error(t, err)
			assert.ErrorIs(t, err, llm.ErrRequestFailed)
			assert.Empty(t, got)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestCompleteNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewClient("test-key", "model", WithBaseURL(url))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, llm.ErrRequestFailed)
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", "model", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrRequestFailed)
	assert.Contains(t, err.Error(), "timeout")
}

func TestWithHTTPClientUsed(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"choices":[{"message":{"content":"ok"}}]}`, nil)
	client, err := NewClient("test-key", "model", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.Same(t, srv.Client(), client.httpClient)

	got, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}
