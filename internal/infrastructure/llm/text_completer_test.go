package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickai-api/internal/application/generation"
	"quickai-api/internal/config"
)

func newFactory(baseURL, apiKey string) *EinoFactory {
	return NewEinoFactory(&config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "gemini",
			Providers: map[string]config.ProviderConfig{
				"gemini": {
					APIKey:      apiKey,
					BaseURL:     baseURL,
					Model:       "gemini-2.0-flash",
					MaxTokens:   2000,
					Temperature: 0.7,
					Timeout:     5 * time.Second,
				},
			},
		},
	})
}

func TestConfiguredRequiresAPIKey(t *testing.T) {
	assert.False(t, NewTextCompleter(newFactory("http://localhost", ""), "", time.Second).Configured())
	assert.True(t, NewTextCompleter(newFactory("http://localhost", "k"), "", time.Second).Configured())
	assert.False(t, NewTextCompleter(newFactory("http://localhost", "k"), "missing", time.Second).Configured())

	var nilCompleter *TextCompleter
	assert.False(t, nilCompleter.Configured())
}

func TestCompleteSendsMaxTokens(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gemini-2.0-flash",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Hello world  "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5}
		}`))
	}))
	defer srv.Close()

	c := NewTextCompleter(newFactory(srv.URL, "k"), "", 5*time.Second)
	out, err := c.Complete(context.Background(), generation.CompletionRequest{Prompt: "write", MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", out)
	assert.EqualValues(t, 100, got["max_tokens"])
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewTextCompleter(newFactory(srv.URL, "k"), "", 5*time.Second)
	_, err := c.Complete(context.Background(), generation.CompletionRequest{Prompt: "write"})
	require.Error(t, err)
}
