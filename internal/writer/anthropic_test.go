package writer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerball-news/internal/apperrors"
)

func newTestGenerator(t *testing.T, apiKey string, handler http.HandlerFunc) *AnthropicGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewAnthropicGenerator(AnthropicOptions{
		APIKey:      apiKey,
		BaseURL:     srv.URL,
		Model:       "claude-sonnet-4-5",
		MaxTokens:   300,
		Temperature: 0.5,
	})
}

const textReply = `{
	"id": "msg_01",
	"type": "message",
	"role": "assistant",
	"model": "claude-sonnet-4-5",
	"content": [{"type": "text", "text": "Headline: X\n\nBody text"}],
	"stop_reason": "end_turn",
	"stop_sequence": null,
	"usage": {"input_tokens": 120, "output_tokens": 8}
}`

func TestAnthropicGeneratorGenerate(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		MaxTokens   int64   `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	var gotKey string

	gen := newTestGenerator(t, "sk-test", func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textReply))
	})

	text, err := gen.Generate(context.Background(), "write an article")
	require.NoError(t, err)
	assert.Equal(t, "Headline: X\n\nBody text", text)

	assert.Equal(t, "sk-test", gotKey)
	assert.Equal(t, "claude-sonnet-4-5", got.Model)
	assert.Equal(t, int64(300), got.MaxTokens)
	assert.InDelta(t, 0.5, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestAnthropicGeneratorAPIError(t *testing.T) {
	calls := 0
	gen := newTestGenerator(t, "sk-test", func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"quota exceeded"}}`))
	})

	_, err := gen.Generate(context.Background(), "write an article")
	assert.ErrorIs(t, err, apperrors.ErrGeneration)
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestAnthropicGeneratorMissingKey(t *testing.T) {
	gen := newTestGenerator(t, "", func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected without an API key")
	})

	_, err := gen.Generate(context.Background(), "write an article")
	assert.ErrorIs(t, err, apperrors.ErrGeneration)
}

func TestAnthropicGeneratorIgnoresSDKEnvironment(t *testing.T) {
	envHit := false
	envSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		envHit = true
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textReply))
	}))
	t.Cleanup(envSrv.Close)

	t.Setenv("ANTHROPIC_BASE_URL", envSrv.URL)
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "env-token")

	var gotAuth, gotKey string
	gen := newTestGenerator(t, "sk-configured", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textReply))
	})

	_, err := gen.Generate(context.Background(), "write an article")
	require.NoError(t, err)

	assert.False(t, envHit, "request went to ANTHROPIC_BASE_URL")
	assert.Empty(t, gotAuth)
	assert.Equal(t, "sk-configured", gotKey)
}

func TestNewAnthropicGeneratorDefaultBaseURL(t *testing.T) {
	gen := NewAnthropicGenerator(AnthropicOptions{APIKey: "sk-test"})
	assert.Equal(t, DefaultAnthropicBaseURL, gen.opts.BaseURL)
}
