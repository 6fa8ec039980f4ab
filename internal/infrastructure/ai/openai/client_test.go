package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())
}

func TestComplete_Success(t *testing.T) {
	var got chatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"total_tokens":12}}`))
	})

	out, err := client.Complete(context.Background(), outbound.CompletionRequest{
		Model:       "gpt-4",
		System:      "You are a professional chef and nutritionist.",
		Prompt:      "hello",
		Temperature: 0.7,
		MaxTokens:   2000,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, "gpt-4", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 2000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
}

func TestComplete_StatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   ai.ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, ai.KindAuth},
		{"forbidden", http.StatusForbidden, ai.KindAuth},
		{"bad request", http.StatusBadRequest, ai.KindBadRequest},
		{"rate limited", http.StatusTooManyRequests, ai.KindRateLimit},
		{"unavailable", http.StatusServiceUnavailable, ai.KindStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"upstream says no","type":"x"}}`))
			})

			_, err := client.Complete(context.Background(), outbound.CompletionRequest{Prompt: "p"})

			var upstream *ai.UpstreamError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tt.kind, upstream.Kind)
			assert.Equal(t, tt.status, upstream.StatusCode)
			assert.Equal(t, "upstream says no", upstream.Message)
		})
	}
}

func TestComplete_MalformedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.Complete(context.Background(), outbound.CompletionRequest{Prompt: "p"})

	var upstream *ai.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, ai.KindAPI, upstream.Kind)
}

func TestComplete_NoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), outbound.CompletionRequest{Prompt: "p"})

	var upstream *ai.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, ai.KindAPI, upstream.Kind)
}

func TestComplete_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, zap.NewNop())

	_, err := client.Complete(context.Background(), outbound.CompletionRequest{Prompt: "p"})

	var upstream *ai.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, ai.KindConnection, upstream.Kind)
}

func TestComplete_MissingKey(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())

	_, err := client.Complete(context.Background(), outbound.CompletionRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ai.ErrMissingAPIKey)
	assert.Equal(t, defaultBaseURL, client.baseURL)
}

func TestComplete_OversizedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"`))
		_, _ = w.Write([]byte(strings.Repeat("a", maxResponseBytes)))
		_, _ = w.Write([]byte(`"}}]}`))
	})

	_, err := client.Complete(context.Background(), outbound.CompletionRequest{Prompt: "p"})

	var upstream *ai.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, ai.KindAPI, upstream.Kind)
	assert.Contains(t, upstream.Message, "response exceeds")
}
