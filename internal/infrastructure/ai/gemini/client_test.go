package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		code int
		kind ai.ErrorKind
	}{
		{http.StatusUnauthorized, ai.KindAuth},
		{http.StatusForbidden, ai.KindAuth},
		{http.StatusBadRequest, ai.KindBadRequest},
		{http.StatusTooManyRequests, ai.KindRateLimit},
		{http.StatusInternalServerError, ai.KindStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			wrapped := fmt.Errorf("generate: %w", &googleapi.Error{Code: tt.code, Message: "nope"})

			var upstream *ai.UpstreamError
			require.True(t, errors.As(classifyError(wrapped), &upstream))
			assert.Equal(t, tt.kind, upstream.Kind)
			assert.Equal(t, tt.code, upstream.StatusCode)
			assert.Equal(t, "nope", upstream.Message)
		})
	}

	var upstream *ai.UpstreamError
	require.True(t, errors.As(classifyError(errors.New("dial tcp: refused")), &upstream))
	assert.Equal(t, ai.KindConnection, upstream.Kind)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}
	assert.Equal(t, `{"a":1}`, responseText(resp))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(nil))
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", zap.NewNop())
	assert.ErrorIs(t, err, ai.ErrMissingAPIKey)
}
