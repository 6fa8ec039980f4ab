package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"bad request", NewBadRequestError("nope"), http.StatusBadRequest},
		{"duplicate email", NewEmailAlreadyExistsError("a@b.c"), http.StatusBadRequest},
		{"duplicate username", NewUsernameAlreadyExistsError("chef"), http.StatusBadRequest},
		{"inactive", NewInactiveUserError(), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("no"), http.StatusUnauthorized},
		{"credentials", NewInvalidCredentialsError(), http.StatusUnauthorized},
		{"not found", NewNotFoundError("Recipe"), http.StatusNotFound},
		{"validation", NewValidationError("bad"), http.StatusUnprocessableEntity},
		{"local rate limit", NewTooManyRequestsError(time.Minute), http.StatusTooManyRequests},
		{"upstream rate limit", NewUpstreamRateLimitError(""), http.StatusTooManyRequests},
		{"upstream status", NewUpstreamStatusError(http.StatusBadGateway, "bad gateway"), http.StatusBadGateway},
		{"database", NewDatabaseError("save", stderrors.New("disk full")), http.StatusInternalServerError},
		{"external", NewExternalServiceError("OpenAI API error: boom", nil), http.StatusInternalServerError},
		{"internal", NewInternalError(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Recipe not found", NewNotFoundError("Recipe").Message)
	assert.Equal(t, "Resource not found", NewNotFoundError("").Message)
	assert.Equal(t, "An unexpected error occurred", NewInternalError("").Message)
	assert.Contains(t, NewUpstreamRateLimitError("").Message, "rate limit")
	assert.Equal(t, 60, NewTooManyRequestsError(time.Minute).Metadata["retry_after_seconds"])
}

func TestAsAndIs(t *testing.T) {
	cause := stderrors.New("connection reset")
	appErr := NewDatabaseError("load recipe", cause)
	wrapped := fmt.Errorf("repository: %w", appErr)

	found, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, appErr, found)
	assert.True(t, Is(wrapped, CodeDatabaseError))
	assert.False(t, Is(wrapped, CodeNotFound))
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, CodeDatabaseError, GetCode(wrapped))
	assert.Equal(t, CodeInternal, GetCode(cause))

	_, ok = As(cause)
	assert.False(t, ok)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	existing := NewNotFoundError("Item")
	assert.Same(t, existing, Wrap(existing, "ignored"))

	plain := stderrors.New("boom")
	wrapped := Wrap(plain, "could not load")
	assert.Equal(t, CodeInternal, wrapped.Code)
	assert.Equal(t, "could not load", wrapped.Message)
	assert.ErrorIs(t, wrapped, plain)
}

func TestValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "email", Tag: "email", Message: "email must be a valid email address"},
		{Field: "password", Tag: "min", Message: "password must be at least 8 characters"},
	})

	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, "email must be a valid email address; password must be at least 8 characters", err.Details)
	assert.Equal(t, "validation failed", ValidationErrors(nil).Error())
}

func TestToErrorResponse(t *testing.T) {
	resp := ToErrorResponse(NewNotFoundError("Recipe"), "req-123")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body struct {
		Detail string `json:"detail"`
		Error  struct {
			Code      string `json:"code"`
			Message   string `json:"message"`
			RequestID string `json:"request_id"`
			Timestamp string `json:"timestamp"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Recipe not found", body.Detail)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "req-123", body.Error.RequestID)
	_, err = time.Parse(time.RFC3339, body.Error.Timestamp)
	assert.NoError(t, err)
}
