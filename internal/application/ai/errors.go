package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/smartmealplanner/backend/internal/domain/ai"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
)

// ErrRateLimited is what every AI operation returns when the completion
// provider throttles us. The HTTP error writer renders it as a 429.
var ErrRateLimited = apperrors.NewUpstreamRateLimitError("")

// Translate converts a completion or decode failure into the error the
// client sees. It is applied to every AI operation.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	if errors.Is(err, ai.ErrMissingAPIKey) {
		return apperrors.NewInternalError(
			"OpenAI API key not configured. Please set the OPENAI_API_KEY environment variable.",
		).WithCause(err)
	}

	var upstream *ai.UpstreamError
	if !errors.As(err, &upstream) {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return apperrors.NewExternalServiceError("OpenAI API error: request timed out", err)
		}
		return apperrors.NewExternalServiceError("OpenAI API error: "+err.Error(), err)
	}

	switch upstream.Kind {
	case ai.KindAuth:
		return apperrors.NewExternalServiceError("API authentication failed", err)
	case ai.KindBadRequest:
		return apperrors.NewBadRequestError(upstream.Message).WithCause(err)
	case ai.KindRateLimit:
		return ErrRateLimited
	case ai.KindStatus:
		return apperrors.NewUpstreamStatusError(upstream.StatusCode, upstream.Message).WithCause(err)
	case ai.KindDecode:
		return apperrors.NewExternalServiceError("Invalid response format from AI service", err)
	default:
		return apperrors.NewExternalServiceError("OpenAI API error: "+upstream.Message, err)
	}
}

// statusLabel is the outcome recorded on api_calls_total
func statusLabel(err error) string {
	if err == nil {
		return "success"
	}
	if errors.Is(err, ai.ErrMissingAPIKey) {
		return "unconfigured"
	}
	var upstream *ai.UpstreamError
	if errors.As(err, &upstream) {
		return string(upstream.Kind)
	}
	return "error"
}

// decodeJSON decodes the JSON document embedded in a model response into out.
// Models sometimes wrap the document in prose or code fences, so everything
// before the first opening bracket and after the last closing one is dropped.
func decodeJSON(text string, out any) error {
	body := extractJSON(text)
	if body == "" {
		return ai.NewUpstreamError(ai.KindDecode, 0, "response contains no JSON document", nil)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return ai.NewUpstreamError(ai.KindDecode, 0, fmt.Sprintf("decode response: %v", err), err)
	}
	return nil
}

func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "}]")
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}
