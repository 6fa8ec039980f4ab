// Package gemini provides a completion client backed by Google Gemini
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

var _ outbound.CompletionClient = (*Client)(nil)

// Client implements outbound.CompletionClient with the Gemini API
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a new Gemini API client
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ai.ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{client: client, model: model, logger: logger.Named("gemini")}, nil
}

// Provider names the service for metrics and tracing
func (c *Client) Provider() string {
	return "gemini"
}

// Complete sends the prompt to the configured model and returns the generated text
func (c *Client) Complete(ctx context.Context, req outbound.CompletionRequest) (string, error) {
	name := req.Model
	if name == "" {
		name = c.model
	}

	model := c.client.GenerativeModel(name)
	model.SetTemperature(float32(req.Temperature))
	model.ResponseMIMEType = "application/json"
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", classifyError(err)
	}

	text := responseText(resp)
	if text == "" {
		return "", ai.NewUpstreamError(ai.KindAPI, 0, "no content generated", nil)
	}
	return text, nil
}

// Close closes the underlying Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// classifyError maps Gemini API errors onto UpstreamError kinds
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return ai.NewUpstreamError(ai.KindConnection, 0, err.Error(), err)
	}

	msg := apiErr.Message
	if msg == "" {
		msg = http.StatusText(apiErr.Code)
	}

	var kind ai.ErrorKind
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ai.KindAuth
	case http.StatusBadRequest:
		kind = ai.KindBadRequest
	case http.StatusTooManyRequests:
		kind = ai.KindRateLimit
	default:
		kind = ai.KindStatus
	}
	return ai.NewUpstreamError(kind, apiErr.Code, msg, err)
}
