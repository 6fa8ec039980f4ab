// Package openai provides a chat completion client for OpenAI-compatible APIs
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.openai.com/v1"

// maxResponseBytes bounds how much of a completion response is read
const maxResponseBytes = 4 << 20

var _ outbound.CompletionClient = (*Client)(nil)

// Config holds client configuration
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client implements outbound.CompletionClient against /chat/completions
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new OpenAI client. A missing key is reported on every
// call rather than at startup so the rest of the API keeps working.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	logger = logger.Named("openai")

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	if cfg.APIKey == "" {
		logger.Warn("OpenAI API key not configured, AI endpoints will fail")
	} else {
		logger.Info("OpenAI client initialized", zap.String("base_url", baseURL))
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// OpenAI API structures
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Provider names the service for metrics and tracing
func (c *Client) Provider() string {
	return "openai"
}

// Complete sends a system and user message and returns the first choice's content
func (c *Client) Complete(ctx context.Context, req outbound.CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", ai.ErrMissingAPIKey
	}

	messages := make([]message, 0, 2)
	if req.System != "" {
		messages = append(messages, message{Role: "system", Content: req.System})
	}
	messages = append(messages, message{Role: "user", Content: req.Prompt})

	jsonBody, err := json.Marshal(chatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", ai.NewUpstreamError(ai.KindConnection, 0, "API request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", ai.NewUpstreamError(ai.KindConnection, resp.StatusCode, "failed to read response", err)
	}
	if len(body) > maxResponseBytes {
		return "", ai.NewUpstreamError(ai.KindAPI, resp.StatusCode,
			fmt.Sprintf("response exceeds %d bytes", maxResponseBytes), nil)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, body)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", ai.NewUpstreamError(ai.KindAPI, resp.StatusCode, "malformed completion response", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", ai.NewUpstreamError(ai.KindAPI, resp.StatusCode, "no response choices returned", nil)
	}

	c.logger.Debug("OpenAI API call successful",
		zap.String("model", req.Model),
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
		zap.Int("total_tokens", chatResp.Usage.TotalTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}

// classifyStatus maps a non-200 response to an UpstreamError
func classifyStatus(status int, body []byte) error {
	msg := http.StatusText(status)
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		msg = apiErr.Error.Message
	}

	var kind ai.ErrorKind
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ai.KindAuth
	case status == http.StatusBadRequest:
		kind = ai.KindBadRequest
	case status == http.StatusTooManyRequests:
		kind = ai.KindRateLimit
	default:
		kind = ai.KindStatus
	}
	return ai.NewUpstreamError(kind, status, msg, errors.New(string(body)))
}
