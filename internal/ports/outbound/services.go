package outbound

import (
	"context"
	"time"
)

// CompletionRequest is a single-turn chat completion
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// CompletionClient talks to a large language model provider. Failures are
// reported as *ai.UpstreamError so callers can classify them.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Provider() string
}

// RateLimitResult describes the outcome of a single rate limit check
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimitStore counts requests per key over a window
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitResult, error)
}
