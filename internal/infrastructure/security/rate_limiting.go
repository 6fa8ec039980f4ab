package security

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"golang.org/x/time/rate"
)

var (
	_ outbound.RateLimitStore = (*MemoryRateLimitStore)(nil)
	_ outbound.RateLimitStore = (*RedisRateLimitStore)(nil)
)

// MemoryRateLimitStore keeps a token bucket per key inside the process.
// Buckets refill at limit/window and hold at most limit tokens.
type MemoryRateLimitStore struct {
	mu       sync.Mutex
	limiters map[string]*bucket
	maxKeys  int
	now      func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	window   time.Duration
}

// NewMemoryRateLimitStore creates an in-process rate limit store
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		limiters: make(map[string]*bucket),
		maxKeys:  10000,
		now:      time.Now,
	}
}

// Allow consumes one token for key
func (s *MemoryRateLimitStore) Allow(_ context.Context, key string, limit int, window time.Duration) (outbound.RateLimitResult, error) {
	if limit <= 0 || window <= 0 {
		return outbound.RateLimitResult{Allowed: true, Limit: limit}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.limiters[key]
	if !ok {
		if len(s.limiters) >= s.maxKeys {
			s.evictIdle(now)
		}
		every := rate.Every(window / time.Duration(limit))
		b = &bucket{limiter: rate.NewLimiter(every, limit), window: window}
		s.limiters[key] = b
	}
	b.lastSeen = now

	reservation := b.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return outbound.RateLimitResult{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			RetryAfter: delay,
		}, nil
	}

	remaining := int(b.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return outbound.RateLimitResult{Allowed: true, Limit: limit, Remaining: remaining}, nil
}

// evictIdle drops buckets untouched for a full window; they would be full anyway
func (s *MemoryRateLimitStore) evictIdle(now time.Time) {
	for key, b := range s.limiters {
		if now.Sub(b.lastSeen) > b.window {
			delete(s.limiters, key)
		}
	}
}

// RedisRateLimitStore implements a sliding window shared between instances
type RedisRateLimitStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRateLimitStore creates a Redis-backed rate limit store
func NewRedisRateLimitStore(client redis.UniversalClient) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client, prefix: "rate_limit:"}
}

// Allow records the request and reports whether it falls within the window
func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (outbound.RateLimitResult, error) {
	if limit <= 0 || window <= 0 {
		return outbound.RateLimitResult{Allowed: true, Limit: limit}, nil
	}

	redisKey := s.prefix + key
	now := time.Now()
	windowStart := now.Add(-window)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	oldestCmd := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	pipe.Expire(ctx, redisKey, window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return outbound.RateLimitResult{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	// count excludes the request just added
	count := int(countCmd.Val())
	result := outbound.RateLimitResult{
		Allowed:   count < limit,
		Limit:     limit,
		Remaining: limit - count - 1,
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}

	if !result.Allowed {
		result.RetryAfter = window
		if oldest := oldestCmd.Val(); len(oldest) > 0 {
			expires := time.Unix(0, int64(oldest[0].Score)).Add(window)
			if wait := expires.Sub(now); wait > 0 {
				result.RetryAfter = wait
			}
		}
	}

	return result, nil
}
