// internal/intake/ratelimit.go
package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:intake:"

// RateLimiter is a fixed-window counter per client key, shared by every
// intake server through Redis.
type RateLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

func NewRateLimiter(client redis.Cmdable, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow counts one request for key. When the limit is exceeded it reports
// how long until the window resets.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := rateLimitPrefix + key

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	if count <= int64(r.limit) {
		return true, 0, nil
	}

	ttl, err := r.client.TTL(ctx, k).Result()
	if err != nil {
		return false, r.window, nil
	}
	if ttl < 0 {
		// A counter without expiry would block the key forever. It happens
		// when the first request's EXPIRE failed or never ran.
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = r.window
	}
	return false, ttl, nil
}
