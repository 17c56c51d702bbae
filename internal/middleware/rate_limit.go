package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// KeyPrefix namespaces the Redis keys
	KeyPrefix string
}

// RateLimiter enforces fixed-window limits per session using Redis. The
// LLM-backed routes sit behind it so a single browser cannot burn through
// the generation budget.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// Middleware returns a gin handler that enforces the limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, exists := c.Get("session_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session not authenticated"})
			c.Abort()
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), fmt.Sprintf("%v", sessionID))
		if err != nil {
			// Redis trouble should not take requests down with it
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// IsAllowed checks whether another request fits in the current window.
// Returns: allowed, remaining requests, window reset time, error.
func (rl *RateLimiter) IsAllowed(ctx context.Context, sessionID string) (bool, int, time.Time, error) {
	key := fmt.Sprintf("%s:%s", rl.config.KeyPrefix, sessionID)

	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}

	if count == 1 {
		if err := rl.redis.Expire(ctx, key, rl.config.Window).Err(); err != nil {
			return false, 0, time.Time{}, err
		}
	}

	ttl, err := rl.redis.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}
	resetTime := time.Now().Add(ttl)

	remaining := rl.config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return int(count) <= rl.config.Limit, remaining, resetTime, nil
}
