package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stagecast/internal/shared/utils"
)

// RateLimiter enforces a fixed-window request quota per client IP, counted
// in Redis so the limit holds across instances. Limiters are scoped by
// name so different route groups keep separate quotas.
type RateLimiter struct {
	redisClient *redis.Client
	scope       string
	limit       int
	window      time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window for
// the given scope.
func NewRateLimiter(redisClient *redis.Client, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		scope:       scope,
		limit:       limit,
		window:      window,
	}
}

// key returns the counter key for an IP in the window containing now.
func (rl *RateLimiter) key(clientIP string, now time.Time) string {
	bucket := now.Unix() / int64(rl.window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%s:%d", rl.scope, clientIP, bucket)
}

// Limit returns a middleware enforcing the quota. Every counted response
// carries X-RateLimit-Limit and X-RateLimit-Remaining; a rejected request
// also gets Retry-After. When Redis is unreachable the limiter fails open
// so an outage does not take down login.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.key(c.ClientIP(), time.Now())
		ctx := context.Background()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			rl.redisClient.Expire(ctx, key, rl.window+time.Second)
		}

		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
