package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterKeyIsScopedPerWindow(t *testing.T) {
	auth := NewRateLimiter(nil, "auth", 100, time.Minute)
	api := NewRateLimiter(nil, "api", 100, time.Minute)

	at := time.Unix(600, 0)
	assert.Equal(t, "ratelimit:auth:10.0.0.1:10", auth.key("10.0.0.1", at))
	assert.Equal(t, "ratelimit:api:10.0.0.1:10", api.key("10.0.0.1", at))

	// Same window, same key; next window rolls the bucket.
	assert.Equal(t, auth.key("10.0.0.1", at), auth.key("10.0.0.1", at.Add(30*time.Second)))
	assert.NotEqual(t, auth.key("10.0.0.1", at), auth.key("10.0.0.1", at.Add(time.Minute)))
	assert.NotEqual(t, auth.key("10.0.0.1", at), auth.key("10.0.0.2", at))
}

func TestRateLimiterFailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Nothing listens on this port; Incr errors and the request passes.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	rl := NewRateLimiter(client, "auth", 1, time.Minute)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	rl.Limit()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}
