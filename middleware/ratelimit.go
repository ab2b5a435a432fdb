package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"socially/internal/logger"
	"socially/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter decides whether the caller identified by key may proceed
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

// RedisLimiter is a fixed-window counter shared by every replica
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	ctx, cancel := utils.WithLimiterTimeout(ctx)
	defer cancel()

	redisKey := "ratelimit:" + key
	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}

	// Set expiration on first request
	if count == 1 {
		l.rdb.Expire(ctx, redisKey, l.window)
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(l.limit), remaining, nil
}

// LocalLimiter keeps one token bucket per key in process memory
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    int
	every    rate.Limit
}

func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		every:    rate.Limit(float64(limit) / window.Seconds()),
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.every, l.limit)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	allowed := limiter.Allow()
	remaining := int(limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, nil
}

// RateLimitMiddleware limits requests per IP + endpoint combination
func RateLimitMiddleware(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting for health checks
		if c.FullPath() == "/health" {
			c.Next()
			return
		}

		key := c.ClientIP() + ":" + c.FullPath()
		allowed, remaining, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open - don't block requests if the limiter backend is down
			logger.FromContext(c.Request.Context()).Warn("Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(window).Unix(), 10))
			utils.RespondWithError(c, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests. Limit is %d per %s.", limit, window))
			return
		}

		c.Next()
	}
}
