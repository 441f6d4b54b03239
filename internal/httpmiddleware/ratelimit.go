package httpmiddleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces per-IP fixed-window limits. Counters live in
// Redis so limits hold across replicas; when Redis is nil or
// unreachable it degrades to a per-process window.
type RateLimiter struct {
	rdb    *redis.Client
	perMin int

	mu     sync.Mutex
	window time.Time
	counts map[string]int
}

// NewRateLimiter creates a limiter allowing perMinute requests per IP.
func NewRateLimiter(rdb *redis.Client, perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RateLimiter{rdb: rdb, perMin: perMinute, counts: make(map[string]int)}
}

// GinMiddleware returns a gin handler enforcing the limit.
func (l *RateLimiter) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.allow(c.Request.Context(), ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(ctx context.Context, ip string) bool {
	now := time.Now()
	if l.rdb != nil {
		key := fmt.Sprintf("timetracking:ratelimit:%s:%d", ip, now.Unix()/60)
		pipe := l.rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 2*time.Minute)
		if _, err := pipe.Exec(ctx); err == nil {
			return incr.Val() <= int64(l.perMin)
		}
		// fall through to the local window on redis errors
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	window := now.Truncate(time.Minute)
	if !window.Equal(l.window) {
		l.window = window
		l.counts = make(map[string]int)
	}
	l.counts[ip]++
	return l.counts[ip] <= l.perMin
}
