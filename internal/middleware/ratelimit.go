package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/config"
	"github.com/timtruong/timtruong-backend/internal/response"
)

// RateLimiter is a per-IP fixed-window limiter backed by Redis, so every
// API replica shares the same counters.
type RateLimiter struct {
	rdb    *redis.Client
	scope  string
	limit  int
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

// NewRateLimiter creates a RateLimiter allowing limit requests per window
// (e.g., 60 per minute). A nil client or a limit of 0 disables it.
func NewRateLimiter(rdb *redis.Client, scope string, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	if window < time.Second {
		window = time.Minute
	}
	return &RateLimiter{
		rdb:    rdb,
		scope:  scope,
		limit:  limit,
		window: window,
		log:    log.With().Str("component", "rate_limiter").Str("scope", scope).Logger(),
		now:    time.Now,
	}
}

// Enabled reports whether requests are being counted.
func (rl *RateLimiter) Enabled() bool {
	return rl.rdb != nil && rl.limit > 0
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
// Redis errors let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Enabled() {
			c.Next()
			return
		}

		now := rl.now()
		bucket := now.Unix() / int64(rl.window/time.Second)
		key := config.CacheKey.RateLimitKey(rl.scope, c.ClientIP(), bucket)

		var incr *redis.IntCmd
		_, err := rl.rdb.Pipelined(c.Request.Context(), func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(c.Request.Context(), key)
			pipe.Expire(c.Request.Context(), key, rl.window)
			return nil
		})
		if err != nil {
			rl.log.Warn().Err(err).Msg("Rate limit check failed, allowing request")
			c.Next()
			return
		}

		resetIn := rl.window - time.Duration(now.UnixNano()%int64(rl.window))
		allowed, remaining := decide(incr.Val(), rl.limit)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(resetIn.Round(time.Second)/time.Second)))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// decide turns the post-increment counter into a verdict and the number of
// requests still available in the window.
func decide(count int64, limit int) (allowed bool, remaining int) {
	if count > int64(limit) {
		return false, 0
	}
	return true, limit - int(count)
}
