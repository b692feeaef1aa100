package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vyrodovalexey/avclassify/internal/observability"
	"github.com/vyrodovalexey/avclassify/internal/ratelimit"
)

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	// Limiter is the rate limiter to use.
	Limiter ratelimit.Limiter

	// KeyFunc extracts the rate limit key from the request.
	KeyFunc ratelimit.KeyFunc

	// Logger for logging rate limit events.
	Logger observability.Logger

	// SkipPaths is a list of paths to skip rate limiting.
	SkipPaths []string

	// OnLimit is called when a request is rejected, before the response
	// is written. Useful for recording metrics.
	OnLimit func(c *gin.Context)
}

// RateLimit returns a middleware that applies rate limiting.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return RateLimitWithConfig(RateLimitConfig{Limiter: limiter})
}

// RateLimitWithConfig returns a rate limit middleware with custom
// configuration.
func RateLimitWithConfig(config RateLimitConfig) gin.HandlerFunc {
	if config.Limiter == nil {
		config.Limiter = ratelimit.NewNoopLimiter()
	}
	if config.KeyFunc == nil {
		config.KeyFunc = ratelimit.IPKeyFunc
	}

	skipPaths := make(map[string]bool)
	for _, path := range config.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *gin.Context) {
		if skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		key := config.KeyFunc(c.Request)

		result, err := config.Limiter.Allow(c.Request.Context(), key)
		if err != nil {
			if config.Logger != nil {
				config.Logger.Error("rate limit check failed",
					observability.String("key", key),
					observability.Error(err),
				)
			}
			// Fail open to avoid blocking traffic on limiter errors.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			if config.Logger != nil {
				config.Logger.Warn("rate limit exceeded",
					observability.String("key", key),
					observability.String("path", c.Request.URL.Path),
				)
			}

			if config.OnLimit != nil {
				config.OnLimit(c)
			}

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too Many Requests",
				"message":     "Rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
