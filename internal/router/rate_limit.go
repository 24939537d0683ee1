package router

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/logger"
	"github.com/khoborpatra/khoborpatra/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitKeyFunc derives the counter key from the request
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule one fixed-window limit
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

// RateLimitMiddleware rejects requests over the rule's window budget.
// A failing store lets the request through so a limiter outage never
// takes the site down with it.
func RateLimitMiddleware(store ratelimit.Store, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		window := time.Duration(rule.WindowSeconds) * time.Second
		count, ttl, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			logger.S().Warnw("rate limit store unavailable",
				"request_id", getRequestID(c),
				"key", key,
				"error", err,
			)
			c.Next()
			return
		}

		remaining := int64(rule.MaxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		resetSeconds := int64(ttl / time.Second)
		if resetSeconds < 1 {
			resetSeconds = int64(rule.WindowSeconds)
		}
		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(rule.MaxRequests))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Writer.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetSeconds, 10))

		if count > int64(rule.MaxRequests) {
			c.Writer.Header().Set("Retry-After", strconv.FormatInt(resetSeconds, 10))
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			msg := i18n.T(i18n.ResolveLocale(c), msgKey)
			response.Fail(c, response.StatusTooManyRequests, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP keys the counter on the client address
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}
