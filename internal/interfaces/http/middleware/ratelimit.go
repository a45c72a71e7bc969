// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quickai-api/internal/interfaces/http/dto"
	"quickai-api/pkg/logger"
)

// retryAfterSeconds 滑动窗口为一分钟，被拒后至多等待一个窗口
const retryAfterSeconds = 60

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute 每个账号每个路由每分钟的请求数
	RequestsPerMinute int
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按账号与路由限流，需在 Auth 之后注册；限流器不可用时放行
func RateLimit(cfg RateLimitConfig, limiter RateLimiter, keyFn func(accountID, endpoint string) string) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 60
	}

	return func(c *gin.Context) {
		accountID := c.GetString(ctxKeyAccountID)
		if accountID == "" {
			accountID = "anonymous"
		}
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		allowed, err := limiter.Allow(c.Request.Context(), keyFn(accountID, endpoint), limit, time.Minute)
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
			dto.AbortFail(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		c.Next()
	}
}
