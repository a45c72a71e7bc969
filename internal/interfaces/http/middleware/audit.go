package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quickai-api/pkg/logger"
)

// ProbePaths 探针与指标路径，不记访问日志也不生成 span
var ProbePaths = []string{"/health", "/ready", "/live", "/metrics"}

func isProbePath(path string) bool {
	for _, p := range ProbePaths {
		if p == path {
			return true
		}
	}
	return false
}

// Audit 访问日志中间件；5xx 记 ERROR，4xx 记 WARN
func Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isProbePath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		args := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes_out", c.Writer.Size(),
			"ip", c.ClientIP(),
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(ctx, "request failed", lastError(c), args...)
		case status >= http.StatusBadRequest:
			logger.Warn(ctx, "request rejected", args...)
		default:
			logger.Info(ctx, "request served", args...)
		}
	}
}

func lastError(c *gin.Context) error {
	if err := c.Errors.Last(); err != nil {
		return err.Err
	}
	return nil
}
