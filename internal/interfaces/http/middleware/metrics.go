package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quickai-api/pkg/metrics"
)

// Metrics HTTP 指标中间件；未匹配路由归为 unmatched，避免标签基数膨胀
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isProbePath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		// 上传请求体大小即资源大小
		if c.Request.ContentLength > 0 {
			metrics.HTTPRequestSize.WithLabelValues(method, route).Observe(float64(c.Request.ContentLength))
		}

		c.Next()

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			metrics.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(size))
		}
	}
}
