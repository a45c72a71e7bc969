// Package middleware 提供 HTTP 中间件
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"quickai-api/internal/interfaces/http/dto"
	"quickai-api/pkg/logger"
)

// Recovery 捕获 panic 并返回失败信封；客户端已断开时只记录不回写
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			ctx := c.Request.Context()

			if clientGone(err) {
				logger.Warn(ctx, "client disconnected", "route", c.FullPath(), "error", err.Error())
				c.Abort()
				return
			}

			logger.Error(ctx, "panic recovered", err,
				"route", c.FullPath(),
				"method", c.Request.Method,
				"stack", string(debug.Stack()),
			)
			_ = c.Error(err)
			dto.AbortFail(c, http.StatusInternalServerError, "internal server error")
		}()

		c.Next()
	}
}

func clientGone(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, http.ErrAbortHandler)
}
