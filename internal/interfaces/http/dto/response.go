// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageMeta 分页元数据
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Envelope 生成类接口与中间件失败使用的信封
type Envelope struct {
	Success bool              `json:"success"`
	Content string            `json:"content,omitempty"`
	Message string            `json:"message,omitempty"`
	Kind    string            `json:"kind,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Fail 返回失败信封
func Fail(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, Envelope{Success: false, Message: message})
}

// AbortFail 终止请求并返回失败信封
func AbortFail(c *gin.Context, httpCode int, message string) {
	c.AbortWithStatusJSON(httpCode, Envelope{Success: false, Message: message})
}

// InternalError 返回 500 错误
func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

// NewPageMeta 创建分页元数据
func NewPageMeta(page, pageSize int, total int64, totalPages int) PageMeta {
	return PageMeta{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}
