// Package errors 定义网关内部流转的带码错误
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	CodeUnknown       ErrorCode = "1000"
	CodeInvalidParam  ErrorCode = "1001"
	CodeInternalError ErrorCode = "1007"

	// 认证与额度 (2xxx)
	CodeTokenExpired  ErrorCode = "2001"
	CodeTokenInvalid  ErrorCode = "2002"
	CodeQuotaExceeded ErrorCode = "2005"

	// 上传资源 (3xxx)
	CodeAssetMissing       ErrorCode = "3001"
	CodeAssetRejected      ErrorCode = "3002"
	CodeDocumentUnreadable ErrorCode = "3003"

	// 生成管线 (4xxx)
	CodeProviderNotConfigured   ErrorCode = "4002"
	CodeProviderFailed          ErrorCode = "4003"
	CodeUnexpectedPipelineError ErrorCode = "4005"
)

// httpStatus 未列出的码一律按 500 处理
var httpStatus = map[ErrorCode]int{
	CodeInvalidParam:       http.StatusBadRequest,
	CodeAssetMissing:       http.StatusBadRequest,
	CodeAssetRejected:      http.StatusBadRequest,
	CodeDocumentUnreadable: http.StatusBadRequest,
	CodeTokenExpired:       http.StatusUnauthorized,
	CodeTokenInvalid:       http.StatusUnauthorized,
	CodeQuotaExceeded:      http.StatusForbidden,
	// 上游失败已被管线吸收，对外保持 2xx 信封
	CodeProviderFailed: http.StatusOK,
}

// StatusOf 错误码对应的 HTTP 状态码
func StatusOf(code ErrorCode) int {
	if s, ok := httpStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError 应用错误
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: StatusOf(code)}
}

// Wrap 以错误码包装底层错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	e := New(code, message)
	e.Err = err
	return e
}

// IsAppError 错误链中是否含有 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError 取出错误链中的 AppError，没有时包装为 CodeUnknown
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// HasCode 错误链中的 AppError 是否为指定错误码
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}
