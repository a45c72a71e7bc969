package generation

import (
	"net/http"

	apperrors "quickai-api/pkg/errors"
)

// Kind 结果来源
type Kind string

const (
	KindReal Kind = "real"
	KindMock Kind = "mock"
)

// Result 管线对外的唯一输出
type Result struct {
	Success bool
	Kind    Kind
	Content string
	Message string
	Details map[string]string
	// Status 传输层状态码
	Status int
}

// Real 上游真实成功
func Real(content string) Result {
	return Result{Success: true, Kind: KindReal, Content: content, Status: http.StatusOK}
}

// Mock 本地降级替代
func Mock(content, message string) Result {
	return Result{Success: true, Kind: KindMock, Content: content, Message: message, Status: http.StatusOK}
}

// Rejected 输入校验失败；content 可为占位资源
func Rejected(status int, message, content string) Result {
	return Result{Success: false, Kind: KindMock, Content: content, Message: message, Status: status}
}

// Failed 上游失败被吸收后的结构化失败
func Failed(status int, message string) Result {
	return Result{Success: false, Message: message, Status: status}
}

// Unexpected 未预期错误
func Unexpected(err error) Result {
	msg := "unexpected error"
	switch {
	case apperrors.IsAppError(err):
		msg = apperrors.AsAppError(err).Message
	case err != nil:
		msg = err.Error()
	}
	return Result{Success: false, Message: msg, Status: http.StatusInternalServerError}
}

// KindLabel 指标用的来源标签
func (r Result) KindLabel() string {
	if r.Kind == "" {
		return "none"
	}
	return string(r.Kind)
}

// StatusLabel 指标用的状态标签
func (r Result) StatusLabel() string {
	if r.Success {
		return "success"
	}
	return "failure"
}
