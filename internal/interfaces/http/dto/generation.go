package dto

import (
	"encoding/json"
	"strings"

	"quickai-api/internal/application/generation"
)

// GenerateArticleRequest 文章生成请求
type GenerateArticleRequest struct {
	Prompt string `json:"prompt"`
	// Length 兼容数字与字符串
	Length json.RawMessage `json:"length"`
}

// LengthString 返回去掉引号的 length 原文
func (r GenerateArticleRequest) LengthString() string {
	return strings.Trim(strings.TrimSpace(string(r.Length)), `"`)
}

// GenerateBlogTitleRequest 博客标题生成请求
type GenerateBlogTitleRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateImageRequest 图片生成请求
type GenerateImageRequest struct {
	Prompt  string `json:"prompt"`
	Publish bool   `json:"publish"`
}

// NewEnvelope 将管线结果转换为响应信封
func NewEnvelope(r generation.Result) Envelope {
	return Envelope{
		Success: r.Success,
		Content: r.Content,
		Message: r.Message,
		Kind:    string(r.Kind),
		Details: r.Details,
	}
}

// UploadEchoResponse 上传测试响应
type UploadEchoResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Mimetype string `json:"mimetype"`
}
