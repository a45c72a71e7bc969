// Package generation 实现生成请求的履约管线：权益闸门、上游降级链、结果归一化与记账
package generation

import (
	"context"

	"quickai-api/internal/domain/entity"
)

// TextCompleter 文本补全服务
type TextCompleter interface {
	Configured() bool
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest 文本补全请求
type CompletionRequest struct {
	Prompt string
	// MaxTokens 为 0 表示不限制
	MaxTokens int
}

// ImageSynthesizer 文生图服务，返回内联 data URL
type ImageSynthesizer interface {
	Configured() bool
	Synthesize(ctx context.Context, prompt string) (string, error)
}

// RemovalOp 移除操作类型
type RemovalOp string

const (
	RemovalBackground RemovalOp = "background"
	RemovalObject     RemovalOp = "object"
)

// RemovalRequest 抠图/去物体请求
type RemovalRequest struct {
	Op       RemovalOp
	Image    []byte
	Filename string
	MimeType string
	// Object 仅 RemovalObject 使用
	Object string
}

// ImageRemover 背景/物体移除服务，两种传输方式返回结果图 URL
type ImageRemover interface {
	Configured() bool
	RemoveMultipart(ctx context.Context, req RemovalRequest) (string, error)
	RemoveInline(ctx context.Context, req RemovalRequest) (string, error)
}

// ResumeReviewer 专用简历点评服务
type ResumeReviewer interface {
	Configured() bool
	Review(ctx context.Context, text string) (string, error)
}

// TextExtractor 文档文本抽取
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// CreationSink 创作记录追加，best-effort
type CreationSink interface {
	Append(ctx context.Context, creation *entity.Creation) error
}

// UsageCharger 免费用量计费，best-effort
type UsageCharger interface {
	Charge(ctx context.Context, ent entity.Entitlement)
}

// AssetSource 上传资源的只读视图
type AssetSource interface {
	Filename() string
	MimeType() string
	Size() int64
	Bytes() ([]byte, error)
}
