// Package service 定义跨层共享的领域服务契约
package service

import (
	"context"
	"strings"
)

// unknown 未标记时的指标标签
const unknown = "unknown"

type llmTagKey struct{}

// llmTag 一次 LLM 调用的归属，用于指标与 span 标签
type llmTag struct {
	capability string
	provider   string
}

func tagOf(ctx context.Context) llmTag {
	if ctx == nil {
		return llmTag{}
	}
	t, _ := ctx.Value(llmTagKey{}).(llmTag)
	return t
}

func withTag(ctx context.Context, update func(*llmTag)) context.Context {
	if ctx == nil {
		return nil
	}
	t := tagOf(ctx)
	update(&t)
	return context.WithValue(ctx, llmTagKey{}, t)
}

// WithCapability 标记本次 LLM 调用所属的生成能力，空值不覆盖
func WithCapability(ctx context.Context, capability string) context.Context {
	c := strings.TrimSpace(capability)
	if c == "" || c == unknown {
		return ctx
	}
	return withTag(ctx, func(t *llmTag) { t.capability = c })
}

// WithProvider 标记本次 LLM 调用的提供商，空值不覆盖
func WithProvider(ctx context.Context, provider string) context.Context {
	p := strings.TrimSpace(provider)
	if p == "" {
		return ctx
	}
	return withTag(ctx, func(t *llmTag) { t.provider = p })
}

func WithCapabilityProvider(ctx context.Context, capability, provider string) context.Context {
	return WithProvider(WithCapability(ctx, capability), provider)
}

func CapabilityFromContext(ctx context.Context) string {
	return orUnknown(tagOf(ctx).capability)
}

func ProviderFromContext(ctx context.Context) string {
	return orUnknown(tagOf(ctx).provider)
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
