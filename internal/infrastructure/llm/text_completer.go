package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"quickai-api/internal/application/generation"
	"quickai-api/internal/domain/service"
)

// TextCompleter 基于 Eino ChatModel 的文本补全
type TextCompleter struct {
	factory  *EinoFactory
	provider string
	timeout  time.Duration
}

// NewTextCompleter 创建文本补全适配器，provider 为空时使用默认提供商
func NewTextCompleter(factory *EinoFactory, provider string, timeout time.Duration) *TextCompleter {
	return &TextCompleter{
		factory:  factory,
		provider: provider,
		timeout:  timeout,
	}
}

// Configured 默认提供商存在且配置了 API Key
func (c *TextCompleter) Configured() bool {
	if c == nil || c.factory == nil {
		return false
	}
	_, cfg, ok := c.factory.Provider(c.provider)
	return ok && cfg.APIKey != ""
}

// Complete 发起单轮对话补全
func (c *TextCompleter) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	name, _, _ := c.factory.Provider(c.provider)

	chatModel, err := c.factory.Get(ctx, name)
	if err != nil {
		return "", err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx = service.WithCapabilityProvider(ctx, service.CapabilityFromContext(ctx), name)
	ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
		Name:      "text_completion",
		Type:      name,
		Component: components.ComponentOfChatModel,
	})

	var opts []model.Option
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}

	msg, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(req.Prompt)}, opts...)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}
