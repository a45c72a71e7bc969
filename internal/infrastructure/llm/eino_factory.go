// Package llm 提供基于 Eino 的文本补全适配
package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"quickai-api/internal/config"
)

const defaultTemperature = 0.7

// EinoFactory 按提供商名称惰性构建并缓存 OpenAI 兼容的 ChatModel
type EinoFactory struct {
	llm     config.LLMConfig
	timeout time.Duration

	mu     sync.Mutex
	models map[string]model.BaseChatModel
}

// NewEinoFactory 创建工厂；提供商未单独配置超时时使用上游统一超时
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		llm:     cfg.LLM,
		timeout: cfg.Providers.Timeout,
		models:  make(map[string]model.BaseChatModel),
	}
}

// Provider 解析提供商配置，name 为空时取默认提供商
func (f *EinoFactory) Provider(name string) (string, config.ProviderConfig, bool) {
	if name == "" {
		name = f.llm.DefaultProvider
	}
	cfg, ok := f.llm.Providers[name]
	return name, cfg, ok
}

// Get 返回提供商对应的 ChatModel，未配置凭证时报错
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	name, pc, ok := f.Provider(name)
	if !ok {
		return nil, fmt.Errorf("llm provider %q not configured", name)
	}
	if pc.APIKey == "" {
		return nil, fmt.Errorf("llm provider %q has no api key", name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.models[name]; ok {
		return m, nil
	}

	m, err := openai.NewChatModel(ctx, f.chatModelConfig(pc))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model for %s: %w", name, err)
	}
	f.models[name] = m
	return m, nil
}

func (f *EinoFactory) chatModelConfig(pc config.ProviderConfig) *openai.ChatModelConfig {
	temperature := float32(pc.Temperature)
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	timeout := pc.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}

	mc := &openai.ChatModelConfig{
		APIKey:      pc.APIKey,
		BaseURL:     pc.BaseURL,
		Model:       pc.Model,
		Temperature: &temperature,
		Timeout:     timeout,
	}
	if pc.MaxTokens > 0 {
		maxTokens := pc.MaxTokens
		mc.MaxTokens = &maxTokens
	}
	return mc
}
