// Package review 提供简历点评上游适配
package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"quickai-api/internal/config"
	"quickai-api/internal/infrastructure/upstream"
)

const providerName = "apilayer"

// APILayer APILayer 简历点评客户端
type APILayer struct {
	cfg    config.EndpointConfig
	client *upstream.Client
}

// NewAPILayer 创建 APILayer 客户端
func NewAPILayer(cfg *config.Config) *APILayer {
	return &APILayer{
		cfg:    cfg.Providers.Review,
		client: upstream.NewClient(providerName, cfg.Providers.Timeout),
	}
}

// Configured 是否配置了 API Key
func (a *APILayer) Configured() bool {
	return a.cfg.Configured()
}

// Review 提交简历文本并返回点评内容
func (a *APILayer) Review(ctx context.Context, text string) (string, error) {
	data, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", a.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	body, _, err := a.client.Do(ctx, "review", req)
	if err != nil {
		return "", err
	}
	return contentFromBody(body), nil
}

// contentFromBody 依次取 review、feedback 字段，都缺失时返回原始 JSON
func contentFromBody(body []byte) string {
	var resp struct {
		Review   string `json:"review"`
		Feedback string `json:"feedback"`
	}
	if err := json.Unmarshal(body, &resp); err == nil {
		if resp.Review != "" {
			return resp.Review
		}
		if resp.Feedback != "" {
			return resp.Feedback
		}
	}
	return strings.TrimSpace(string(body))
}
