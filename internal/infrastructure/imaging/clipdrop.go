// Package imaging 提供文生图上游适配
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"quickai-api/internal/config"
	"quickai-api/internal/infrastructure/upstream"
)

const providerName = "clipdrop"

// ClipDrop ClipDrop text-to-image 客户端
type ClipDrop struct {
	cfg    config.EndpointConfig
	client *upstream.Client
}

// NewClipDrop 创建 ClipDrop 客户端
func NewClipDrop(cfg *config.Config) *ClipDrop {
	return &ClipDrop{
		cfg:    cfg.Providers.Image,
		client: upstream.NewClient(providerName, cfg.Providers.Timeout),
	}
}

// Configured 是否配置了 API Key
func (c *ClipDrop) Configured() bool {
	return c.cfg.Configured()
}

// Synthesize 生成图片并返回 data URL
func (c *ClipDrop) Synthesize(ctx context.Context, prompt string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("prompt", prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("x-api-key", c.cfg.APIKey)

	body, header, err := c.client.Do(ctx, "text-to-image", req)
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", fmt.Errorf("empty image from %s", providerName)
	}

	mimeType := "image/png"
	if ct := header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		mimeType = ct
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}
