// Package removal 提供背景/物体移除上游适配
package removal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"quickai-api/internal/application/generation"
	"quickai-api/internal/config"
	"quickai-api/internal/infrastructure/upstream"
)

const providerName = "andorai"

// AndorAI AndorAI 抠图/去物体客户端
type AndorAI struct {
	cfg    config.EndpointConfig
	client *upstream.Client
}

// NewAndorAI 创建 AndorAI 客户端
func NewAndorAI(cfg *config.Config) *AndorAI {
	return &AndorAI{
		cfg:    cfg.Providers.Removal,
		client: upstream.NewClient(providerName, cfg.Providers.Timeout),
	}
}

// Configured 是否配置了 API Key
func (a *AndorAI) Configured() bool {
	return a.cfg.Configured()
}

// RemoveMultipart 以 multipart 上传原图
func (a *AndorAI) RemoveMultipart(ctx context.Context, req generation.RemovalRequest) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := req.Filename
	if filename == "" {
		filename = "image"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image_file"; filename="%s"`, escapeQuotes(filename)))
	if req.MimeType != "" {
		h.Set("Content-Type", req.MimeType)
	} else {
		h.Set("Content-Type", "application/octet-stream")
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(req.Image); err != nil {
		return "", fmt.Errorf("failed to write image part: %w", err)
	}
	if req.Op == generation.RemovalObject {
		if err := w.WriteField("object", req.Object); err != nil {
			return "", fmt.Errorf("failed to write object field: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	httpReq, err := a.newRequest(ctx, req.Op, &buf, w.FormDataContentType())
	if err != nil {
		return "", err
	}
	return a.send(ctx, "multipart", httpReq)
}

// inlinePayload 内联 JSON 请求体
type inlinePayload struct {
	Image  string `json:"image"`
	Object string `json:"object,omitempty"`
}

// RemoveInline 以 base64 JSON 发送原图
func (a *AndorAI) RemoveInline(ctx context.Context, req generation.RemovalRequest) (string, error) {
	payload := inlinePayload{Image: base64.StdEncoding.EncodeToString(req.Image)}
	if req.Op == generation.RemovalObject {
		payload.Object = req.Object
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := a.newRequest(ctx, req.Op, bytes.NewReader(data), "application/json")
	if err != nil {
		return "", err
	}
	return a.send(ctx, "inline", httpReq)
}

func (a *AndorAI) newRequest(ctx context.Context, op generation.RemovalOp, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint(op), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	req.Header.Set("Content-Type", contentType)
	return req, nil
}

func (a *AndorAI) endpoint(op generation.RemovalOp) string {
	base := strings.TrimRight(a.cfg.BaseURL, "/")
	if op == generation.RemovalObject {
		return base + "/remove-object"
	}
	return base + "/remove-bg"
}

// removalResponse 结果 URL 可能出现在任一字段
type removalResponse struct {
	OutputURL string `json:"output_url"`
	URL       string `json:"url"`
	ImageURL  string `json:"image_url"`
}

func (a *AndorAI) send(ctx context.Context, op string, req *http.Request) (string, error) {
	body, _, err := a.client.Do(ctx, op, req)
	if err != nil {
		return "", err
	}

	var resp removalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	for _, u := range []string{resp.OutputURL, resp.URL, resp.ImageURL} {
		if u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("no image URL from %s %s call", providerName, op)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
