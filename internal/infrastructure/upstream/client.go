// Package upstream 提供调用外部 HTTP 服务的公共客户端：统一超时、追踪与指标
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"quickai-api/pkg/metrics"
	"quickai-api/pkg/tracer"
)

// maxErrorBody 错误响应体保留的最大字节数
const maxErrorBody = 512

// DefaultTimeout 未配置时的上游调用超时
const DefaultTimeout = 30 * time.Second

// StatusError 上游返回非 2xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// Client 单个上游服务的 HTTP 客户端
type Client struct {
	provider string
	http     *http.Client
}

// NewClient 创建上游客户端，timeout <= 0 时使用 DefaultTimeout
func NewClient(provider string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		provider: provider,
		http:     &http.Client{Timeout: timeout},
	}
}

// Provider 返回提供商名称
func (c *Client) Provider() string {
	return c.provider
}

// Do 发送请求并读取完整响应体，非 2xx 返回 *StatusError
func (c *Client) Do(ctx context.Context, op string, req *http.Request) ([]byte, http.Header, error) {
	ctx, span := tracer.Start(ctx, "upstream."+c.provider+"."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("upstream.provider", c.provider),
			attribute.String("upstream.op", op),
			attribute.String("http.url", req.URL.String()),
		))
	defer span.End()

	start := time.Now()
	body, header, err := c.do(req.WithContext(ctx))
	metrics.ProviderCallDuration.WithLabelValues(c.provider, op).Observe(time.Since(start).Seconds())
	metrics.ProviderCallTotal.WithLabelValues(c.provider, op, metrics.Status(err)).Inc()

	if err != nil {
		tracer.Fail(span, err)
		return nil, nil, err
	}
	return body, header, nil
}

func (c *Client) do(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(body)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, nil, &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}
	return body, resp.Header, nil
}
