// Package metrics 提供 Prometheus 指标采集功能
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quickai"

var (
	latencyBuckets  = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	upstreamBuckets = []float64{.1, .5, 1, 2.5, 5, 10, 30, 60}
	sizeBuckets     = prometheus.ExponentialBuckets(100, 10, 6)
)

func counter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func histogram(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

// HTTP
var (
	HTTPRequestsTotal   = counter("http", "requests_total", "Total number of HTTP requests", "method", "path", "status")
	HTTPRequestDuration = histogram("http", "request_duration_seconds", "HTTP request duration in seconds", latencyBuckets, "method", "path")
	HTTPRequestSize     = histogram("http", "request_size_bytes", "HTTP request size in bytes", sizeBuckets, "method", "path")
	HTTPResponseSize    = histogram("http", "response_size_bytes", "HTTP response size in bytes", sizeBuckets, "method", "path")
)

// 生成管线；kind 取 real/mock/none，outcome 取 continue/success/terminal
var (
	GenerationTotal    = counter("generation", "total", "Generation requests by final outcome", "capability", "kind", "status")
	GenerationDuration = histogram("generation", "duration_seconds", "Generation pipeline duration in seconds", upstreamBuckets, "capability")
	TierOutcomeTotal   = counter("generation", "tier_outcome_total", "Outcome of each fallback tier attempted", "capability", "tier", "outcome")
)

// 上游服务与 LLM；type 取 prompt/completion
var (
	ProviderCallTotal    = counter("provider", "call_total", "Upstream provider calls", "provider", "op", "status")
	ProviderCallDuration = histogram("provider", "call_duration_seconds", "Upstream provider call duration in seconds", upstreamBuckets, "provider", "op")

	LLMCallTotal    = counter("llm", "call_total", "LLM calls", "provider", "model", "status")
	LLMCallDuration = histogram("llm", "call_duration_seconds", "LLM call duration in seconds", upstreamBuckets, "provider", "model")
	LLMTokensUsed   = counter("llm", "tokens_used_total", "Tokens consumed by LLM calls", "provider", "model", "type")
)

// 计费、落库与事件
var (
	UsageChargeTotal     = counter("usage", "charge_total", "Usage charges attempted", "status")
	CreationAppendTotal  = counter("creation", "append_total", "Creation record appends attempted", "status")
	RedisStreamPublished = counter("redis", "stream_published_total", "Redis stream messages published", "stream", "status")

	ScratchFilesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "upload",
		Name:      "scratch_files_active",
		Help:      "Uploaded scratch files not yet released",
	})
)

// Status 将错误转换为指标状态标签
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
