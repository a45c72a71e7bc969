// Package eino 注册 Eino 全局回调，为 ChatModel 调用提供指标与追踪
package eino

import (
	"context"
	"sync"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"quickai-api/internal/domain/service"
	"quickai-api/pkg/metrics"
	"quickai-api/pkg/tracer"
)

var initOnce sync.Once

// Init 注册全局回调，进程内只生效一次
func Init() {
	initOnce.Do(func() {
		einocb.AppendGlobalHandlers(Handler())
	})
}

// Handler 返回仅作用于 ChatModel 的回调
func Handler() einocb.Handler {
	return cbtemplate.NewHandlerHelper().
		ChatModel(chatModelHandler()).
		Handler()
}

type callStateKey struct{}

// callState OnStart 记录，OnEnd/OnError 复用同一组标签
type callState struct {
	start    time.Time
	provider string
	model    string
}

func stateFrom(ctx context.Context) callState {
	st, ok := ctx.Value(callStateKey{}).(callState)
	if !ok {
		return callState{provider: service.ProviderFromContext(ctx)}
	}
	return st
}

func (st callState) observe(status string) {
	metrics.LLMCallTotal.WithLabelValues(st.provider, st.model, status).Inc()
	if !st.start.IsZero() {
		metrics.LLMCallDuration.WithLabelValues(st.provider, st.model).Observe(time.Since(st.start).Seconds())
	}
}

func chatModelHandler() *cbtemplate.ModelCallbackHandler {
	return &cbtemplate.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			st := callState{
				start:    time.Now(),
				provider: service.ProviderFromContext(ctx),
				model:    inputModel(input),
			}
			if st.model == "" && info != nil {
				st.model = info.Type
			}

			ctx = context.WithValue(ctx, callStateKey{}, st)
			ctx, _ = tracer.Start(ctx, "llm.generate",
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("llm.capability", service.CapabilityFromContext(ctx)),
					attribute.String("llm.provider", st.provider),
					attribute.String("llm.model", st.model),
				))
			return ctx
		},

		OnEnd: func(ctx context.Context, _ *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			st := stateFrom(ctx)
			st.observe("success")

			span := trace.SpanFromContext(ctx)
			if output != nil && output.TokenUsage != nil {
				usage := output.TokenUsage
				metrics.LLMTokensUsed.WithLabelValues(st.provider, st.model, "prompt").Add(float64(usage.PromptTokens))
				metrics.LLMTokensUsed.WithLabelValues(st.provider, st.model, "completion").Add(float64(usage.CompletionTokens))
				span.SetAttributes(
					attribute.Int("llm.prompt_tokens", usage.PromptTokens),
					attribute.Int("llm.completion_tokens", usage.CompletionTokens),
				)
			}
			span.End()
			return ctx
		},

		OnError: func(ctx context.Context, _ *einocb.RunInfo, err error) context.Context {
			stateFrom(ctx).observe("error")

			span := trace.SpanFromContext(ctx)
			tracer.Fail(span, err)
			span.End()
			return ctx
		},
	}
}

func inputModel(in *model.CallbackInput) string {
	if in == nil || in.Config == nil {
		return ""
	}
	return in.Config.Model
}
