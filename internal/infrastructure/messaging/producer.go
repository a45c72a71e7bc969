package messaging

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"quickai-api/internal/domain/entity"
	"quickai-api/pkg/metrics"
	"quickai-api/pkg/tracer"
)

// DefaultMaxLen 流的近似最大长度
const DefaultMaxLen int64 = 10000

// Producer 创作事件生产者
type Producer struct {
	client *redis.Client
	maxLen int64
}

// NewProducer 创建生产者，maxLen 非正时使用 DefaultMaxLen
func NewProducer(client *redis.Client, maxLen int64) *Producer {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Producer{client: client, maxLen: maxLen}
}

// PublishCreationCreated 发布创作记录新增事件，返回流条目 ID
func (p *Producer) PublishCreationCreated(ctx context.Context, creation *entity.Creation) (string, error) {
	ctx, span := tracer.Start(ctx, "redis.Producer.PublishCreationCreated",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("stream", StreamCreations),
			attribute.String("creation.id", creation.ID),
			attribute.String("creation.type", string(creation.Type)),
		))
	defer span.End()

	values, err := NewCreationCreated(creation).streamValues()
	if err != nil {
		tracer.Fail(span, err)
		return "", err
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamCreations,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Result()
	metrics.RedisStreamPublished.WithLabelValues(StreamCreations, metrics.Status(err)).Inc()
	if err != nil {
		tracer.Fail(span, err)
		return "", fmt.Errorf("failed to publish to %s: %w", StreamCreations, err)
	}

	span.SetAttributes(attribute.String("stream.entry_id", id))
	return id, nil
}
