package generation

import (
	"context"
	"net/http"
	"time"

	"quickai-api/internal/domain/entity"
	"quickai-api/internal/domain/service"
	"quickai-api/pkg/logger"
	"quickai-api/pkg/metrics"
)

// Limits 上传大小限制
type Limits struct {
	MaxUploadSize   int64
	MaxDocumentSize int64
}

// Dependencies 管线依赖，缺失的上游按未配置处理
type Dependencies struct {
	Text        TextCompleter
	Image       ImageSynthesizer
	Remover     ImageRemover
	Reviewer    ResumeReviewer
	Extractor   TextExtractor
	Placeholder PlaceholderStrategy
	Sink        CreationSink
	Charger     UsageCharger
	Limits      Limits
}

// Service 生成管线
type Service struct {
	text        TextCompleter
	image       ImageSynthesizer
	remover     ImageRemover
	reviewer    ResumeReviewer
	extractor   TextExtractor
	placeholder PlaceholderStrategy
	sink        CreationSink
	charger     UsageCharger
	limits      Limits
}

// NewService 创建生成管线
func NewService(deps Dependencies) *Service {
	s := &Service{
		text:        deps.Text,
		image:       deps.Image,
		remover:     deps.Remover,
		reviewer:    deps.Reviewer,
		extractor:   deps.Extractor,
		placeholder: deps.Placeholder,
		sink:        deps.Sink,
		charger:     deps.Charger,
		limits:      deps.Limits,
	}
	if s.placeholder == nil {
		s.placeholder = NewSVGPlaceholder()
	}
	if s.limits.MaxUploadSize <= 0 {
		s.limits.MaxUploadSize = 10 << 20
	}
	if s.limits.MaxDocumentSize <= 0 {
		s.limits.MaxDocumentSize = 5 << 20
	}
	return s
}

// Generate 执行一次生成请求，任何路径都返回结构化结果
func (s *Service) Generate(ctx context.Context, req *Request) (result Result) {
	ctx = logger.WithContext(ctx, logger.CapabilityKey, string(req.Capability))
	ctx = service.WithCapability(ctx, string(req.Capability))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "generation pipeline panicked", nil, "panic", r)
			result = Failed(http.StatusInternalServerError, "internal server error")
		}
		metrics.GenerationDuration.WithLabelValues(string(req.Capability)).Observe(time.Since(start).Seconds())
		metrics.GenerationTotal.WithLabelValues(string(req.Capability), result.KindLabel(), result.StatusLabel()).Inc()
	}()

	var st Settlement
	switch req.Capability {
	case CapabilityArticle, CapabilityBlogTitle:
		st = s.textChain(req.Capability).Run(ctx, &textState{req: req})
	case CapabilityImage:
		st = s.imageChain().Run(ctx, &imageState{req: req})
	case CapabilityBgRemove:
		st = s.removalChain(RemovalBackground).Run(ctx, &removalState{req: req})
	case CapabilityObjectRemove:
		st = s.removalChain(RemovalObject).Run(ctx, &removalState{req: req})
	case CapabilityResumeReview:
		st = s.reviewChain().Run(ctx, &reviewState{req: req})
	default:
		return Rejected(http.StatusBadRequest, "unsupported capability", "")
	}

	s.settle(ctx, req, st)

	logger.Info(ctx, "generation completed",
		"tier", st.Tier,
		"success", st.Result.Success,
		"kind", st.Result.KindLabel(),
		"fallbacks", len(st.Failures),
	)
	return st.Result
}

// settle 执行结算副作用：先追加记录，再计费，均不影响响应
func (s *Service) settle(ctx context.Context, req *Request, st Settlement) {
	if st.Persist && st.Creation != nil {
		s.appendCreation(ctx, st.Creation)
	}
	if st.Billable && s.charger != nil {
		s.charger.Charge(ctx, req.Entitlement)
	}
}

func (s *Service) appendCreation(ctx context.Context, creation *entity.Creation) {
	if s.sink == nil {
		metrics.CreationAppendTotal.WithLabelValues("skipped").Inc()
		return
	}
	err := s.sink.Append(ctx, creation)
	metrics.CreationAppendTotal.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		logger.Warn(ctx, "failed to append creation record",
			"error", err.Error(),
			"type", string(creation.Type),
		)
	}
}
