//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"quickai-api/internal/application/generation"
	"quickai-api/internal/application/quota"
	"quickai-api/internal/config"
	"quickai-api/internal/infrastructure/document"
	"quickai-api/internal/infrastructure/imaging"
	"quickai-api/internal/infrastructure/llm"
	"quickai-api/internal/infrastructure/persistence/postgres"
	"quickai-api/internal/infrastructure/removal"
	"quickai-api/internal/infrastructure/review"
	"quickai-api/internal/interfaces/http/handler"
	"quickai-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		DataSet,
		AdapterSet,
		ApplicationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeMigrator 仅初始化 PostgreSQL（用于 bootstrap）
func InitializeMigrator(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	wire.Build(ProvidePostgresClient)
	return nil, nil, nil
}

// DataSet 存储与消息提供者集合
var DataSet = wire.NewSet(
	ProvidePostgresClientOptional,
	ProvideRedisClientOptional,
	ProvideCreationRepository,
	ProvideMessagingProducer,
	ProvideUsageCounter,
	ProvideRateLimiter,
)

// AdapterSet 上游适配器集合
var AdapterSet = wire.NewSet(
	llm.NewEinoFactory,
	ProvideTextCompleter,
	imaging.NewClipDrop,
	removal.NewAndorAI,
	review.NewAPILayer,
	document.NewPDFExtractor,
	wire.Bind(new(generation.TextCompleter), new(*llm.TextCompleter)),
	wire.Bind(new(generation.ImageSynthesizer), new(*imaging.ClipDrop)),
	wire.Bind(new(generation.ImageRemover), new(*removal.AndorAI)),
	wire.Bind(new(generation.ResumeReviewer), new(*review.APILayer)),
	wire.Bind(new(generation.TextExtractor), new(*document.PDFExtractor)),
	wire.Struct(new(GenerationAdapters), "*"),
)

// ApplicationSet 应用服务集合
var ApplicationSet = wire.NewSet(
	quota.NewEntitlementResolver,
	quota.NewUsageGate,
	ProvideCreationService,
	ProvideGenerationService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideUploadStore,
	ProvideHealthHandler,
	ProvideCreationHandler,
	handler.NewGenerationHandler,
	wire.Bind(new(handler.Generator), new(*generation.Service)),
	wire.Struct(new(router.RouterHandlers), "*"),
	ProvideRouterDeps,
	router.NewWithDeps,
)
