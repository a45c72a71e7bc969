// Package wire 提供依赖注入配置
package wire

import (
	"context"
	"fmt"

	"quickai-api/internal/application/creation"
	"quickai-api/internal/application/generation"
	"quickai-api/internal/application/quota"
	"quickai-api/internal/config"
	"quickai-api/internal/domain/repository"
	"quickai-api/internal/infrastructure/llm"
	"quickai-api/internal/infrastructure/messaging"
	"quickai-api/internal/infrastructure/persistence/postgres"
	"quickai-api/internal/infrastructure/persistence/redis"
	"quickai-api/internal/interfaces/http/handler"
	"quickai-api/internal/interfaces/http/router"
	"quickai-api/internal/interfaces/http/upload"
	"quickai-api/pkg/logger"
)

// Version 服务版本，由 main 注入
var Version = "dev"

func noop() {}

// ProvidePostgresClientOptional 提供 PostgreSQL 客户端，未启用或不可用时返回 nil
func ProvidePostgresClientOptional(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	if !cfg.Database.Postgres.Enabled {
		logger.Info(ctx, "postgres disabled, creation records will not be stored")
		return nil, noop, nil
	}
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Warn(ctx, "postgres not available, creation records will not be stored", "error", err.Error())
		return nil, noop, nil
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvidePostgresClient 提供 PostgreSQL 客户端，不可用时返回错误
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	if !cfg.Database.Postgres.Enabled {
		return nil, nil, fmt.Errorf("postgres is disabled in config")
	}
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideRedisClientOptional 提供 Redis 客户端，未启用或不可用时返回 nil
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		logger.Info(ctx, "redis disabled, entitlement runs unmetered")
		return nil, noop, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, entitlement runs unmetered", "error", err.Error())
		return nil, noop, nil
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideCreationRepository 提供创作记录仓储
func ProvideCreationRepository(client *postgres.Client) repository.CreationRepository {
	if client == nil {
		return nil
	}
	return postgres.NewCreationRepository(client)
}

// ProvideMessagingProducer 提供创作事件生产者
func ProvideMessagingProducer(client *redis.Client, cfg *config.Config) *messaging.Producer {
	if client == nil || !cfg.Messaging.RedisStream.Enabled {
		return nil
	}
	return messaging.NewProducer(client.Redis(), cfg.Messaging.RedisStream.MaxLen)
}

// ProvideCreationService 提供创作记录服务，存储未配置时返回 nil
func ProvideCreationService(repo repository.CreationRepository, producer *messaging.Producer) *creation.Service {
	if repo == nil {
		return nil
	}
	if producer == nil {
		return creation.NewService(repo, nil)
	}
	return creation.NewService(repo, producer)
}

// ProvideUsageCounter 提供免费用量计数器
func ProvideUsageCounter(client *redis.Client) repository.UsageCounterRepository {
	if client == nil {
		return nil
	}
	return redis.NewUsageCounter(client)
}

// ProvideRateLimiter 提供限流器
func ProvideRateLimiter(client *redis.Client) *redis.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideTextCompleter 提供文本补全适配器
func ProvideTextCompleter(factory *llm.EinoFactory, cfg *config.Config) *llm.TextCompleter {
	return llm.NewTextCompleter(factory, cfg.LLM.DefaultProvider, cfg.Providers.Timeout)
}

// ProvideUploadStore 提供上传临时存储
func ProvideUploadStore(cfg *config.Config) *upload.Store {
	return upload.NewStore(cfg.Upload.TempDir)
}

// GenerationAdapters 生成管线的上游适配器
type GenerationAdapters struct {
	Text      generation.TextCompleter
	Image     generation.ImageSynthesizer
	Remover   generation.ImageRemover
	Reviewer  generation.ResumeReviewer
	Extractor generation.TextExtractor
}

// ProvideGenerationService 组装生成管线
func ProvideGenerationService(cfg *config.Config, adapters GenerationAdapters, creations *creation.Service, gate *quota.UsageGate) *generation.Service {
	deps := generation.Dependencies{
		Text:      adapters.Text,
		Image:     adapters.Image,
		Remover:   adapters.Remover,
		Reviewer:  adapters.Reviewer,
		Extractor: adapters.Extractor,
		Charger:   gate,
		Limits: generation.Limits{
			MaxUploadSize:   cfg.Upload.MaxSize,
			MaxDocumentSize: cfg.Upload.DocumentMaxSize,
		},
	}
	if creations != nil {
		deps.Sink = creations
	}
	return generation.NewService(deps)
}

// ProvideCreationHandler 提供创作记录处理器
func ProvideCreationHandler(creations *creation.Service) *handler.CreationHandler {
	if creations == nil {
		return handler.NewCreationHandler(nil)
	}
	return handler.NewCreationHandler(creations)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(pg *postgres.Client, rc *redis.Client) *handler.HealthHandler {
	checks := map[string]handler.HealthChecker{
		"postgres": nil,
		"redis":    nil,
	}
	if pg != nil {
		checks["postgres"] = pg
	}
	if rc != nil {
		checks["redis"] = rc
	}
	return handler.NewHealthHandler(Version, checks)
}

// ProvideRouterDeps 提供路由中间件依赖
func ProvideRouterDeps(resolver *quota.EntitlementResolver, limiter *redis.RateLimiter) router.RouterDeps {
	return router.RouterDeps{
		Resolver: resolver,
		Limiter:  limiter,
	}
}
