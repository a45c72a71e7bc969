// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quickai-api/internal/application/quota"
	"quickai-api/internal/config"
	"quickai-api/internal/infrastructure/persistence/redis"
	"quickai-api/internal/interfaces/http/handler"
	"quickai-api/internal/interfaces/http/middleware"
)

// RouterHandlers 路由依赖的处理器
type RouterHandlers struct {
	Health     *handler.HealthHandler
	Generation *handler.GenerationHandler
	Creation   *handler.CreationHandler
}

// RouterDeps 路由依赖的中间件组件
type RouterDeps struct {
	Resolver middleware.EntitlementResolver
	// Limiter 为 nil 时不限流
	Limiter *redis.RateLimiter
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers RouterHandlers
	deps     RouterDeps
}

// NewWithDeps 创建路由器
func NewWithDeps(cfg *config.Config, handlers RouterHandlers, deps RouterDeps) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.MaxMultipartMemory = cfg.Upload.MaxSize

	r := &Router{
		engine:   engine,
		cfg:      cfg,
		handlers: handlers,
		deps:     deps,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置全局中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.Use(middleware.Audit())
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	var limiter middleware.RateLimiter
	if r.deps.Limiter != nil {
		limiter = r.deps.Limiter
	}

	authed := []gin.HandlerFunc{
		middleware.Auth(middleware.AuthConfig{
			Secret: r.cfg.Security.JWT.Secret,
			Issuer: r.cfg.Security.JWT.Issuer,
		}),
		middleware.RateLimit(middleware.RateLimitConfig{
			Enabled:           r.cfg.Security.RateLimit.Enabled,
			RequestsPerMinute: r.cfg.Security.RateLimit.RequestsPerMinute,
		}, limiter, redis.BuildRateLimitKey),
	}

	resolver := r.deps.Resolver
	if resolver == nil {
		resolver = quota.NewEntitlementResolver(nil)
	}

	RegisterV1Routes(r.engine.Group("/v1"), r.handlers, authed, middleware.Entitlement(resolver))
}
