// Package main 初始化数据库表结构
package main

import (
	"context"

	"github.com/joho/godotenv"

	"quickai-api/internal/config"
	"quickai-api/internal/domain/entity"
	"quickai-api/internal/wire"
	"quickai-api/pkg/logger"
)

// models 需要建表的实体
var models = []any{&entity.Creation{}}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "load config", err)
	}
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	client, cleanup, err := wire.InitializeMigrator(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "connect postgres", err)
	}
	defer cleanup()

	if err := client.DB().WithContext(ctx).AutoMigrate(models...); err != nil {
		cleanup()
		logger.Fatal(ctx, "migrate schema", err)
	}
	logger.Info(ctx, "schema bootstrap completed", "models", len(models))
}
