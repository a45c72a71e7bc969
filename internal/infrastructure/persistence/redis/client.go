// Package redis 提供基于 Redis 的用量计数与限流实现
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"quickai-api/internal/config"
	"quickai-api/pkg/tracer"
)

// connectTimeout 启动时连通性检查超时
const connectTimeout = 5 * time.Second

// Client Redis 客户端，供计数器、限流器与事件流共享连接池
type Client struct {
	rdb *redis.Client
}

// NewClient 创建客户端并确认可连通；失败时关闭连接池
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", rdb.Options().Addr, err)
	}
	return &Client{rdb: rdb}, nil
}

// Redis 返回底层客户端
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// Close 关闭连接池
func (c *Client) Close() error {
	return c.rdb.Close()
}

// HealthCheck 就绪检查
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "redis.HealthCheck")
	defer span.End()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		tracer.Fail(span, err)
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// IsNil 检查是否为键不存在
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
