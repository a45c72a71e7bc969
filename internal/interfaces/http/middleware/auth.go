// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quickai-api/internal/application/quota"
	"quickai-api/internal/domain/entity"
	"quickai-api/pkg/logger"
	"quickai-api/pkg/utils"
)

const (
	ctxKeyIdentity    = "identity"
	ctxKeyEntitlement = "entitlement"
	ctxKeyAccountID   = "account_id"
)

// AuthConfig 认证配置
type AuthConfig struct {
	// Secret 为空时所有请求归属开发账号
	Secret string
	Issuer string
}

// Auth 认证中间件，解析 Bearer Token 得到调用方身份
func Auth(cfg AuthConfig) gin.HandlerFunc {
	if cfg.Secret == "" {
		return func(c *gin.Context) {
			setIdentity(c, quota.Identity{AccountID: entity.DevAccountID, Plan: entity.PlanFree})
			c.Next()
		}
	}

	jwtManager := utils.NewJWTManager(cfg.Secret, cfg.Issuer)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := jwtManager.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, utils.ErrExpiredToken) {
				msg = "token expired"
			}
			abortUnauthorized(c, msg)
			return
		}

		if claims.Type != utils.TokenAccess {
			abortUnauthorized(c, "invalid token type")
			return
		}

		setIdentity(c, quota.Identity{AccountID: claims.AccountID, Plan: entity.Plan(claims.Plan)})
		c.Next()
	}
}

func setIdentity(c *gin.Context, id quota.Identity) {
	c.Set(ctxKeyIdentity, id)
	c.Set(ctxKeyAccountID, id.AccountID)
	ctx := logger.WithContext(c.Request.Context(), logger.AccountIDKey, id.AccountID)
	c.Request = c.Request.WithContext(ctx)
}

// abortUnauthorized 终止请求并返回 401
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": msg,
	})
}

// GetIdentity 获取调用方身份
func GetIdentity(c *gin.Context) (quota.Identity, bool) {
	v, ok := c.Get(ctxKeyIdentity)
	if !ok {
		return quota.Identity{}, false
	}
	id, ok := v.(quota.Identity)
	return id, ok
}

// EntitlementResolver 权益解析接口
type EntitlementResolver interface {
	Resolve(ctx context.Context, id quota.Identity) entity.Entitlement
}

// Entitlement 在认证之后解析权益快照
func Entitlement(resolver EntitlementResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			id = quota.Identity{AccountID: entity.DevAccountID, Plan: entity.PlanFree}
		}
		c.Set(ctxKeyEntitlement, resolver.Resolve(c.Request.Context(), id))
		c.Next()
	}
}

// GetEntitlement 获取权益快照，缺失时返回降级默认值
func GetEntitlement(c *gin.Context) entity.Entitlement {
	if v, ok := c.Get(ctxKeyEntitlement); ok {
		if ent, ok := v.(entity.Entitlement); ok {
			return ent
		}
	}
	accountID := c.GetString(ctxKeyAccountID)
	if accountID == "" {
		accountID = entity.DevAccountID
	}
	return entity.DegradedEntitlement(accountID)
}
