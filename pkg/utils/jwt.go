// Package utils 提供通用工具函数
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// 套餐常量
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Token 类型
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// clockSkew 签发方与本机的时钟偏差容忍
const clockSkew = 30 * time.Second

// Claims JWT 声明结构
type Claims struct {
	AccountID string `json:"account_id"`
	Plan      string `json:"plan"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// IsPremium 判断是否为付费套餐
func (c *Claims) IsPremium() bool {
	return c.Plan == PlanPremium
}

// JWTManager 使用 HS256 签发和校验账户 Token
type JWTManager struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewJWTManager 创建 JWT 管理器；issuer 为空时不校验签发方
func NewJWTManager(secret, issuer string) *JWTManager {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
		jwt.WithIssuedAt(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &JWTManager{secret: []byte(secret), issuer: issuer, parser: jwt.NewParser(opts...)}
}

// GenerateToken 签发 Token，主要供运维脚本和测试使用
func (m *JWTManager) GenerateToken(accountID, plan, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Plan:      plan,
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken 校验签名与时效，缺少 account_id 时回落到 sub
func (m *JWTManager) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.AccountID == "" {
		claims.AccountID = claims.Subject
	}
	if claims.AccountID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
