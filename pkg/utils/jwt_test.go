package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "quickai")

	token, err := m.GenerateToken("acct-1", PlanPremium, "access", time.Minute)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.True(t, claims.IsPremium())
	assert.Equal(t, "quickai", claims.Issuer)
}

func TestJWTManagerRejects(t *testing.T) {
	m := NewJWTManager("secret", "quickai")

	expired, err := m.GenerateToken("acct-1", PlanFree, "access", -time.Minute)
	require.NoError(t, err)
	_, err = m.ParseToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	foreign, err := NewJWTManager("other", "quickai").GenerateToken("acct-1", PlanFree, "access", time.Minute)
	require.NoError(t, err)
	_, err = m.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerChecksIssuerAndSubject(t *testing.T) {
	m := NewJWTManager("secret", "quickai")

	other, err := NewJWTManager("secret", "elsewhere").GenerateToken("acct-1", PlanFree, TokenAccess, time.Minute)
	require.NoError(t, err)
	_, err = m.ParseToken(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	anonymous, err := m.GenerateToken("", PlanFree, TokenAccess, time.Minute)
	require.NoError(t, err)
	_, err = m.ParseToken(anonymous)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
