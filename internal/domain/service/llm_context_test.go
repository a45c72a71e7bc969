package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityProviderContext(t *testing.T) {
	ctx := WithCapabilityProvider(context.Background(), " article ", "gemini")

	assert.Equal(t, "article", CapabilityFromContext(ctx))
	assert.Equal(t, "gemini", ProviderFromContext(ctx))

	bare := WithCapability(context.Background(), "  ")
	assert.Equal(t, "unknown", CapabilityFromContext(bare))
	assert.Equal(t, "unknown", ProviderFromContext(bare))
}

func TestProviderKeepsEarlierCapability(t *testing.T) {
	ctx := WithCapability(context.Background(), "blog-title")
	ctx = WithCapabilityProvider(ctx, CapabilityFromContext(ctx), "gemini")

	assert.Equal(t, "blog-title", CapabilityFromContext(ctx))
	assert.Equal(t, "gemini", ProviderFromContext(ctx))
}
