package generation

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickai-api/internal/domain/entity"
)

func removalRequest(capability Capability, ent entity.Entitlement, asset AssetSource, object string) *Request {
	return &Request{Capability: capability, Entitlement: ent, Asset: asset, Object: object}
}

func decodeSVG(t *testing.T, dataURL string) string {
	t.Helper()
	const prefix = "data:image/svg+xml;base64,"
	require.True(t, strings.HasPrefix(dataURL, prefix), "not an svg data url: %.40s", dataURL)
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	require.NoError(t, err)
	return string(raw)
}

func TestRemovalWithoutAssetReturnsPlaceholder(t *testing.T) {
	for _, capability := range []Capability{CapabilityBgRemove, CapabilityObjectRemove} {
		t.Run(string(capability), func(t *testing.T) {
			h := newHarness()

			got := h.svc.Generate(context.Background(), removalRequest(capability, freeEntitlement(0), nil, "cup"))

			assert.False(t, got.Success)
			assert.Equal(t, KindMock, got.Kind)
			assert.Equal(t, http.StatusOK, got.Status)
			assert.NotEmpty(t, got.Content)
			assert.Contains(t, decodeSVG(t, got.Content), "Upload an image first")
			assert.Zero(t, h.remover.providerCalls())
			assert.Empty(t, h.sink.records)
			assert.Zero(t, h.charger.calls)
		})
	}
}

func TestObjectRemovalWithBlankObjectEchoesImage(t *testing.T) {
	h := newHarness()
	asset := pngAsset()

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityObjectRemove, freeEntitlement(0), asset, "   "))

	assert.False(t, got.Success)
	assert.Equal(t, KindMock, got.Kind)
	assert.Equal(t, DataURL("image/png", asset.data), got.Content)
	assert.Equal(t, msgNoObject, got.Message)
	assert.Zero(t, h.remover.providerCalls())
	assert.Empty(t, h.sink.records)
	assert.Zero(t, h.charger.calls)
}

func TestRemovalQuotaExceededReturnsMockWithoutCharge(t *testing.T) {
	for _, capability := range []Capability{CapabilityBgRemove, CapabilityObjectRemove} {
		t.Run(string(capability), func(t *testing.T) {
			h := newHarness()

			got := h.svc.Generate(context.Background(),
				removalRequest(capability, freeEntitlement(entity.FreeUsageLimit), pngAsset(), "cup"))

			assert.True(t, got.Success)
			assert.Equal(t, KindMock, got.Kind)
			assert.Equal(t, msgRemovalQuota, got.Message)
			assert.Contains(t, decodeSVG(t, got.Content), "Mock:")
			assert.Zero(t, h.remover.providerCalls())
			assert.Zero(t, h.charger.calls)
			assert.Empty(t, h.sink.records)
		})
	}
}

func TestRemovalPremiumIgnoresUsageCount(t *testing.T) {
	h := newHarness()
	ent := entity.Entitlement{AccountID: "vip", Plan: entity.PlanPremium, FreeUsageCount: 99, Metered: true}

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityBgRemove, ent, pngAsset(), ""))

	assert.True(t, got.Success)
	assert.Equal(t, KindReal, got.Kind)
	assert.Equal(t, 1, h.remover.multipartCalls)
}

func TestRemovalWithoutCredentialIsBillableMock(t *testing.T) {
	h := newHarness()
	h.remover.configured = false

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityObjectRemove, freeEntitlement(0), pngAsset(), `cup & "mug"`))

	assert.True(t, got.Success)
	assert.Equal(t, KindMock, got.Kind)
	assert.Equal(t, msgRemovalNoKey, got.Message)
	assert.Nil(t, got.Details)
	assert.Contains(t, decodeSVG(t, got.Content), "Mock: removed &quot;cup &amp; &quot;mug&quot;&quot;")
	assert.Zero(t, h.remover.providerCalls())
	assert.Equal(t, 1, h.charger.calls)
	require.Len(t, h.sink.records, 1)
	assert.Equal(t, `Removed cup & "mug" from image (mock)`, h.sink.records[0].Prompt)
}

func TestRemovalPrimarySuccess(t *testing.T) {
	h := newHarness()

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityObjectRemove, freeEntitlement(3), pngAsset(), " cup "))

	assert.True(t, got.Success)
	assert.Equal(t, KindReal, got.Kind)
	assert.Equal(t, "https://cdn.example/out.png", got.Content)
	assert.Equal(t, 1, h.remover.multipartCalls)
	assert.Zero(t, h.remover.inlineCalls)
	assert.Equal(t, "cup", h.remover.last.Object)
	assert.Equal(t, RemovalObject, h.remover.last.Op)
	assert.Equal(t, 1, h.charger.calls)
	require.Len(t, h.sink.records, 1)
	assert.Equal(t, "Removed cup from image", h.sink.records[0].Prompt)
	assert.Equal(t, entity.CreationTypeImage, h.sink.records[0].Type)
}

func TestRemovalSecondaryRecoversWithoutDetails(t *testing.T) {
	h := newHarness()
	h.remover.multipartErr = errUpstream

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityBgRemove, freeEntitlement(0), pngAsset(), ""))

	assert.True(t, got.Success)
	assert.Equal(t, KindReal, got.Kind)
	assert.Equal(t, "https://cdn.example/inline.png", got.Content)
	assert.Nil(t, got.Details)
	assert.Equal(t, 1, h.remover.multipartCalls)
	assert.Equal(t, 1, h.remover.inlineCalls)
	assert.Equal(t, 1, h.charger.calls)
	require.Len(t, h.sink.records, 1)
	assert.Equal(t, "Remove Background from image", h.sink.records[0].Prompt)
}

func TestRemovalExhaustionAttachesDetails(t *testing.T) {
	h := newHarness()
	h.remover.multipartErr = errUpstream
	h.remover.inlineErr = context.DeadlineExceeded

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityBgRemove, freeEntitlement(0), pngAsset(), ""))

	assert.True(t, got.Success)
	assert.Equal(t, KindMock, got.Kind)
	assert.Equal(t, msgRemovalExhausted, got.Message)
	assert.Equal(t, map[string]string{
		"multipart": errUpstream.Error(),
		"inline":    context.DeadlineExceeded.Error(),
	}, got.Details)
	assert.Contains(t, decodeSVG(t, got.Content), "Mock: background removed")
	assert.Equal(t, 1, h.charger.calls)
	require.Len(t, h.sink.records, 1)
	assert.Equal(t, "Remove Background from image (mock)", h.sink.records[0].Prompt)
}

func TestRemovalRejectsUnsupportedMedia(t *testing.T) {
	h := newHarness()
	doc := &memAsset{name: "notes.txt", mime: "text/plain", data: []byte("hi")}

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityBgRemove, freeEntitlement(0), doc, ""))

	assert.False(t, got.Success)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Zero(t, h.remover.providerCalls())

	pdf := &memAsset{name: "scan.pdf", mime: "application/pdf", data: []byte("%PDF")}
	got = h.svc.Generate(context.Background(), removalRequest(CapabilityObjectRemove, freeEntitlement(0), pdf, "cup"))
	assert.Equal(t, http.StatusBadRequest, got.Status, "object removal accepts images only")

	got = h.svc.Generate(context.Background(), removalRequest(CapabilityBgRemove, freeEntitlement(0), pdf, ""))
	assert.True(t, got.Success, "background removal accepts pdf")
}

func TestRemovalUnreadableAssetIsUnexpected(t *testing.T) {
	h := newHarness()
	asset := pngAsset()
	asset.readErr = assert.AnError

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityBgRemove, freeEntitlement(0), asset, ""))

	assert.False(t, got.Success)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Empty(t, h.sink.records)
	assert.Zero(t, h.charger.calls)
}

func TestRemovalStorageFailureStillResponds(t *testing.T) {
	h := newHarness()
	h.sink.err = assert.AnError

	got := h.svc.Generate(context.Background(), removalRequest(CapabilityBgRemove, freeEntitlement(0), pngAsset(), ""))

	assert.True(t, got.Success)
	assert.Equal(t, KindReal, got.Kind)
	assert.Equal(t, 1, h.charger.calls)
}

func TestUsageChargeCountAcrossRequests(t *testing.T) {
	h := newHarness()
	const n = 15

	for i := 0; i < n; i++ {
		count := h.charger.counts["acct-1"]
		got := h.svc.Generate(context.Background(), removalRequest(CapabilityBgRemove, freeEntitlement(count), pngAsset(), ""))
		require.True(t, got.Success)

		after := h.charger.counts["acct-1"]
		assert.GreaterOrEqual(t, after, count)
		if count >= entity.FreeUsageLimit {
			assert.Equal(t, KindMock, got.Kind)
			assert.Equal(t, count, after, "no charge once the quota is exhausted")
		} else {
			assert.Equal(t, KindReal, got.Kind)
			assert.Equal(t, count+1, after)
		}
	}

	assert.Equal(t, entity.FreeUsageLimit, h.charger.calls)
	assert.Equal(t, entity.FreeUsageLimit, h.remover.multipartCalls)
}
