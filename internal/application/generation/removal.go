package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"quickai-api/internal/domain/entity"
)

const (
	msgNoImage          = "No image uploaded; showing placeholder of your upload slot."
	msgNoObject         = "No object specified; echoing your uploaded image."
	msgRemovalQuota     = "Free limit reached; returning your image (mock)."
	msgRemovalNoKey     = "Removal service not configured; returning mock built from your image."
	msgRemovalExhausted = "Removal service unavailable; returning mock built from your image."
)

type removalState struct {
	req    *Request
	image  []byte
	object string
}

func (st *removalState) removalRequest(op RemovalOp) RemovalRequest {
	return RemovalRequest{
		Op:       op,
		Image:    st.image,
		Filename: st.req.Asset.Filename(),
		MimeType: st.req.Asset.MimeType(),
		Object:   st.object,
	}
}

// badgeLabel mock 图片上的标注
func badgeLabel(op RemovalOp, object string) string {
	if op == RemovalObject {
		return fmt.Sprintf(`Mock: removed "%s"`, object)
	}
	return "Mock: background removed"
}

// removalPrompt 创作记录中的提示词
func removalPrompt(op RemovalOp, object string, kind Kind) string {
	prompt := "Remove Background from image"
	if op == RemovalObject {
		prompt = fmt.Sprintf("Removed %s from image", object)
	}
	if kind == KindMock {
		prompt += " (mock)"
	}
	return prompt
}

func (s *Service) removalChain(op RemovalOp) Chain[removalState] {
	capability := CapabilityBgRemove
	policy := AssetPolicy{Accept: mediaImagesAndPDF, MaxSize: s.limits.MaxUploadSize}
	if op == RemovalObject {
		capability = CapabilityObjectRemove
		policy.Accept = mediaImages
	}

	record := func(st *removalState, r Result) *entity.Creation {
		return entity.NewCreation(st.req.Entitlement.AccountID, removalPrompt(op, st.object, r.Kind), r.Content, entity.CreationTypeImage, false)
	}

	mock := func(st *removalState, message string) Result {
		return Mock(s.placeholder.Badge(st.image, st.req.Asset.MimeType(), badgeLabel(op, st.object)), message)
	}

	tiers := []Tier[removalState]{
		{
			Name: "asset",
			Run: func(_ context.Context, st *removalState, _ []TierFailure) TierOutcome {
				if st.req.Asset == nil {
					return Terminate(Rejected(http.StatusOK, msgNoImage, s.placeholder.UploadSlot()))
				}
				if err := policy.Check(st.req.Asset); err != nil {
					return Terminate(rejection(err, ""))
				}
				data, err := readAsset(st.req.Asset)
				if err != nil {
					return Terminate(Unexpected(err))
				}
				st.image = data
				return Pass()
			},
		},
	}

	if op == RemovalObject {
		tiers = append(tiers, Tier[removalState]{
			Name: "object",
			Run: func(_ context.Context, st *removalState, _ []TierFailure) TierOutcome {
				st.object = strings.TrimSpace(st.req.Object)
				if st.object == "" {
					return Terminate(Rejected(http.StatusOK, msgNoObject, s.placeholder.Echo(st.image, st.req.Asset.MimeType())))
				}
				return Pass()
			},
		})
	}

	tiers = append(tiers,
		Tier[removalState]{
			Name: "quota",
			Run: func(_ context.Context, st *removalState, _ []TierFailure) TierOutcome {
				if st.req.Entitlement.QuotaExceeded() {
					return Succeed(mock(st, msgRemovalQuota))
				}
				return Pass()
			},
		},
		Tier[removalState]{
			Name:     "credential",
			Billable: true,
			Persist:  true,
			Run: func(_ context.Context, st *removalState, _ []TierFailure) TierOutcome {
				if s.remover == nil || !s.remover.Configured() {
					return Succeed(mock(st, msgRemovalNoKey))
				}
				return Pass()
			},
		},
		Tier[removalState]{
			Name:     "multipart",
			Billable: true,
			Persist:  true,
			Run: func(ctx context.Context, st *removalState, _ []TierFailure) TierOutcome {
				url, err := s.remover.RemoveMultipart(ctx, st.removalRequest(op))
				if err != nil {
					return Continue(err.Error())
				}
				return Succeed(Real(url))
			},
		},
		Tier[removalState]{
			Name:     "inline",
			Billable: true,
			Persist:  true,
			Run: func(ctx context.Context, st *removalState, _ []TierFailure) TierOutcome {
				url, err := s.remover.RemoveInline(ctx, st.removalRequest(op))
				if err != nil {
					return Continue(err.Error())
				}
				return Succeed(Real(url))
			},
		},
		Tier[removalState]{
			Name:     "placeholder",
			Billable: true,
			Persist:  true,
			Run: func(_ context.Context, st *removalState, failures []TierFailure) TierOutcome {
				r := mock(st, msgRemovalExhausted)
				r.Details = failureDetails(failures)
				return Succeed(r)
			},
		},
	)

	return NewChain(capability, record, tiers...)
}
