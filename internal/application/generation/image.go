package generation

import (
	"context"
	"net/http"
	"strings"

	"quickai-api/internal/domain/entity"
)

// DefaultImagePrompt 空提示词时的默认值
const DefaultImagePrompt = "shot of vaporwave fashion dog in miami"

type imageState struct {
	req    *Request
	prompt string
}

func (s *Service) imageChain() Chain[imageState] {
	record := func(st *imageState, r Result) *entity.Creation {
		return entity.NewCreation(st.req.Entitlement.AccountID, st.prompt, r.Content, entity.CreationTypeImage, st.req.Publish)
	}

	return NewChain(CapabilityImage, record,
		Tier[imageState]{
			Name: "credential",
			Run: func(_ context.Context, _ *imageState, _ []TierFailure) TierOutcome {
				if s.image == nil || !s.image.Configured() {
					return Terminate(Failed(http.StatusInternalServerError, missingImageCredential))
				}
				return Pass()
			},
		},
		quotaGate[imageState](func(st *imageState) *Request { return st.req }),
		Tier[imageState]{
			Name:     "synthesis",
			Billable: true,
			Persist:  true,
			Run: func(ctx context.Context, st *imageState, _ []TierFailure) TierOutcome {
				st.prompt = strings.TrimSpace(st.req.Prompt)
				if st.prompt == "" {
					st.prompt = DefaultImagePrompt
				}
				content, err := s.image.Synthesize(ctx, st.prompt)
				if err != nil {
					return Terminate(Failed(http.StatusOK, err.Error()))
				}
				return Succeed(Real(content))
			},
		},
	)
}
