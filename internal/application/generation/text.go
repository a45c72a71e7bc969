package generation

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"quickai-api/internal/domain/entity"
)

const (
	// QuotaMessage 免费额度用尽提示
	QuotaMessage = "Limit reached. Upgrade to premium plan for more usage."

	missingTextCredential  = "Missing GEMINI_API_KEY"
	missingImageCredential = "Missing CLIPDROP_API_KEY"

	maxArticleTokens = 2000
	blogTitleTokens  = 100
)

type textState struct {
	req *Request
}

// articleMaxTokens 由调用方 length 推导输出上限，无法解析时返回 0
func articleMaxTokens(length string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(length), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > maxArticleTokens {
		return maxArticleTokens
	}
	return int(f)
}

func (s *Service) textChain(capability Capability) Chain[textState] {
	record := func(st *textState, r Result) *entity.Creation {
		typ := entity.CreationTypeArticle
		if capability == CapabilityBlogTitle {
			typ = entity.CreationTypeBlogTitle
		}
		return entity.NewCreation(st.req.Entitlement.AccountID, st.req.Prompt, r.Content, typ, false)
	}

	return NewChain(capability, record,
		Tier[textState]{
			Name: "credential",
			Run: func(_ context.Context, _ *textState, _ []TierFailure) TierOutcome {
				if s.text == nil || !s.text.Configured() {
					return Terminate(Failed(http.StatusInternalServerError, missingTextCredential))
				}
				return Pass()
			},
		},
		quotaGate[textState](func(st *textState) *Request { return st.req }),
		Tier[textState]{
			Name: "prompt",
			Run: func(_ context.Context, st *textState, _ []TierFailure) TierOutcome {
				if strings.TrimSpace(st.req.Prompt) == "" {
					return Terminate(Rejected(http.StatusBadRequest, "prompt is required", ""))
				}
				return Pass()
			},
		},
		Tier[textState]{
			Name:     "completion",
			Billable: true,
			Persist:  true,
			Run: func(ctx context.Context, st *textState, _ []TierFailure) TierOutcome {
				maxTokens := blogTitleTokens
				if capability == CapabilityArticle {
					maxTokens = articleMaxTokens(st.req.Length)
				}
				content, err := s.text.Complete(ctx, CompletionRequest{Prompt: st.req.Prompt, MaxTokens: maxTokens})
				if err != nil {
					return Terminate(Failed(http.StatusOK, err.Error()))
				}
				return Succeed(Real(content))
			},
		},
	)
}

// quotaGate 免费额度用尽时终止，状态码 403
func quotaGate[S any](request func(*S) *Request) Tier[S] {
	return Tier[S]{
		Name: "quota",
		Run: func(_ context.Context, st *S, _ []TierFailure) TierOutcome {
			if request(st).Entitlement.QuotaExceeded() {
				return Terminate(Failed(http.StatusForbidden, QuotaMessage))
			}
			return Pass()
		},
	}
}
