package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"quickai-api/internal/domain/entity"
	apperrors "quickai-api/pkg/errors"
)

const (
	reviewPrompt    = "Review the uploaded resume"
	reviewMaxTokens = 1000

	msgNoResume       = "No resume file uploaded. Please select a PDF or Word document."
	msgResumeNotPDF   = "Currently only PDF files are supported for resume review. Please convert your document to PDF."
	msgResumeTooLarge = "Resume file size exceeds 5MB limit."
	msgResumeUnparsed = "Failed to parse PDF file. Please ensure it's a valid PDF."
	msgResumeNoText   = "No text content found in the PDF. Please check if the file is readable."
)

var errNotConfigured = errors.New("not configured")

type reviewState struct {
	req  *Request
	text string
}

func reviewCompletionPrompt(text string) string {
	return "Review the following resume and provide constructive feedback on its strengths, weaknesses, " +
		"and areas for improvement. Please format your response with clear sections for Overall Impression, " +
		"Strengths, Weaknesses, and Recommendations. Resume Content: \n\n" + text
}

func (s *Service) reviewChain() Chain[reviewState] {
	policy := AssetPolicy{
		Accept:            mediaReviewableDoc,
		MaxSize:           s.limits.MaxDocumentSize,
		RejectTypeMessage: msgResumeNotPDF,
	}

	record := func(st *reviewState, r Result) *entity.Creation {
		return entity.NewCreation(st.req.Entitlement.AccountID, reviewPrompt, r.Content, entity.CreationTypeResumeReview, false)
	}

	return NewChain(CapabilityResumeReview, record,
		quotaGate[reviewState](func(st *reviewState) *Request { return st.req }),
		Tier[reviewState]{
			Name: "document",
			Run: func(_ context.Context, st *reviewState, _ []TierFailure) TierOutcome {
				err := policy.Check(st.req.Asset)
				switch {
				case err == nil:
					return Pass()
				case apperrors.HasCode(err, apperrors.CodeAssetMissing):
					return Terminate(Rejected(http.StatusBadRequest, msgNoResume, ""))
				case !policy.Accept.Accepts(st.req.Asset.MimeType()):
					return Terminate(rejection(err, ""))
				default:
					return Terminate(Rejected(http.StatusBadRequest, msgResumeTooLarge, ""))
				}
			},
		},
		Tier[reviewState]{
			Name: "extract",
			Run: func(ctx context.Context, st *reviewState, _ []TierFailure) TierOutcome {
				data, err := readAsset(st.req.Asset)
				if err != nil {
					return Terminate(Unexpected(err))
				}
				if s.extractor == nil {
					return Terminate(Unexpected(apperrors.New(apperrors.CodeInternalError, "document extractor unavailable")))
				}
				text, err := s.extractor.ExtractText(ctx, data)
				if err != nil {
					return Terminate(Rejected(http.StatusBadRequest, msgResumeUnparsed, ""))
				}
				if strings.TrimSpace(text) == "" {
					return Terminate(Rejected(http.StatusBadRequest, msgResumeNoText, ""))
				}
				st.text = text
				return Pass()
			},
		},
		Tier[reviewState]{
			Name:    "review-service",
			Persist: true,
			Run: func(ctx context.Context, st *reviewState, _ []TierFailure) TierOutcome {
				if s.reviewer == nil || !s.reviewer.Configured() {
					return Continue(errNotConfigured.Error())
				}
				return outcomeFromText(s.reviewer.Review(ctx, st.text))
			},
		},
		Tier[reviewState]{
			Name:    "completion",
			Persist: true,
			Run: func(ctx context.Context, st *reviewState, _ []TierFailure) TierOutcome {
				if s.text == nil || !s.text.Configured() {
					return Continue(errNotConfigured.Error())
				}
				return outcomeFromText(s.text.Complete(ctx, CompletionRequest{
					Prompt:    reviewCompletionPrompt(st.text),
					MaxTokens: reviewMaxTokens,
				}))
			},
		},
		Tier[reviewState]{
			Name:    "template",
			Persist: true,
			Run: func(_ context.Context, st *reviewState, failures []TierFailure) TierOutcome {
				r := Mock(TemplateAnalysis(st.req.Asset.Filename()), "")
				r.Details = failureDetails(failures)
				return Succeed(r)
			},
		},
	)
}

// outcomeFromText 上游文本结果转换为层级结果，空文本视为失败
func outcomeFromText(content string, err error) TierOutcome {
	if err != nil {
		return Continue(err.Error())
	}
	if strings.TrimSpace(content) == "" {
		return Continue("empty response")
	}
	return Succeed(Real(content))
}

// TemplateAnalysis 确定性的模板点评，不依赖任何外部调用
func TemplateAnalysis(filename string) string {
	return fmt.Sprintf(templateAnalysis, filename)
}

const templateAnalysis = `## Resume Analysis for %s

### Overall Impression
Based on the uploaded resume, here's a comprehensive analysis of your document.

### Strengths
- **Clear Structure**: Your resume follows a logical format
- **Professional Presentation**: The layout appears well-organized
- **Relevant Content**: The document contains appropriate sections for a professional resume

### Weaknesses
- **Content Analysis**: Unable to provide specific feedback without AI processing
- **Keyword Optimization**: Consider tailoring keywords for specific job roles
- **Achievement Quantification**: Ensure measurable achievements are highlighted

### Recommendations
1. **Customize for Each Role**: Tailor your resume for specific job applications
2. **Use Action Verbs**: Start bullet points with strong action verbs
3. **Quantify Achievements**: Include specific numbers and metrics where possible
4. **Proofread Thoroughly**: Ensure no spelling or grammatical errors
5. **Keep it Concise**: Aim for 1-2 pages maximum

### Next Steps
- Consider using professional resume review services
- Have multiple people review your resume
- Update regularly with new experiences and skills

*Note: This is a basic analysis. For more detailed feedback, configure a review or completion provider.*`
