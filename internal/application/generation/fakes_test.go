package generation

import (
	"context"
	"errors"

	"quickai-api/internal/domain/entity"
)

type memAsset struct {
	name    string
	mime    string
	data    []byte
	readErr error
}

func (a *memAsset) Filename() string { return a.name }
func (a *memAsset) MimeType() string { return a.mime }
func (a *memAsset) Size() int64      { return int64(len(a.data)) }
func (a *memAsset) Bytes() ([]byte, error) {
	if a.readErr != nil {
		return nil, a.readErr
	}
	return a.data, nil
}

func pngAsset() *memAsset {
	return &memAsset{name: "cat.png", mime: "image/png", data: []byte{0x89, 'P', 'N', 'G'}}
}

type fakeText struct {
	configured bool
	content    string
	err        error
	calls      int
	last       CompletionRequest
}

func (f *fakeText) Configured() bool { return f.configured }
func (f *fakeText) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.calls++
	f.last = req
	return f.content, f.err
}

type fakeImage struct {
	configured bool
	content    string
	err        error
	calls      int
	prompt     string
}

func (f *fakeImage) Configured() bool { return f.configured }
func (f *fakeImage) Synthesize(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.content, f.err
}

type fakeRemover struct {
	configured     bool
	multipartURL   string
	multipartErr   error
	inlineURL      string
	inlineErr      error
	multipartCalls int
	inlineCalls    int
	last           RemovalRequest
}

func (f *fakeRemover) Configured() bool { return f.configured }
func (f *fakeRemover) RemoveMultipart(_ context.Context, req RemovalRequest) (string, error) {
	f.multipartCalls++
	f.last = req
	return f.multipartURL, f.multipartErr
}
func (f *fakeRemover) RemoveInline(_ context.Context, req RemovalRequest) (string, error) {
	f.inlineCalls++
	f.last = req
	return f.inlineURL, f.inlineErr
}

func (f *fakeRemover) providerCalls() int { return f.multipartCalls + f.inlineCalls }

type fakeReviewer struct {
	configured bool
	content    string
	err        error
	calls      int
}

func (f *fakeReviewer) Configured() bool { return f.configured }
func (f *fakeReviewer) Review(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.content, f.err
}

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) ExtractText(_ context.Context, _ []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeSink struct {
	err     error
	records []*entity.Creation
}

func (f *fakeSink) Append(_ context.Context, c *entity.Creation) error {
	f.records = append(f.records, c)
	return f.err
}

// fakeCharger 模拟外部计数：每次计费后账户计数加一
type fakeCharger struct {
	calls  int
	counts map[string]int64
}

func (f *fakeCharger) Charge(_ context.Context, ent entity.Entitlement) {
	f.calls++
	if ent.IsPremium() {
		return
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[ent.AccountID]++
}

var errUpstream = errors.New("upstream 502")

type harness struct {
	text      *fakeText
	image     *fakeImage
	remover   *fakeRemover
	reviewer  *fakeReviewer
	extractor *fakeExtractor
	sink      *fakeSink
	charger   *fakeCharger
	svc       *Service
}

func newHarness() *harness {
	h := &harness{
		text:      &fakeText{configured: true, content: "generated"},
		image:     &fakeImage{configured: true, content: "data:image/png;base64,AAAA"},
		remover:   &fakeRemover{configured: true, multipartURL: "https://cdn.example/out.png", inlineURL: "https://cdn.example/inline.png"},
		reviewer:  &fakeReviewer{configured: true, content: "solid resume"},
		extractor: &fakeExtractor{text: "Jane Doe\nEngineer"},
		sink:      &fakeSink{},
		charger:   &fakeCharger{},
	}
	h.rebuild()
	return h
}

func (h *harness) rebuild() {
	h.svc = NewService(Dependencies{
		Text:      h.text,
		Image:     h.image,
		Remover:   h.remover,
		Reviewer:  h.reviewer,
		Extractor: h.extractor,
		Sink:      h.sink,
		Charger:   h.charger,
	})
}

func freeEntitlement(count int64) entity.Entitlement {
	return entity.Entitlement{AccountID: "acct-1", Plan: entity.PlanFree, FreeUsageCount: count, Metered: true}
}
