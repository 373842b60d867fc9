package pagesum

import (
	"context"
	"errors"
	"strings"
)

// fakeDocument serves fixed page texts and records access.
type fakeDocument struct {
	pages   []string
	errs    map[int]error
	calls   []int
	closed  int
	openErr error
}

func (d *fakeDocument) NumPage() int { return len(d.pages) }

func (d *fakeDocument) PageText(n int) (string, error) {
	d.calls = append(d.calls, n)
	if err := d.errs[n]; err != nil {
		return "", err
	}
	return d.pages[n-1], nil
}

func (d *fakeDocument) Close() error {
	d.closed++
	return nil
}

// fakeOpener hands out a single fakeDocument.
type fakeOpener struct {
	doc *fakeDocument
	err error
}

func (o *fakeOpener) Open(content []byte) (Document, error) {
	if o.err != nil {
		return nil, o.err
	}
	if len(content) == 0 {
		return nil, errors.New("empty content")
	}
	return o.doc, nil
}

// mockSummarizer returns the first n lines of its input.
type mockSummarizer struct {
	got string
	err error
}

func (m *mockSummarizer) Summarize(_ context.Context, text string, n int) (string, error) {
	m.got = text
	if m.err != nil {
		return "", m.err
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n"), nil
}

// mockKeywords returns the fields of its input, up to max.
type mockKeywords struct {
	got string
}

func (m *mockKeywords) Keywords(_ context.Context, text string, max int) ([]string, error) {
	m.got = text
	f := strings.Fields(strings.ToLower(text))
	if len(f) > max {
		f = f[:max]
	}
	return f, nil
}

// recordingTracer collects span names.
type recordingTracer struct {
	spans []*recordingSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, attrs ...SpanAttr) (context.Context, Span) {
	s := &recordingSpan{name: name, attrs: attrs}
	t.spans = append(t.spans, s)
	return ctx, s
}

type recordingSpan struct {
	name   string
	attrs  []SpanAttr
	events []string
	err    error
	ended  bool
}

func (s *recordingSpan) SetAttr(attrs ...SpanAttr)        { s.attrs = append(s.attrs, attrs...) }
func (s *recordingSpan) Event(name string, _ ...SpanAttr) { s.events = append(s.events, name) }
func (s *recordingSpan) Error(err error)                  { s.err = err }
func (s *recordingSpan) End()                             { s.ended = true }

func threePageDoc() *fakeDocument {
	return &fakeDocument{pages: []string{
		"Alpha beta. Gamma delta.",
		"Epsilon zeta. Eta theta.",
		"",
	}}
}
