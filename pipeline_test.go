package pagesum

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestPipelineRunEndToEnd(t *testing.T) {
	doc := threePageDoc()
	sum := &mockSummarizer{}
	kw := &mockKeywords{}
	p := New(&fakeOpener{doc: doc}, sum, kw)

	res, err := p.Run(context.Background(), []byte("%PDF"), RunOptions{
		Range:       PageRange{Start: 1, End: 3},
		Sentences:   5,
		MaxKeywords: 3,
	})
	if err != nil {
		t.Fatal(err)
	}

	wantText := "Alpha beta. Gamma delta.\nEpsilon zeta. Eta theta.\n"
	if res.Extraction.Text != wantText {
		t.Errorf("Text = %q, want %q", res.Extraction.Text, wantText)
	}
	if res.TextStats != (Stats{Words: 8, ReadingMinutes: 0.04}) {
		t.Errorf("TextStats = %+v", res.TextStats)
	}
	if sum.got != wantText {
		t.Errorf("summarizer got %q", sum.got)
	}
	if kw.got != res.Summary {
		t.Errorf("keywords should run on the summary, got %q", kw.got)
	}
	if !reflect.DeepEqual(res.Keywords, []string{"alpha", "beta.", "gamma"}) {
		t.Errorf("Keywords = %v", res.Keywords)
	}
	if res.SummaryStats.Words != 8 {
		t.Errorf("SummaryStats = %+v", res.SummaryStats)
	}
	if len(res.ID) != 36 {
		t.Errorf("ID = %q", res.ID)
	}
	if doc.closed != 1 {
		t.Errorf("document closed %d times, want 1", doc.closed)
	}
}

func TestPipelineInvalidRangeClosesDocument(t *testing.T) {
	doc := threePageDoc()
	sum := &mockSummarizer{}
	p := New(&fakeOpener{doc: doc}, sum, &mockKeywords{})

	_, err := p.Run(context.Background(), []byte("%PDF"), RunOptions{
		Range:     PageRange{Start: 7, End: 9},
		Sentences: 3,
	})
	var rangeErr *ErrInvalidRange
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *ErrInvalidRange, got %v", err)
	}
	if doc.closed != 1 {
		t.Errorf("document closed %d times, want 1", doc.closed)
	}
	if sum.got != "" || len(doc.calls) != 0 {
		t.Error("no stage should run after an invalid range")
	}
}

func TestPipelineOpenFailure(t *testing.T) {
	cause := errors.New("malformed xref")
	p := New(&fakeOpener{err: cause}, &mockSummarizer{}, &mockKeywords{})

	_, err := p.Run(context.Background(), []byte("garbage"), DefaultRunOptions())
	var de *ErrDocument
	if !errors.As(err, &de) {
		t.Fatalf("expected *ErrDocument, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be preserved")
	}
}

func TestPipelineRejectsZeroSentences(t *testing.T) {
	p := New(&fakeOpener{doc: threePageDoc()}, &mockSummarizer{}, &mockKeywords{})
	opts := DefaultRunOptions()
	opts.Sentences = 0
	if _, err := p.Run(context.Background(), []byte("%PDF"), opts); err == nil {
		t.Fatal("expected error for zero sentences")
	}
}

func TestPipelineSummarizerError(t *testing.T) {
	cause := errors.New("svd did not converge")
	doc := threePageDoc()
	p := New(&fakeOpener{doc: doc}, &mockSummarizer{err: cause}, &mockKeywords{})

	_, err := p.Run(context.Background(), []byte("%PDF"), DefaultRunOptions())
	if !errors.Is(err, cause) {
		t.Fatalf("expected summarizer error, got %v", err)
	}
	if doc.closed != 1 {
		t.Errorf("document closed %d times, want 1", doc.closed)
	}
}

func TestPipelineCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum := &mockSummarizer{}
	p := New(&fakeOpener{doc: threePageDoc()}, sum, &mockKeywords{})

	_, err := p.Run(ctx, []byte("%PDF"), DefaultRunOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sum.got != "" {
		t.Error("summarizer should not run on a cancelled context")
	}
}

func TestPipelineEmptyTextKeywordsNotNil(t *testing.T) {
	doc := &fakeDocument{pages: []string{"", ""}}
	p := New(&fakeOpener{doc: doc}, &mockSummarizer{}, &mockKeywords{})

	res, err := p.Run(context.Background(), []byte("%PDF"), DefaultRunOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Extraction.Text != "" || res.Summary != "" {
		t.Errorf("expected empty text and summary, got %q / %q", res.Extraction.Text, res.Summary)
	}
	if res.Keywords == nil || len(res.Keywords) != 0 {
		t.Errorf("Keywords = %#v, want empty non-nil slice", res.Keywords)
	}
}

func TestPipelineTracerSpans(t *testing.T) {
	tr := &recordingTracer{}
	p := New(&fakeOpener{doc: threePageDoc()}, &mockSummarizer{}, &mockKeywords{}, WithTracer(tr))

	if _, err := p.Run(context.Background(), []byte("%PDF"), DefaultRunOptions()); err != nil {
		t.Fatal(err)
	}
	if len(tr.spans) != 1 || tr.spans[0].name != "pagesum.run" {
		t.Fatalf("spans = %+v", tr.spans)
	}
	if !tr.spans[0].ended || tr.spans[0].err != nil {
		t.Errorf("span not ended cleanly: %+v", tr.spans[0])
	}
	want := []string{"pages.extracted", "summary.selected", "keywords.ranked"}
	if !reflect.DeepEqual(tr.spans[0].events, want) {
		t.Errorf("events = %v, want %v", tr.spans[0].events, want)
	}
}

func TestPipelineTracerRecordsError(t *testing.T) {
	tr := &recordingTracer{}
	p := New(&fakeOpener{doc: threePageDoc()}, &mockSummarizer{}, &mockKeywords{}, WithTracer(tr))

	_, err := p.Run(context.Background(), []byte("%PDF"), RunOptions{Range: PageRange{Start: 9, End: 9}, Sentences: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if tr.spans[0].err == nil || !tr.spans[0].ended {
		t.Error("span should record the error and end")
	}
	if len(tr.spans[0].events) != 0 {
		t.Errorf("no stage should complete, got events %v", tr.spans[0].events)
	}
}
