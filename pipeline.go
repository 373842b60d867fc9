package pagesum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtractor replaces the default PageExtractor.
func WithExtractor(e TextExtractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracer enables span creation for runs and stages.
func WithTracer(t Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}

// Pipeline composes extraction, summarization and keyword ranking.
// A Pipeline holds no per-run state and may be shared between goroutines
// as long as its stages can.
type Pipeline struct {
	opener     Opener
	extractor  TextExtractor
	summarizer Summarizer
	keywords   KeywordExtractor
	logger     *slog.Logger // never nil
	tracer     Tracer       // nil = no spans
}

// New creates a Pipeline from its stages.
func New(opener Opener, summarizer Summarizer, keywords KeywordExtractor, opts ...Option) *Pipeline {
	p := &Pipeline{
		opener:     opener,
		summarizer: summarizer,
		keywords:   keywords,
		logger:     nopLogger,
	}
	for _, o := range opts {
		o(p)
	}
	if p.extractor == nil {
		p.extractor = NewPageExtractor(p.logger)
	}
	return p
}

// Run processes one document. The document is opened and closed inside Run;
// the content slice is not retained.
func (p *Pipeline) Run(ctx context.Context, content []byte, opts RunOptions) (_ *Result, err error) {
	if opts.Sentences < 1 {
		return nil, fmt.Errorf("sentences must be at least 1, got %d", opts.Sentences)
	}

	res := &Result{ID: NewID()}
	ctx, span := startSpan(ctx, p.tracer, "pagesum.run",
		StringAttr("run.id", res.ID),
		IntAttr("range.start", opts.Range.Start),
		IntAttr("range.end", opts.Range.End),
		IntAttr("summary.sentences", opts.Sentences),
	)
	defer func() { endSpan(span, err) }()

	logger := p.logger.With("run_id", res.ID)
	logger.InfoContext(ctx, "run started", "bytes", len(content),
		"start_page", opts.Range.Start, "end_page", opts.Range.End)

	res.Extraction, err = p.extract(ctx, content, opts.Range)
	if err != nil {
		var rangeErr *ErrInvalidRange
		if errors.As(err, &rangeErr) {
			logger.InfoContext(ctx, "invalid page range", "error", err)
		} else {
			logger.ErrorContext(ctx, "extraction failed", "error", err)
		}
		return nil, err
	}
	res.TextStats = NewStats(res.Extraction.Text)
	spanEvent(span, "pages.extracted",
		IntAttr("pages.total", res.Extraction.Total),
		IntAttr("pages.extracted", len(res.Extraction.Pages)),
		IntAttr("pages.skipped", len(res.Extraction.Skipped)),
		IntAttr("text.words", res.TextStats.Words),
	)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	res.Summary, err = p.summarizer.Summarize(ctx, res.Extraction.Text, opts.Sentences)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	res.SummaryStats = NewStats(res.Summary)
	spanEvent(span, "summary.selected",
		IntAttr("summary.words", res.SummaryStats.Words),
		Float64Attr("summary.reading_minutes", res.SummaryStats.ReadingMinutes),
	)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	res.Keywords, err = p.keywords.Keywords(ctx, res.Summary, opts.MaxKeywords)
	if err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}
	if res.Keywords == nil {
		res.Keywords = []string{}
	}
	spanEvent(span, "keywords.ranked", IntAttr("keywords.count", len(res.Keywords)))

	if span != nil {
		span.SetAttr(
			IntAttr("text.words", res.TextStats.Words),
			IntAttr("summary.words", res.SummaryStats.Words),
			IntAttr("keywords.count", len(res.Keywords)),
		)
	}
	logger.InfoContext(ctx, "run finished",
		"pages", len(res.Extraction.Pages),
		"skipped", len(res.Extraction.Skipped),
		"words", res.TextStats.Words,
		"summary_words", res.SummaryStats.Words,
		"keywords", len(res.Keywords),
	)
	return res, nil
}

// extract owns the document handle: it is closed on every return path.
func (p *Pipeline) extract(ctx context.Context, content []byte, r PageRange) (Extraction, error) {
	doc, err := p.opener.Open(content)
	if err != nil {
		var de *ErrDocument
		if errors.As(err, &de) {
			return Extraction{}, err
		}
		return Extraction{}, &ErrDocument{Op: "open document", Err: err}
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			p.logger.WarnContext(ctx, "close document", "error", cerr)
		}
	}()
	return p.extractor.ExtractText(ctx, doc, r)
}
