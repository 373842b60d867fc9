package observer

import (
	"context"
	"strings"
	"time"

	"github.com/nevindra/pagesum"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Compile-time interface checks.
var (
	_ pagesum.TextExtractor    = (*ObservedExtractor)(nil)
	_ pagesum.Summarizer       = (*ObservedSummarizer)(nil)
	_ pagesum.KeywordExtractor = (*ObservedKeywords)(nil)
)

// ObservedExtractor wraps a pagesum.TextExtractor with OTEL instrumentation.
type ObservedExtractor struct {
	inner pagesum.TextExtractor
	inst  *Instruments
}

// WrapExtractor returns an instrumented text extractor.
func WrapExtractor(inner pagesum.TextExtractor, inst *Instruments) *ObservedExtractor {
	return &ObservedExtractor{inner: inner, inst: inst}
}

func (o *ObservedExtractor) ExtractText(ctx context.Context, doc pagesum.Document, r pagesum.PageRange) (pagesum.Extraction, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "pipeline.extract", trace.WithAttributes(
		AttrStage.String("extract"),
		AttrRangeStart.Int(r.Start),
		AttrRangeEnd.Int(r.End),
	))
	defer span.End()
	start := time.Now()

	ext, err := o.inner.ExtractText(ctx, doc, r)

	span.SetAttributes(
		AttrPagesTotal.Int(ext.Total),
		AttrPagesText.Int(len(ext.Pages)),
		AttrPagesEmpty.Int(len(ext.Skipped)),
		AttrOutputWords.Int(pagesum.WordCount(ext.Text)),
	)
	if err == nil {
		stageAttrs := metric.WithAttributes(AttrStage.String("extract"))
		o.inst.PagesExtracted.Add(ctx, int64(len(ext.Pages)), stageAttrs)
		o.inst.PagesSkipped.Add(ctx, int64(len(ext.Skipped)), stageAttrs)
	}
	o.inst.record(ctx, span, "extract", start, err,
		otellog.Int("pipeline.pages.total", ext.Total),
		otellog.Int("pipeline.pages.extracted", len(ext.Pages)),
		otellog.Int("pipeline.pages.skipped", len(ext.Skipped)),
	)
	return ext, err
}

// ObservedSummarizer wraps a pagesum.Summarizer with OTEL instrumentation.
type ObservedSummarizer struct {
	inner pagesum.Summarizer
	inst  *Instruments
}

// WrapSummarizer returns an instrumented summarizer.
func WrapSummarizer(inner pagesum.Summarizer, inst *Instruments) *ObservedSummarizer {
	return &ObservedSummarizer{inner: inner, inst: inst}
}

func (o *ObservedSummarizer) Summarize(ctx context.Context, text string, n int) (string, error) {
	words := pagesum.WordCount(text)
	ctx, span := o.inst.Tracer.Start(ctx, "pipeline.summarize", trace.WithAttributes(
		AttrStage.String("summarize"),
		AttrInputWords.Int(words),
		AttrRequested.Int(n),
	))
	defer span.End()
	start := time.Now()

	summary, err := o.inner.Summarize(ctx, text, n)

	selected := 0
	if summary != "" {
		selected = strings.Count(summary, "\n") + 1
	}
	span.SetAttributes(
		AttrOutputCount.Int(selected),
		AttrOutputWords.Int(pagesum.WordCount(summary)),
	)
	o.inst.InputWords.Record(ctx, int64(words), metric.WithAttributes(AttrStage.String("summarize")))
	if err == nil {
		o.inst.Sentences.Add(ctx, int64(selected))
	}
	o.inst.record(ctx, span, "summarize", start, err,
		otellog.Int("pipeline.input.words", words),
		otellog.Int("pipeline.requested", n),
		otellog.Int("pipeline.output.count", selected),
	)
	return summary, err
}

// ObservedKeywords wraps a pagesum.KeywordExtractor with OTEL instrumentation.
type ObservedKeywords struct {
	inner pagesum.KeywordExtractor
	inst  *Instruments
}

// WrapKeywords returns an instrumented keyword extractor.
func WrapKeywords(inner pagesum.KeywordExtractor, inst *Instruments) *ObservedKeywords {
	return &ObservedKeywords{inner: inner, inst: inst}
}

func (o *ObservedKeywords) Keywords(ctx context.Context, text string, max int) ([]string, error) {
	words := pagesum.WordCount(text)
	ctx, span := o.inst.Tracer.Start(ctx, "pipeline.keywords", trace.WithAttributes(
		AttrStage.String("keywords"),
		AttrInputWords.Int(words),
		AttrRequested.Int(max),
	))
	defer span.End()
	start := time.Now()

	kws, err := o.inner.Keywords(ctx, text, max)

	span.SetAttributes(AttrOutputCount.Int(len(kws)))
	o.inst.InputWords.Record(ctx, int64(words), metric.WithAttributes(AttrStage.String("keywords")))
	if err == nil {
		o.inst.Keywords.Add(ctx, int64(len(kws)))
	}
	o.inst.record(ctx, span, "keywords", start, err,
		otellog.Int("pipeline.input.words", words),
		otellog.Int("pipeline.requested", max),
		otellog.Int("pipeline.output.count", len(kws)),
	)
	return kws, err
}

// record finishes the span status and emits the shared stage metrics and log.
func (inst *Instruments) record(ctx context.Context, span trace.Span, stage string, start time.Time, err error, attrs ...otellog.KeyValue) {
	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(AttrStageStatus.String(status))

	inst.StageRuns.Add(ctx, 1, metric.WithAttributes(
		AttrStage.String(stage),
		attribute.String("status", status),
	))
	inst.StageDuration.Record(ctx, durationMs, metric.WithAttributes(
		AttrStage.String(stage),
	))

	// Structured log
	var rec otellog.Record
	rec.SetSeverity(otellog.SeverityInfo)
	if err != nil {
		rec.SetSeverity(otellog.SeverityError)
	}
	rec.SetBody(otellog.StringValue("pipeline stage completed"))
	rec.AddAttributes(
		otellog.String("pipeline.stage", stage),
		otellog.String("pipeline.stage.status", status),
		otellog.Float64("pipeline.stage.duration_ms", durationMs),
	)
	rec.AddAttributes(attrs...)
	inst.Logger.Emit(ctx, rec)
}
