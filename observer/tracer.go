package observer

import (
	"context"
	"errors"
	"fmt"

	"github.com/nevindra/pagesum"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// otelTracer implements pagesum.Tracer using OpenTelemetry.
type otelTracer struct {
	inner trace.Tracer
}

// NewTracer returns a pagesum.Tracer backed by the global OTEL TracerProvider.
// Call observer.Init() first to configure the provider; otherwise spans go to
// a no-op backend.
func NewTracer() pagesum.Tracer {
	return &otelTracer{inner: otel.Tracer(scopeName)}
}

func (t *otelTracer) Start(ctx context.Context, name string, attrs ...pagesum.SpanAttr) (context.Context, pagesum.Span) {
	ctx, span := t.inner.Start(ctx, name, trace.WithAttributes(toOTELAttrs(attrs)...))
	return ctx, &otelSpan{inner: span}
}

// otelSpan implements pagesum.Span using an OTEL trace.Span.
type otelSpan struct {
	inner trace.Span
}

func (s *otelSpan) SetAttr(attrs ...pagesum.SpanAttr) {
	s.inner.SetAttributes(toOTELAttrs(attrs)...)
}

func (s *otelSpan) Event(name string, attrs ...pagesum.SpanAttr) {
	s.inner.AddEvent(name, trace.WithAttributes(toOTELAttrs(attrs)...))
}

// Error marks the span failed, except for a rejected page range: that is a
// user input problem and is kept as an event on an otherwise healthy span.
func (s *otelSpan) Error(err error) {
	var rangeErr *pagesum.ErrInvalidRange
	if errors.As(err, &rangeErr) {
		s.inner.AddEvent("pagesum.invalid_range", trace.WithAttributes(
			AttrRangeStart.Int(rangeErr.Start),
			AttrRangeEnd.Int(rangeErr.End),
			AttrPagesTotal.Int(rangeErr.Total),
		))
		return
	}
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}

func (s *otelSpan) End() {
	s.inner.End()
}

func toOTELAttrs(attrs []pagesum.SpanAttr) []attribute.KeyValue {
	out := make([]attribute.KeyValue, len(attrs))
	for i, a := range attrs {
		out[i] = toOTELAttr(a)
	}
	return out
}

// toOTELAttr converts a pagesum.SpanAttr to an OTEL attribute.KeyValue.
func toOTELAttr(a pagesum.SpanAttr) attribute.KeyValue {
	switch v := a.Value.(type) {
	case string:
		return attribute.String(a.Key, v)
	case int:
		return attribute.Int(a.Key, v)
	case int64:
		return attribute.Int64(a.Key, v)
	case float64:
		return attribute.Float64(a.Key, v)
	case bool:
		return attribute.Bool(a.Key, v)
	default:
		return attribute.String(a.Key, fmt.Sprintf("%v", v))
	}
}

// compile-time checks
var (
	_ pagesum.Tracer = (*otelTracer)(nil)
	_ pagesum.Span   = (*otelSpan)(nil)
)
