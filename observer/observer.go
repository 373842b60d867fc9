// Package observer provides OTEL-based observability for pagesum pipelines.
//
// It wraps the pipeline stages (TextExtractor, Summarizer, KeywordExtractor)
// with instrumented versions that emit traces, metrics, and logs via
// OpenTelemetry. Users export to any OTEL-compatible backend by setting
// standard OTEL env vars.
package observer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/nevindra/pagesum/observer"

// Instruments holds all OTEL instruments used by the observer wrappers.
type Instruments struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Logger otellog.Logger

	// Counters
	StageRuns      metric.Int64Counter
	PagesExtracted metric.Int64Counter
	PagesSkipped   metric.Int64Counter
	Sentences      metric.Int64Counter
	Keywords       metric.Int64Counter

	// Histograms
	StageDuration metric.Float64Histogram
	InputWords    metric.Int64Histogram
}

// Init sets up OTEL trace, metric, and log providers with OTLP HTTP exporters.
// Configuration comes from standard OTEL env vars (OTEL_EXPORTER_OTLP_ENDPOINT, etc.).
// Returns a shutdown function that must be called on application exit.
func Init(ctx context.Context) (*Instruments, func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("pagesum")),
		resource.WithFromEnv(),
	)
	if err != nil {
		return nil, nil, err
	}

	// Trace provider
	traceExp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	// Metric provider
	metricExp, err := otlpmetrichttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	// Log provider
	logExp, err := otlploghttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)

	inst, err := NewInstruments()
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		_ = lp.Shutdown(ctx)
		return nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			tp.Shutdown(ctx),
			mp.Shutdown(ctx),
			lp.Shutdown(ctx),
		)
	}

	return inst, shutdown, nil
}

// NewInstruments creates instruments from the global OTEL providers. Without
// Init those are no-ops, which is what tests and disabled observers use.
func NewInstruments() (*Instruments, error) {
	tracer := otel.Tracer(scopeName)
	meter := otel.Meter(scopeName)
	logger := global.GetLoggerProvider().Logger(scopeName)

	stageRuns, err := meter.Int64Counter("pipeline.stage.runs",
		metric.WithDescription("Pipeline stage invocations"),
		metric.WithUnit("{run}"))
	if err != nil {
		return nil, err
	}

	pagesExtracted, err := meter.Int64Counter("pipeline.pages.extracted",
		metric.WithDescription("Pages that contributed text"),
		metric.WithUnit("{page}"))
	if err != nil {
		return nil, err
	}

	pagesSkipped, err := meter.Int64Counter("pipeline.pages.skipped",
		metric.WithDescription("In-range pages without extractable text"),
		metric.WithUnit("{page}"))
	if err != nil {
		return nil, err
	}

	sentences, err := meter.Int64Counter("pipeline.summary.sentences",
		metric.WithDescription("Sentences selected for summaries"),
		metric.WithUnit("{sentence}"))
	if err != nil {
		return nil, err
	}

	keywords, err := meter.Int64Counter("pipeline.keywords",
		metric.WithDescription("Keywords returned"),
		metric.WithUnit("{keyword}"))
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram("pipeline.stage.duration",
		metric.WithDescription("Pipeline stage duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	inputWords, err := meter.Int64Histogram("pipeline.stage.input_words",
		metric.WithDescription("Words of text handed to a stage"),
		metric.WithUnit("{word}"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		Tracer:         tracer,
		Meter:          meter,
		Logger:         logger,
		StageRuns:      stageRuns,
		PagesExtracted: pagesExtracted,
		PagesSkipped:   pagesSkipped,
		Sentences:      sentences,
		Keywords:       keywords,
		StageDuration:  stageDuration,
		InputWords:     inputWords,
	}, nil
}
