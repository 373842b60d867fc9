package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nevindra/pagesum"
	"github.com/nevindra/pagesum/internal/config"
	"github.com/nevindra/pagesum/keyword"
	"github.com/nevindra/pagesum/observer"
	"github.com/nevindra/pagesum/pdf"
	"github.com/nevindra/pagesum/summarize"
)

// App holds the wired pipeline and the run defaults shared by the commands.
type App struct {
	Pipeline *pagesum.Pipeline
	Defaults pagesum.RunOptions
	Logger   *slog.Logger

	shutdown func(context.Context) error
}

// New wires the pipeline from config. The keyword tagger and sentence model
// are built here once and reused by every run.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	sumOpts := []summarize.Option{
		summarize.WithStemming(cfg.Summarizer.Stemming),
		summarize.WithLogger(logger),
	}
	if len(cfg.Summarizer.StopWords) > 0 {
		sumOpts = append(sumOpts, summarize.WithStopWords(cfg.Summarizer.StopWords...))
	}
	sum, err := summarize.New(sumOpts...)
	if err != nil {
		return nil, fmt.Errorf("init summarizer: %w", err)
	}
	kw := keyword.New(keyword.NewProseTagger(), keyword.WithLogger(logger))

	var (
		summarizer pagesum.Summarizer       = sum
		keywords   pagesum.KeywordExtractor = kw
		extractor  pagesum.TextExtractor    = pagesum.NewPageExtractor(logger)
		opts                                = []pagesum.Option{pagesum.WithLogger(logger)}
		shutdown                            = func(context.Context) error { return nil }
	)

	if cfg.Observer.Enabled {
		inst, stop, err := observer.Init(ctx)
		if err != nil {
			return nil, fmt.Errorf("init observer: %w", err)
		}
		summarizer = observer.WrapSummarizer(summarizer, inst)
		keywords = observer.WrapKeywords(keywords, inst)
		extractor = observer.WrapExtractor(extractor, inst)
		opts = append(opts, pagesum.WithTracer(observer.NewTracer()))
		shutdown = stop
		logger.Info("observer enabled")
	}
	opts = append(opts, pagesum.WithExtractor(extractor))

	return &App{
		Pipeline: pagesum.New(pdf.Opener{}, summarizer, keywords, opts...),
		Defaults: pagesum.RunOptions{
			Range:       pagesum.PageRange{Start: cfg.Pipeline.StartPage, End: cfg.Pipeline.EndPage},
			Sentences:   cfg.Pipeline.Sentences,
			MaxKeywords: cfg.Pipeline.MaxKeywords,
		},
		Logger:   logger,
		shutdown: shutdown,
	}, nil
}

// Close flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	return a.shutdown(ctx)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
