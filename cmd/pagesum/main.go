// Command pagesum summarizes a page range of a PDF from the command line.
//
//	pagesum -start 1 -end 3 -sentences 5 report.pdf
//
// The summary can be saved with -o; -format selects text, markdown or json output.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nevindra/pagesum"
	"github.com/nevindra/pagesum/internal/app"
	"github.com/nevindra/pagesum/internal/config"
	"github.com/nevindra/pagesum/report"
)

func main() {
	ctx, stop := app.SignalContext()
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pagesum:", err)
		os.Exit(1)
	}
}

type options struct {
	config    string
	start     int
	end       int
	sentences int
	keywords  int
	output    string
	format    string
	path      string
}

// parseFlags reads flags on top of the config defaults. Zero means "use config".
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("pagesum", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.config, "config", "", "path to pagesum.toml")
	fs.IntVar(&o.start, "start", 0, "first page (1-based)")
	fs.IntVar(&o.end, "end", 0, "last page (inclusive)")
	fs.IntVar(&o.sentences, "sentences", 0, "summary length in sentences (1-20)")
	fs.IntVar(&o.keywords, "keywords", -1, "maximum number of key concepts")
	fs.StringVar(&o.output, "o", "", "write the summary to this file")
	fs.StringVar(&o.format, "format", "text", "output format: text, markdown or json")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		return o, errors.New("expected exactly one PDF path")
	}
	o.path = fs.Arg(0)
	switch o.format {
	case "text", "markdown", "json":
	default:
		return o, fmt.Errorf("unknown format %q", o.format)
	}
	return o, nil
}

// runOptions merges the flags over the configured defaults and checks the
// form constraints before the pipeline is called.
func (o options) runOptions(defaults pagesum.RunOptions) (pagesum.RunOptions, error) {
	ro := defaults
	if o.start != 0 {
		ro.Range.Start = o.start
	}
	if o.end != 0 {
		ro.Range.End = o.end
	}
	if o.sentences != 0 {
		ro.Sentences = o.sentences
	}
	if o.keywords >= 0 {
		ro.MaxKeywords = o.keywords
	}
	if ro.Range.Start < 1 || ro.Range.End < ro.Range.Start {
		return ro, &pagesum.ErrInvalidRange{Start: ro.Range.Start, End: ro.Range.End}
	}
	if ro.Sentences < config.MinSentences || ro.Sentences > config.MaxSentences {
		return ro, fmt.Errorf("sentences must be between %d and %d", config.MinSentences, config.MaxSentences)
	}
	return ro, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(o.config)
	if err != nil {
		return err
	}
	logger := cfg.Logger()

	a, err := app.New(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn("observer shutdown", "error", err)
		}
	}()

	ro, err := o.runOptions(a.Defaults)
	if err != nil {
		return errors.New(report.Message(err))
	}
	content, err := os.ReadFile(o.path)
	if err != nil {
		return err
	}

	res, err := a.Pipeline.Run(ctx, content, ro)
	if err != nil {
		return errors.New(report.Message(err))
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(res.Summary), 0o644); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return write(stdout, res, o.format)
}

func write(w io.Writer, res *pagesum.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "markdown":
		_, err := io.WriteString(w, report.Markdown(res))
		return err
	default:
		_, err := io.WriteString(w, report.Text(res))
		return err
	}
}
