package pagesum

import "context"

// --- Stage contracts ---

// Document is an opened, parsed PDF. Page numbers are 1-based.
type Document interface {
	NumPage() int
	// PageText returns the extractable text of page n. Pages with no text
	// layer return "" and a nil error.
	PageText(n int) (string, error)
	Close() error
}

// Opener parses raw document bytes into a Document.
type Opener interface {
	Open(content []byte) (Document, error)
}

// TextExtractor pulls the text of a page range out of a Document.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc Document, r PageRange) (Extraction, error)
}

// Summarizer selects up to n sentences of text, in their original order,
// joined by line breaks. Empty text yields "".
type Summarizer interface {
	Summarize(ctx context.Context, text string, n int) (string, error)
}

// KeywordExtractor returns up to max phrases of text ranked by frequency.
type KeywordExtractor interface {
	Keywords(ctx context.Context, text string, max int) ([]string, error)
}

// --- Values ---

// PageRange is a 1-based inclusive page range.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Validate checks the range against a document of total pages. An End past
// the last page is allowed; extraction clips it.
func (r PageRange) Validate(total int) error {
	if r.Start < 1 || r.End < r.Start {
		return &ErrInvalidRange{Start: r.Start, End: r.End}
	}
	if r.Start > total {
		return &ErrInvalidRange{Start: r.Start, End: r.End, Total: total}
	}
	return nil
}

// Extraction is the output of a TextExtractor.
type Extraction struct {
	// Text is each extracted page followed by "\n", in page order.
	Text string `json:"text"`
	// Pages lists the page numbers that contributed text.
	Pages []int `json:"pages"`
	// Skipped lists in-range pages that yielded no text.
	Skipped []int `json:"skipped,omitempty"`
	Total   int   `json:"total_pages"`
}

// RunOptions controls a single pipeline run.
type RunOptions struct {
	Range       PageRange `json:"range"`
	Sentences   int       `json:"sentences"`
	MaxKeywords int       `json:"max_keywords"`
}

// DefaultRunOptions returns pages 1-2, five summary sentences and ten keywords.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Range:       PageRange{Start: 1, End: 2},
		Sentences:   5,
		MaxKeywords: 10,
	}
}

// Result is everything a run produces.
type Result struct {
	ID           string     `json:"id"`
	Extraction   Extraction `json:"extraction"`
	TextStats    Stats      `json:"text_stats"`
	Summary      string     `json:"summary"`
	SummaryStats Stats      `json:"summary_stats"`
	Keywords     []string   `json:"keywords"`
}
