package pagesum

import (
	"context"
	"log/slog"
	"strings"
)

// Compile-time interface check.
var _ TextExtractor = (*PageExtractor)(nil)

// PageExtractor is the default TextExtractor. Pages without text, and pages
// whose extraction fails, are skipped. Page text is used as the document
// returns it; whitespace is not cleaned up.
type PageExtractor struct {
	logger *slog.Logger
}

// NewPageExtractor creates a PageExtractor. A nil logger discards output.
func NewPageExtractor(logger *slog.Logger) *PageExtractor {
	if logger == nil {
		logger = nopLogger
	}
	return &PageExtractor{logger: logger}
}

// ExtractText implements TextExtractor.
func (e *PageExtractor) ExtractText(ctx context.Context, doc Document, r PageRange) (Extraction, error) {
	total := doc.NumPage()
	if err := r.Validate(total); err != nil {
		return Extraction{Total: total}, err
	}

	last := min(r.End, total)
	out := Extraction{Total: total}
	var text strings.Builder
	for n := r.Start; n <= last; n++ {
		pageText, err := doc.PageText(n)
		if err != nil {
			e.logger.WarnContext(ctx, "page extraction failed, skipping", "page", n, "error", err)
			out.Skipped = append(out.Skipped, n)
			continue
		}
		if pageText == "" {
			e.logger.DebugContext(ctx, "page has no text, skipping", "page", n)
			out.Skipped = append(out.Skipped, n)
			continue
		}
		text.WriteString(pageText)
		text.WriteByte('\n')
		out.Pages = append(out.Pages, n)
	}
	out.Text = text.String()
	return out, nil
}

// ExtractText runs the default PageExtractor without logging.
func ExtractText(doc Document, r PageRange) (Extraction, error) {
	return NewPageExtractor(nil).ExtractText(context.Background(), doc, r)
}
