// Package pdf opens PDF documents for the pagesum pipeline.
//
// It uses ledongthuc/pdf (BSD-3, pure Go, no CGO) for text extraction.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/nevindra/pagesum"
)

// Compile-time interface checks.
var _ pagesum.Document = (*Document)(nil)
var _ pagesum.Opener = Opener{}

// ErrEmpty is returned for zero-length content.
var ErrEmpty = errors.New("empty PDF content")

// Document is a parsed PDF. It is not safe for concurrent use.
type Document struct {
	r      *pdf.Reader
	closer io.Closer
}

// Open parses the PDF at path. The file stays open until Close.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, &pagesum.ErrDocument{Op: "open pdf", Err: err}
	}
	return &Document{r: r, closer: f}, nil
}

// NewDocument parses an in-memory PDF.
func NewDocument(content []byte) (*Document, error) {
	if len(content) == 0 {
		return nil, &pagesum.ErrDocument{Op: "open pdf", Err: ErrEmpty}
	}
	r, err := newReader(content)
	if err != nil {
		return nil, &pagesum.ErrDocument{Op: "open pdf", Err: err}
	}
	return &Document{r: r}, nil
}

// newReader guards against parser panics on truncated or hostile input.
func newReader(content []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	return pdf.NewReader(bytes.NewReader(content), int64(len(content)))
}

// NumPage returns the number of pages.
func (d *Document) NumPage() int { return d.r.NumPage() }

// PageText returns the plain text of page n (1-based) as the parser
// produces it. Pages without a text layer return "".
func (d *Document) PageText(n int) (text string, err error) {
	if n < 1 || n > d.r.NumPage() {
		return "", fmt.Errorf("page %d out of range 1-%d", n, d.r.NumPage())
	}
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("page %d: malformed content stream: %v", n, p)
		}
	}()
	page := d.r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", n, err)
	}
	return text, nil
}

// Close releases the underlying file, if any.
func (d *Document) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

// Opener implements pagesum.Opener for in-memory PDFs.
type Opener struct{}

// Open implements pagesum.Opener.
func (Opener) Open(content []byte) (pagesum.Document, error) {
	doc, err := NewDocument(content)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
