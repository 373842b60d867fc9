package pagesum

import "fmt"

// ErrInvalidRange reports a page range that cannot be served by the document.
// Total is zero when the range was rejected before the document was consulted.
type ErrInvalidRange struct {
	Start int
	End   int
	Total int
}

func (e *ErrInvalidRange) Error() string {
	if e.Total > 0 && e.Start > e.Total {
		return fmt.Sprintf("invalid page range %d-%d: document has %d pages", e.Start, e.End, e.Total)
	}
	return fmt.Sprintf("invalid page range %d-%d", e.Start, e.End)
}

// ErrDocument reports a document that could not be opened or parsed.
type ErrDocument struct {
	Op  string
	Err error
}

func (e *ErrDocument) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrDocument) Unwrap() error { return e.Err }
