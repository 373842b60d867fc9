package summarize

import (
	"log/slog"
	"strings"
)

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithStemming reduces words to their Snowball (English) stem before
// building the term matrix. Off by default.
func WithStemming(on bool) Option {
	return func(s *Summarizer) { s.stem = on }
}

// WithStopWords excludes the given words (case-insensitive) from the term matrix.
func WithStopWords(words ...string) Option {
	return func(s *Summarizer) {
		if s.stopWords == nil {
			s.stopWords = make(map[string]struct{}, len(words))
		}
		for _, w := range words {
			s.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Summarizer) { s.logger = l }
}
