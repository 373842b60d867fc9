// Package keyword ranks the noun phrases of a text by how often they occur.
//
// Phrases are taken verbatim from a noun-phrase chunker: no stop-word
// filtering, no stemming and no length limit. They are lower-cased, counted
// and ordered by descending count; equal counts keep first-seen order.
package keyword

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Phrase is a normalized noun phrase and its number of occurrences.
type Phrase struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// Extractor ranks noun phrases. It holds no per-call state; it is safe for
// concurrent use when its Tagger is.
type Extractor struct {
	tagger Tagger
	logger *slog.Logger
}

// New creates an Extractor around an initialized Tagger. Build the tagger
// once and share it between extractors.
func New(tagger Tagger, opts ...Option) *Extractor {
	e := &Extractor{tagger: tagger}
	for _, o := range opts {
		o(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Keywords returns up to max phrases of text, most frequent first.
// max <= 0 and empty text both yield an empty list.
func (e *Extractor) Keywords(ctx context.Context, text string, max int) ([]string, error) {
	if max <= 0 || strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	ranked, err := e.Phrases(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	out := make([]string, len(ranked))
	for i, p := range ranked {
		out[i] = p.Text
	}
	return out, nil
}

// Phrases returns every distinct phrase of text with its count, ranked.
func (e *Extractor) Phrases(ctx context.Context, text string) ([]Phrase, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	toks, err := e.tagger.Tag(text)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}
	chunks := NounChunks(toks)
	ranked := Rank(chunks)
	e.logger.DebugContext(ctx, "ranked phrases",
		"tokens", len(toks), "chunks", len(chunks), "distinct", len(ranked))
	return ranked, nil
}

// Rank lower-cases and trims phrases, counts them and sorts by descending
// count. Ties keep the order in which phrases were first seen. Phrases that
// are empty after trimming are dropped.
func Rank(phrases []string) []Phrase {
	lower := cases.Lower(language.English)
	index := make(map[string]int)
	var table []Phrase
	for _, p := range phrases {
		key := strings.TrimSpace(lower.String(p))
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			table[i].Count++
			continue
		}
		index[key] = len(table)
		table = append(table, Phrase{Text: key, Count: 1})
	}
	sort.SliceStable(table, func(a, b int) bool { return table[a].Count > table[b].Count })
	return table
}
