// Package summarize implements extractive summarization by latent semantic
// analysis.
//
// Text is split into sentences, a term-by-sentence matrix is built and
// factorized with a thin SVD, and every sentence is scored by the length of
// its projection onto the singular vectors weighted by their singular values.
// The best sentences are returned in document order.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/kljensen/snowball"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"gonum.org/v1/gonum/mat"
)

const (
	// minDimensions and reductionRatio decide how many singular values
	// take part in ranking. With a ratio of 1 every one does.
	minDimensions  = 3
	reductionRatio = 1.0

	// smoothing is the floor of the per-sentence normalized term frequency.
	smoothing = 0.4
)

// ErrFactorization is returned when the SVD does not converge.
var ErrFactorization = errors.New("summarize: svd factorization failed")

// Summarizer is an LSA extractive summarizer. It is safe for concurrent use.
type Summarizer struct {
	tokenizer *sentences.DefaultSentenceTokenizer
	stem      bool
	stopWords map[string]struct{}
	logger    *slog.Logger
}

// New creates a Summarizer with the English Punkt sentence model.
func New(opts ...Option) (*Summarizer, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence model: %w", err)
	}
	s := &Summarizer{tokenizer: tok}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s, nil
}

// Summarize returns up to n sentences of text joined by "\n", in the order
// they appear. Empty or whitespace-only text yields "".
func (s *Summarizer) Summarize(ctx context.Context, text string, n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("summarize: sentence count must be at least 1, got %d", n)
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	sents := splitSentences(s.tokenizer, text)
	if len(sents) == 0 {
		return "", nil
	}

	terms := make([][]string, len(sents))
	for i, sent := range sents {
		w, err := words(sent)
		if err != nil {
			return "", fmt.Errorf("summarize: tokenize sentence %d: %w", i, err)
		}
		terms[i] = s.normalize(w)
	}

	dict := dictionary(terms)
	if len(dict) == 0 {
		s.logger.DebugContext(ctx, "no terms in text", "sentences", len(sents))
		return "", nil
	}

	ranks, err := rank(termMatrix(dict, terms))
	if err != nil {
		return "", err
	}
	picked := best(ranks, n)

	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = sents[idx]
	}
	s.logger.DebugContext(ctx, "summarized",
		"sentences", len(sents), "terms", len(dict), "selected", len(out))
	return strings.Join(out, "\n"), nil
}

// normalize drops stop words and optionally stems.
func (s *Summarizer) normalize(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if _, stop := s.stopWords[w]; stop {
			continue
		}
		if s.stem {
			if st, err := snowball.Stem(w, "english", true); err == nil && st != "" {
				w = st
			}
		}
		out = append(out, w)
	}
	return out
}

// dictionary maps every distinct term to a row index, in first-seen order.
func dictionary(terms [][]string) map[string]int {
	dict := make(map[string]int)
	for _, ws := range terms {
		for _, w := range ws {
			if _, ok := dict[w]; !ok {
				dict[w] = len(dict)
			}
		}
	}
	return dict
}

// termMatrix builds the term-by-sentence matrix of smoothed term frequencies.
// Each column is normalized by its largest count; columns without terms stay zero.
func termMatrix(dict map[string]int, terms [][]string) *mat.Dense {
	m := mat.NewDense(len(dict), len(terms), nil)
	for col, ws := range terms {
		for _, w := range ws {
			row := dict[w]
			m.Set(row, col, m.At(row, col)+1)
		}
	}
	rows, cols := m.Dims()
	for col := 0; col < cols; col++ {
		peak := 0.0
		for row := 0; row < rows; row++ {
			peak = math.Max(peak, m.At(row, col))
		}
		if peak == 0 {
			continue
		}
		for row := 0; row < rows; row++ {
			m.Set(row, col, smoothing+(1-smoothing)*m.At(row, col)/peak)
		}
	}
	return m
}

// rank scores each sentence (column) as sqrt(sum_i sigma_i^2 * v_ji^2).
func rank(m *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, ErrFactorization
	}
	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	dims := max(minDimensions, int(float64(len(sigma))*reductionRatio))
	powered := make([]float64, len(sigma))
	for i, s := range sigma {
		if i < dims {
			powered[i] = s * s
		}
	}

	_, cols := m.Dims()
	ranks := make([]float64, cols)
	for j := range ranks {
		var sum float64
		for i, p := range powered {
			x := v.At(j, i)
			sum += p * x * x
		}
		ranks[j] = math.Sqrt(sum)
	}
	return ranks, nil
}

// best returns the indexes of the n highest ranks in ascending index order.
// Equal ranks keep document order.
func best(ranks []float64, n int) []int {
	order := make([]int, len(ranks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return ranks[order[a]] > ranks[order[b]] })
	if n < len(order) {
		order = order[:n]
	}
	sort.Ints(order)
	return order
}
