package summarize

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func newTestSummarizer(t *testing.T, opts ...Option) *Summarizer {
	t.Helper()
	s, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSummarizeEmpty(t *testing.T) {
	s := newTestSummarizer(t)
	for _, in := range []string{"", "   ", "\n\n\t\n"} {
		for _, n := range []int{1, 5, 20} {
			got, err := s.Summarize(context.Background(), in, n)
			if err != nil {
				t.Fatalf("Summarize(%q, %d): %v", in, n, err)
			}
			if got != "" {
				t.Errorf("Summarize(%q, %d) = %q, want empty", in, n, got)
			}
		}
	}
}

func TestSummarizeRejectsZeroCount(t *testing.T) {
	s := newTestSummarizer(t)
	if _, err := s.Summarize(context.Background(), "One sentence here.", 0); err == nil {
		t.Error("expected error for n = 0")
	}
}

func TestSummarizeFewerSentencesThanRequested(t *testing.T) {
	s := newTestSummarizer(t)
	text := "The cat sat on the mat. Dogs chase cats in the park. Birds sing every morning."
	got, err := s.Summarize(context.Background(), text, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := "The cat sat on the mat.\nDogs chase cats in the park.\nBirds sing every morning."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSummarizeBoundsAndOrder(t *testing.T) {
	s := newTestSummarizer(t)
	sents := []string{
		"Solar panels convert sunlight into electricity.",
		"Wind turbines convert moving air into electricity.",
		"My neighbour owns a very old bicycle.",
		"Electricity from sunlight and wind is renewable energy.",
		"Renewable energy reduces carbon emissions from electricity.",
	}
	text := strings.Join(sents, " ")
	for n := 1; n <= 4; n++ {
		got, err := s.Summarize(context.Background(), text, n)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(got, "\n")
		if len(lines) != n {
			t.Fatalf("n=%d: got %d sentences: %q", n, len(lines), got)
		}
		last := -1
		for _, l := range lines {
			idx := indexOf(sents, l)
			if idx < 0 {
				t.Fatalf("n=%d: %q is not a source sentence", n, l)
			}
			if idx <= last {
				t.Errorf("n=%d: sentences out of document order: %q", n, got)
			}
			last = idx
		}
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	s := newTestSummarizer(t)
	text := "Go is a programming language. It was designed at Google. " +
		"Go has garbage collection. Many tools are written in Go. Gophers like channels."
	first, err := s.Summarize(context.Background(), text, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := s.Summarize(context.Background(), text, 2)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("run %d: %q != %q", i, again, first)
		}
	}
}

func TestSummarizeWrappedLinesAndHeadings(t *testing.T) {
	s := newTestSummarizer(t)
	text := "INTRODUCTION\nThis sentence is\nwrapped over two lines.\n\nA second paragraph follows."
	got, err := s.Summarize(context.Background(), text, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := "This sentence is wrapped over two lines.\nA second paragraph follows."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSummarizeNoSentenceBoundary(t *testing.T) {
	s := newTestSummarizer(t)
	got, err := s.Summarize(context.Background(), "just some words without an ending", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "just some words without an ending" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeNoTerms(t *testing.T) {
	s := newTestSummarizer(t)
	got, err := s.Summarize(context.Background(), "12345 678. 90.", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestSummarizeWithStemmingAndStopWords(t *testing.T) {
	s := newTestSummarizer(t, WithStemming(true), WithStopWords("the", "A"))
	text := "The runners were running quickly. A runner runs daily. The weather was cold."
	got, err := s.Summarize(context.Background(), text, 2)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(got, "\n")); n != 2 {
		t.Errorf("got %d sentences: %q", n, got)
	}
}

func TestNormalize(t *testing.T) {
	s := newTestSummarizer(t, WithStemming(true), WithStopWords("The"))
	got := s.normalize([]string{"the", "running", "cats"})
	want := []string{"run", "cat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalize = %v, want %v", got, want)
	}
}

func TestBestKeepsDocumentOrderOnTies(t *testing.T) {
	tests := []struct {
		ranks []float64
		n     int
		want  []int
	}{
		{[]float64{0.1, 0.9, 0.5}, 2, []int{1, 2}},
		{[]float64{0.5, 0.5, 0.5, 0.5}, 2, []int{0, 1}},
		{[]float64{0.2, 0.7, 0.7, 0.1}, 1, []int{1}},
		{[]float64{0.3}, 4, []int{0}},
	}
	for _, tt := range tests {
		if got := best(tt.ranks, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("best(%v, %d) = %v, want %v", tt.ranks, tt.n, got, tt.want)
		}
	}
}

func TestTermMatrixSmoothing(t *testing.T) {
	terms := [][]string{{"a", "a", "b"}, {}, {"b"}}
	dict := dictionary(terms)
	m := termMatrix(dict, terms)
	check := func(row, col int, want float64) {
		t.Helper()
		if got := m.At(row, col); got != want {
			t.Errorf("m[%d][%d] = %v, want %v", row, col, got, want)
		}
	}
	check(dict["a"], 0, 1.0)
	check(dict["b"], 0, 0.7)
	check(dict["a"], 1, 0)
	check(dict["b"], 1, 0)
	check(dict["a"], 2, 0.4)
	check(dict["b"], 2, 1.0)
}

func TestIsHeading(t *testing.T) {
	tests := map[string]bool{
		"INTRODUCTION":       true,
		"CHAPTER 1.":         true,
		"Introduction":       false,
		"1234":               false,
		"ABSTRACT and intro": false,
	}
	for in, want := range tests {
		if got := isHeading(in); got != want {
			t.Errorf("isHeading(%q) = %v, want %v", in, got, want)
		}
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
