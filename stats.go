package pagesum

import (
	"math"
	"strings"
)

// WordsPerMinute is the reading speed assumed by ReadingMinutes.
const WordsPerMinute = 200

// Stats holds the word count and estimated reading time of a text.
type Stats struct {
	Words          int     `json:"words"`
	ReadingMinutes float64 `json:"reading_minutes"`
}

// NewStats counts the whitespace-separated words of text.
func NewStats(text string) Stats {
	n := WordCount(text)
	return Stats{Words: n, ReadingMinutes: ReadingMinutes(n)}
}

// WordCount returns the number of whitespace-separated fields in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingMinutes returns words / WordsPerMinute rounded to two decimals.
func ReadingMinutes(words int) float64 {
	return math.Round(float64(words)/WordsPerMinute*100) / 100
}
