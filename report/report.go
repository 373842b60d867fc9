// Package report renders pipeline results for people: Markdown for the
// terminal and HTML (via goldmark) for the browser.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nevindra/pagesum"
	"github.com/yuin/goldmark"
)

// InvalidRangeMessage is shown when the start page is past the end of the document.
const InvalidRangeMessage = "Invalid page range."

// SummaryFilename is the suggested name for a downloaded summary.
const SummaryFilename = "summary.txt"

var md = goldmark.New()

// Message returns the text to show a user for a failed run.
func Message(err error) string {
	var rangeErr *pagesum.ErrInvalidRange
	if errors.As(err, &rangeErr) {
		return InvalidRangeMessage
	}
	var docErr *pagesum.ErrDocument
	if errors.As(err, &docErr) {
		return "Could not read the PDF file."
	}
	return "Processing failed: " + err.Error()
}

// StatsLine formats word count and reading time, e.g. "Word Count: 8 | Reading Time: 0.04 min".
func StatsLine(label string, s pagesum.Stats) string {
	return fmt.Sprintf("**%sWord Count:** %d | **Reading Time:** %s min",
		label, s.Words, strconv.FormatFloat(s.ReadingMinutes, 'f', -1, 64))
}

// Keywords joins keywords with ", ".
func Keywords(kw []string) string {
	return strings.Join(kw, ", ")
}

// Markdown renders a result as a Markdown document.
func Markdown(res *pagesum.Result) string {
	var b strings.Builder
	b.WriteString("## Extracted Text\n\n")
	b.WriteString(StatsLine("", res.TextStats))
	b.WriteString("\n\n")
	if len(res.Extraction.Skipped) > 0 {
		fmt.Fprintf(&b, "_Pages without text: %s_\n\n", joinInts(res.Extraction.Skipped))
	}
	writeFenced(&b, res.Extraction.Text)

	b.WriteString("\n## Summary\n\n")
	b.WriteString(StatsLine("Summary ", res.SummaryStats))
	b.WriteString("\n\n")
	writeFenced(&b, res.Summary)

	b.WriteString("\n## Key Concepts\n\n")
	if len(res.Keywords) == 0 {
		b.WriteString("_none_\n")
	} else {
		b.WriteString(escape(Keywords(res.Keywords)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Text renders a result as plain text for terminals.
func Text(res *pagesum.Result) string {
	var b strings.Builder
	writeSection := func(title string, s pagesum.Stats, body string) {
		fmt.Fprintf(&b, "%s\nWord Count: %d | Reading Time: %s min\n\n", title,
			s.Words, strconv.FormatFloat(s.ReadingMinutes, 'f', -1, 64))
		b.WriteString(strings.TrimRight(body, "\n"))
		b.WriteString("\n\n")
	}
	writeSection("EXTRACTED TEXT", res.TextStats, res.Extraction.Text)
	writeSection("SUMMARY", res.SummaryStats, res.Summary)
	b.WriteString("KEY CONCEPTS\n")
	b.WriteString(Keywords(res.Keywords))
	b.WriteByte('\n')
	return b.String()
}

// HTML renders a result as an HTML fragment. Raw HTML in the document text
// is never passed through.
func HTML(res *pagesum.Result) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(res)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// writeFenced writes text as a fenced code block whose fence is longer than
// any backtick run inside text.
func writeFenced(b *strings.Builder, text string) {
	fence := strings.Repeat("`", max(3, longestRun(text, '`')+1))
	b.WriteString(fence)
	b.WriteString("text\n")
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(fence)
	b.WriteByte('\n')
}

func longestRun(s string, c byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}

// escape backslash-escapes Markdown punctuation.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune("\\`*_{}[]()#+-.!<>|~", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
