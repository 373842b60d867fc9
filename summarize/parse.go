package summarize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/neurosnap/sentences"
)

// wordPattern accepts tokens that start with a letter and continue with
// letters, apostrophes or hyphens. Numbers and punctuation are not terms.
var wordPattern = regexp.MustCompile(`^[\p{L}\p{M}][\p{L}\p{M}'-]*$`)

// splitSentences turns plain text into candidate sentences.
//
// Lines are trimmed and blank lines end a paragraph. Lines of a paragraph are
// joined with spaces before sentence segmentation, so sentences wrapped over
// several lines (as PDF text usually is) stay whole. An all-caps line is a
// heading: it ends the current paragraph and is not a candidate.
func splitSentences(tok *sentences.DefaultSentenceTokenizer, text string) []string {
	var out []string
	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		for _, s := range tok.Tokenize(strings.Join(para, " ")) {
			if t := strings.TrimSpace(s.Text); t != "" {
				out = append(out, t)
			}
		}
		para = para[:0]
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case isHeading(line):
			flush()
		default:
			para = append(para, line)
		}
	}
	flush()
	return out
}

// isHeading reports whether line has cased letters and all of them are upper-case.
func isHeading(line string) bool {
	cased := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// words returns the lower-cased terms of a sentence.
func words(sentence string) ([]string, error) {
	doc, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, tok := range doc.Tokens() {
		if wordPattern.MatchString(tok.Text) {
			out = append(out, strings.ToLower(tok.Text))
		}
	}
	return out, nil
}
