package keyword

import "strings"

// NounChunks returns the noun phrases of a tagged token stream in order of
// appearance, with their original casing.
//
// A chunk is a maximal run of an optional determiner followed by modifiers
// that ends in a noun; modifiers after the last noun are dropped. A personal
// pronoun on its own is also a chunk.
func NounChunks(tokens []Token) []string {
	var chunks []string
	var run []Token
	flush := func() {
		last := -1
		for i, t := range run {
			if isNoun(t.Tag) {
				last = i
			}
		}
		if last >= 0 {
			chunks = append(chunks, joinTokens(run[:last+1]))
		}
		run = run[:0]
	}

	for _, t := range tokens {
		switch {
		case t.Tag == "PRP":
			flush()
			chunks = append(chunks, t.Text)
		case isDeterminer(t.Tag):
			if !onlyPredeterminers(run) {
				flush()
			}
			run = append(run, t)
		case isNoun(t.Tag) || isAdjective(t.Tag) || t.Tag == "CD":
			run = append(run, t)
		case t.Tag == "VBN" || t.Tag == "VBG" || t.Tag == "POS" || t.Tag == "HYPH":
			// Participles, possessives and hyphens only continue a chunk.
			if len(run) > 0 {
				run = append(run, t)
			}
		default:
			flush()
		}
	}
	flush()
	return chunks
}

func isNoun(tag string) bool {
	switch tag {
	case "NN", "NNS", "NNP", "NNPS":
		return true
	}
	return false
}

func isAdjective(tag string) bool {
	switch tag {
	case "JJ", "JJR", "JJS":
		return true
	}
	return false
}

func isDeterminer(tag string) bool {
	switch tag {
	case "DT", "PDT", "PRP$", "WP$":
		return true
	}
	return false
}

// onlyPredeterminers reports whether run is non-empty and holds nothing but
// predeterminers, as in "all the".
func onlyPredeterminers(run []Token) bool {
	if len(run) == 0 {
		return false
	}
	for _, t := range run {
		if t.Tag != "PDT" {
			return false
		}
	}
	return true
}

// joinTokens re-spaces tokens; clitics and possessives attach to the
// preceding word, hyphens to both neighbours.
func joinTokens(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 && !attaches(t) && toks[i-1].Tag != "HYPH" {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

func attaches(t Token) bool {
	return t.Tag == "POS" || t.Tag == "HYPH" || strings.HasPrefix(t.Text, "'") || strings.HasPrefix(t.Text, "’")
}
