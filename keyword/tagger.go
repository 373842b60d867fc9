package keyword

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// Token is a word with its Penn Treebank part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// Tagger splits text into part-of-speech tagged tokens.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// ProseTagger tags English text with prose's averaged perceptron model.
// Named-entity extraction is disabled.
type ProseTagger struct{}

// NewProseTagger creates a ProseTagger.
func NewProseTagger() *ProseTagger { return &ProseTagger{} }

// Tag implements Tagger.
func (*ProseTagger) Tag(text string) ([]Token, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	toks := doc.Tokens()
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token{Text: t.Text, Tag: t.Tag}
	}
	return repairVerbless(out), nil
}

// repairVerbless re-tags the finite verb of sentences the model tagged
// without any verb. The model reads a short sentence-final verb after a
// noun as another noun ("the cat ran" as DT NN NN), which would extend the
// noun phrase. The first common noun that directly follows a noun becomes
// VBD (VBZ when it was plural).
func repairVerbless(toks []Token) []Token {
	start := 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) && toks[i].Tag != "." {
			continue
		}
		repairSentence(toks[start:i])
		start = i + 1
	}
	return toks
}

func repairSentence(sent []Token) {
	for _, t := range sent {
		if isVerb(t.Tag) {
			return
		}
	}
	for i := 1; i < len(sent); i++ {
		if !isNoun(sent[i-1].Tag) {
			continue
		}
		switch sent[i].Tag {
		case "NN":
			sent[i].Tag = "VBD"
			return
		case "NNS":
			sent[i].Tag = "VBZ"
			return
		}
	}
}

func isVerb(tag string) bool {
	return strings.HasPrefix(tag, "VB") || tag == "MD"
}
