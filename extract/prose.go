package extract

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseNER is the production recognizer, backed by prose's bundled
// NER and tokenizer models.
type ProseNER struct{}

func NewProseNER() *ProseNER { return &ProseNER{} }

func (p *ProseNER) Parse(text string) ([]string, []Span, error) {
	if text == "" {
		return nil, nil, nil
	}
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, nil, err
	}
	var tokens []string
	for _, t := range doc.Tokens() {
		tokens = append(tokens, t.Text)
	}
	// prose reports entities in document order without positions;
	// assign token offsets with a cursor so a repeated name maps each
	// sighting to its own occurrence.
	cursor := 0
	var ents []Span
	for _, e := range doc.Entities() {
		sp := Span{Text: e.Text, Label: e.Label}
		if at := locateSpan(tokens, strings.Fields(e.Text), cursor); at >= 0 {
			sp.Start = at
			sp.End = at + len(strings.Fields(e.Text))
			cursor = sp.End
		}
		ents = append(ents, sp)
	}
	return tokens, ents, nil
}

// ProsePOS tags single words, for callers that need a proper-noun
// check rather than entity spans.
type ProsePOS struct{}

func NewProsePOS() *ProsePOS { return &ProsePOS{} }

// Tag returns the Penn Treebank tag of word, or "" when tagging fails.
func (p *ProsePOS) Tag(word string) string {
	if word == "" {
		return ""
	}
	doc, err := prose.NewDocument(word,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return ""
	}
	toks := doc.Tokens()
	if len(toks) == 0 {
		return ""
	}
	return toks[0].Tag
}
