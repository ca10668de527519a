// Package extract pulls candidate legislator mentions out of free-text
// covered-position descriptions, using named-entity recognition plus a
// congressional title vocabulary to decide which chamber a mention
// refers to.
package extract

import (
	"io"
	"log"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Chamber is the congressional chamber hinted by the title preceding a
// mention. Unknown means a person was recognized without a usable
// title and both chambers must be searched.
type Chamber string

const (
	House   Chamber = "Rep"
	Senate  Chamber = "Sen"
	Unknown Chamber = "Leg"
)

// Mention is one candidate legislator name found in a text. Words is
// the token count of the name: a single word is treated downstream as
// a bare surname.
type Mention struct {
	Name    string
	Chamber Chamber
	Words   int
}

// Span is a labeled entity returned by a recognizer. Start and End are
// token indexes into the parse's token stream, End exclusive; a
// recognizer that cannot position its spans may leave both zero and
// mentions are located by an in-order scan instead.
type Span struct {
	Text  string
	Label string
	Start int
	End   int
}

// NER produces the token stream and named entities for a text. The
// token stream must cover the entity texts so mentions can be located
// relative to their preceding title word.
type NER interface {
	Parse(text string) (tokens []string, entities []Span, err error)
}

var (
	repWords = []string{
		"Representative", "Rep.", "Rep", "Reps", "Reps.",
		"Congressman", "Congresswoman", "Congressperson",
		"Cong", "Cong.",
	}
	senWords = []string{
		"Senator", "Senators", "Sen", "Sen.", "Sens", "Sens.",
	}
)

// Extractor turns covered-position text into mentions. It is safe for
// concurrent use when its NER is.
type Extractor struct {
	ner    NER
	logger *log.Logger

	repSet, senSet   map[string]struct{}
	repLong, senLong []string // lowercase, longest first, for prefix splits
}

func NewExtractor(ner NER, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	x := &Extractor{
		ner:    ner,
		logger: logger,
		repSet: map[string]struct{}{},
		senSet: map[string]struct{}{},
	}
	for _, w := range repWords {
		lw := strings.ToLower(w)
		x.repSet[lw] = struct{}{}
		x.repLong = append(x.repLong, lw)
	}
	for _, w := range senWords {
		lw := strings.ToLower(w)
		x.senSet[lw] = struct{}{}
		x.senLong = append(x.senLong, lw)
	}
	longestFirst(x.repLong)
	longestFirst(x.senLong)
	return x
}

func longestFirst(words []string) {
	sort.SliceStable(words, func(i, j int) bool {
		return len(words[i]) > len(words[j])
	})
}

// Filing text habitually glues punctuation and digits onto names
// ("(Sen.Smith)1999-2004"); padding them apart keeps the tokenizer
// from folding the junk into the entity.
var (
	punctAfterRe  = regexp.MustCompile(`(\S)([(),!?;:])`)
	punctBeforeRe = regexp.MustCompile(`([(),!?;:])(\S)`)
	letterDigitRe = regexp.MustCompile(`([A-Za-z])([0-9])`)
	digitLetterRe = regexp.MustCompile(`([0-9])([A-Za-z])`)
)

// Preprocess normalizes a covered-position string before recognition.
func Preprocess(text string) string {
	text = punctAfterRe.ReplaceAllString(text, "$1 $2")
	text = punctBeforeRe.ReplaceAllString(text, "$1 $2")
	text = letterDigitRe.ReplaceAllString(text, "$1 $2")
	text = digitLetterRe.ReplaceAllString(text, "$1 $2")
	return text
}

// Extract returns the legislator mentions in text, in first-seen
// order. A name seen twice keeps its position but takes the chamber of
// the later sighting.
func (x *Extractor) Extract(text string) ([]Mention, error) {
	sent := Preprocess(text)
	tokens, entities, err := x.ner.Parse(sent)
	if err != nil {
		return nil, err
	}

	out := newMentionList()
	cursor := 0
	for _, ent := range entities {
		if ent.Label != "PERSON" {
			continue
		}
		entToks := strings.Fields(ent.Text)
		if len(entToks) == 0 {
			continue
		}

		start := ent.Start
		if ent.End <= ent.Start || ent.End > len(tokens) {
			start = locateSpan(tokens, entToks, cursor)
		}
		title := ""
		if start > 0 && start <= len(tokens) {
			title = tokens[start-1]
		}
		if start >= 0 {
			cursor = start + len(entToks)
		}
		nameToks := entToks
		if x.isLegWord(entToks[0]) {
			// the recognizer chunked the title inside the entity
			title = entToks[0]
			nameToks = entToks[1:]
		}
		if name := strings.Join(nameToks, " "); name != "" {
			out.add(Mention{Name: name, Chamber: x.chamberFor(title), Words: len(nameToks)})
		}

		// Concatenated titles ("Sen.Smith" surviving preprocessing,
		// or "SenatorSmith") hide the name behind a known prefix.
		x.splitConcatTitle(out, ent.Text, entToks[0], x.repLong, House)
		x.splitConcatTitle(out, ent.Text, entToks[0], x.senLong, Senate)
	}
	return out.mentions(), nil
}

func (x *Extractor) isLegWord(tok string) bool {
	lt := strings.ToLower(tok)
	if _, ok := x.repSet[lt]; ok {
		return true
	}
	_, ok := x.senSet[lt]
	return ok
}

func (x *Extractor) chamberFor(title string) Chamber {
	lt := strings.ToLower(title)
	if _, ok := x.repSet[lt]; ok {
		return House
	}
	if _, ok := x.senSet[lt]; ok {
		return Senate
	}
	return Unknown
}

// splitConcatTitle handles entities whose first token begins with a
// title word run straight into the name. The split is only trusted
// when the boundary looks like a real word break: the title ended in
// punctuation or the remainder starts with punctuation or a capital.
func (x *Extractor) splitConcatTitle(out *mentionList, entText, firstTok string, titles []string, ch Chamber) {
	low := strings.ToLower(firstTok)
	for _, tw := range titles {
		if !strings.HasPrefix(low, tw) || len(firstTok) == len(tw) {
			continue
		}
		rest := strings.TrimSpace(entText[len(tw):])
		if rest == "" || out.has(rest) {
			return
		}
		if boundaryOK(tw, rest) {
			out.add(Mention{Name: rest, Chamber: ch, Words: len(strings.Fields(rest))})
		}
		return
	}
}

func boundaryOK(title, rest string) bool {
	last := title[len(title)-1]
	if last == '.' || last == ',' {
		return true
	}
	switch rest[0] {
	case ',', '.', ';':
		return true
	}
	r := []rune(rest)[0]
	return unicode.IsUpper(r)
}

// locateSpan finds the entity's token run at or after from, so a name
// repeated in one text resolves each sighting to its own position
// rather than the first occurrence's. Returns -1 when the run is not
// in the stream.
func locateSpan(tokens, entToks []string, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(entToks) <= len(tokens); i++ {
		match := true
		for j, et := range entToks {
			if tokens[i+j] != et {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// mentionList keeps first-seen order with last-write-wins chambers, so
// extraction output is deterministic run to run.
type mentionList struct {
	byName map[string]int
	items  []Mention
}

func newMentionList() *mentionList {
	return &mentionList{byName: map[string]int{}}
}

func (ml *mentionList) has(name string) bool {
	_, ok := ml.byName[name]
	return ok
}

func (ml *mentionList) add(m Mention) {
	if i, ok := ml.byName[m.Name]; ok {
		ml.items[i].Chamber = m.Chamber
		ml.items[i].Words = m.Words
		return
	}
	ml.byName[m.Name] = len(ml.items)
	ml.items = append(ml.items, m)
}

func (ml *mentionList) mentions() []Mention {
	return ml.items
}
