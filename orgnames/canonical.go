package orgnames

import (
	"io"
	"log"
	"strings"

	"github.com/lobbylinks/lobbylinks/names"
	"github.com/lobbylinks/lobbylinks/wordstats"
)

// Tagger reports the part-of-speech tag for a single word, "NNP" for a
// proper noun. Implementations may return "" when the word is unknown.
type Tagger interface {
	Tag(word string) string
}

// Reducer canonicalizes registrant and client organization names. The
// same reducer must be used across a whole dataset so that spot checks
// and the pattern grammar collapse variant filings onto one name.
type Reducer struct {
	tagger Tagger
	logger *log.Logger
}

func NewReducer(tagger Tagger, logger *log.Logger) *Reducer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Reducer{tagger: tagger, logger: logger}
}

// maxCandidates bounds the pattern closure on adversarial inputs.
const maxCandidates = 64

// commonZipf is the frequency above which a lone dictionary word is
// too generic to stand alone as an organization name.
const (
	commonZipf = 3.8
	rareZipf   = 1.0
)

// Reduce maps a raw organization string to its canonical short form.
// It is idempotent: reducing a reduced name returns it unchanged.
func (r *Reducer) Reduce(raw string) string {
	pre := expandAbbrevs(Preprocess(raw))
	if pre == "" {
		return ""
	}

	var valid []string
	if spots := spotCanonicals(pre); len(spots) > 0 {
		valid = spots
	} else {
		cands := newCandidateSet()
		cands.add(pre)
		expand(topLevelPatterns, cands)
		expand(suffixPatterns, cands)
		expand(productSuffixPatterns, cands)
		// Product suffixes can expose new corporate suffixes
		// (X MOTORS HOLDING -> X MOTORS -> X), so run the
		// corporate grammar once more over the enlarged set.
		expand(suffixPatterns, cands)

		for _, c := range cands.order {
			if r.validCandidate(c) {
				valid = append(valid, c)
			}
		}
	}
	if len(valid) == 0 {
		valid = []string{pre}
	}

	valid = dropIfOthers(valid, isCountryToken)
	valid = dropIfOthers(valid, func(s string) bool { return len(s) < 4 })
	valid = dropAlways(valid, danglingFragment)

	best := ""
	for _, v := range valid {
		v = names.StripPunct(v)
		if v == "" {
			continue
		}
		if best == "" || len(v) < len(best) {
			best = v
		}
	}
	if best == "" {
		return pre
	}
	return best
}

// ReduceAll reduces every distinct raw name once and returns the raw
// to canonical mapping, the provenance record for a dataset pass.
func (r *Reducer) ReduceAll(raws []string) map[string]string {
	out := make(map[string]string, len(raws))
	for _, raw := range raws {
		if _, done := out[raw]; done {
			continue
		}
		out[raw] = r.Reduce(raw)
	}
	return out
}

// validCandidate keeps multi-word candidates, and single words only
// when they look like a proper name rather than vocabulary: either a
// proper noun rarer than common speech, or a word rare enough to be a
// coinage regardless of tag.
func (r *Reducer) validCandidate(c string) bool {
	if strings.ContainsRune(c, ' ') {
		return true
	}
	z := wordstats.Zipf(c)
	if z < rareZipf {
		return true
	}
	if z < commonZipf && r.tagger != nil && r.tagger.Tag(c) == "NNP" {
		return true
	}
	return false
}

// dropIfOthers removes candidates matching pred, but never empties the
// list: a bad candidate beats no candidate.
func dropIfOthers(cands []string, pred func(string) bool) []string {
	kept := make([]string, 0, len(cands))
	for _, c := range cands {
		if !pred(c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return cands
	}
	return kept
}

func dropAlways(cands []string, pred func(string) bool) []string {
	kept := make([]string, 0, len(cands))
	for _, c := range cands {
		if !pred(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

func isCountryToken(s string) bool {
	switch strings.ToUpper(strings.Trim(s, " .")) {
	case "US", "USA", "U.S", "U.S.A", "UNITED STATES", "AMERICA":
		return true
	}
	return false
}

// danglingFragment rejects candidates the grammar cut mid-phrase.
func danglingFragment(s string) bool {
	up := strings.ToUpper(strings.TrimSpace(s))
	if strings.HasSuffix(up, " OF") || strings.HasSuffix(up, " FOR") {
		return true
	}
	if up == "OF" || up == "FOR" {
		return true
	}
	for _, alias := range []string{"FORMERLY ", "PREVIOUSLY ", "FKA ", "F.K.A"} {
		if strings.HasPrefix(up, alias) {
			return true
		}
	}
	return oboLeadRe.MatchString(up)
}

// candidateSet keeps insertion order so that reduction is fully
// deterministic when several candidates share the minimal length.
type candidateSet struct {
	order []string
	seen  map[string]struct{}
}

func newCandidateSet() *candidateSet {
	return &candidateSet{seen: map[string]struct{}{}}
}

func (cs *candidateSet) add(s string) bool {
	if s == "" {
		return false
	}
	if _, dup := cs.seen[s]; dup {
		return false
	}
	if len(cs.order) >= maxCandidates {
		return false
	}
	cs.seen[s] = struct{}{}
	cs.order = append(cs.order, s)
	return true
}

// expand applies every pattern to every candidate, including ones
// added during the walk, until the set stops growing. Placenames are
// rejected at extraction: a city or state is a location qualifier, not
// an organization.
func expand(pats []pattern, cs *candidateSet) {
	for i := 0; i < len(cs.order); i++ {
		for _, p := range pats {
			got := p.apply(cs.order[i])
			if got == "" || isPlacename(got) {
				continue
			}
			cs.add(got)
		}
	}
}

var preprocessReplacer = strings.NewReplacer(
	"“", "\"", "”", "\"",
	"‘", "'", "’", "'",
	"–", "-", "—", "-",
	"\t", " ", "\n", " ", "\r", " ",
)

// Preprocess uppercases, folds diacritics and normalizes punctuation
// so the grammar only ever sees plain ASCII-ish uppercase text.
func Preprocess(raw string) string {
	s := names.Fold(raw)
	s = preprocessReplacer.Replace(s)
	s = strings.ToUpper(collapseSpaces(s))
	s = strings.Trim(s, `"' `)
	return collapseSpaces(s)
}
