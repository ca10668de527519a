package roster

import (
	"context"
	"regexp"
	"strings"

	"github.com/lobbylinks/lobbylinks/names"
)

// Scorer scores the similarity of two person names in [0, 1]. The
// production scorer is a learned encoder; tests inject table fakes.
type Scorer interface {
	Similarity(a, b string) float64
}

// SetScorer installs the learned name scorer. Without one the learned
// stage scores zero and matching falls through to string metrics, so
// the pipeline degrades rather than fails when the model is absent.
func (r *Roster) SetScorer(s Scorer) { r.scorer = s }

const (
	// matchThreshold gates the exact and learned stages.
	matchThreshold = 0.7
	// stringMatchThreshold gates the string-metric and nickname
	// stages, which are more permissive scorers.
	stringMatchThreshold = 0.92
)

// MatchOptions narrow a BestMatch query.
type MatchOptions struct {
	Chamber Chamber
	// LastNameOnly restricts matching to exact surname equality;
	// fuzzy scoring of bare surnames produces junk.
	LastNameOnly bool
	// FilingYear, when nonzero, excludes legislators whose first
	// term started after the filing.
	FilingYear int
	// DisableStringMatches stops the cascade after the learned
	// stage.
	DisableStringMatches bool
}

// Result is a match outcome. Legislator is nil when no stage cleared
// its threshold; Score still reports the best score seen so callers
// can log near misses.
type Result struct {
	Legislator *Legislator
	Score      float64
}

var digitsRe = regexp.MustCompile(`[0-9]`)

// BestMatch resolves a mention against the roster. Stages run in
// order: exact, learned similarity, Jaro-Winkler, nickname overlap.
// The context is consulted between stages and inside the scoring
// loops, so a deadline bounds the whole cascade.
func (r *Roster) BestMatch(ctx context.Context, name string, opts MatchOptions) (Result, error) {
	v := r.chamberView(opts.Chamber)
	if len(v.legs) == 0 {
		return Result{}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if opts.LastNameOnly {
		scores := exactScores(names.FoldLower(name), v.lastKeys)
		maskByYear(scores, v, opts.FilingYear)
		best, idx := argmax(scores)
		if best > matchThreshold {
			return Result{Legislator: v.legs[idx], Score: best}, nil
		}
		return Result{Score: best}, nil
	}

	// learned-similarity stage, with exact equality short-circuit
	scores, err := r.scoreLists(ctx, name, v, r.learnedSimilarity)
	if err != nil {
		return Result{}, err
	}
	maskByYear(scores, v, opts.FilingYear)
	best, idx := argmax(scores)
	if best > matchThreshold {
		return Result{Legislator: v.legs[idx], Score: best}, nil
	}
	if opts.DisableStringMatches {
		return Result{Score: best}, nil
	}

	// string-metric stage
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	scores, err = r.scoreLists(ctx, name, v, r.stringSimilarity)
	if err != nil {
		return Result{}, err
	}
	maskByYear(scores, v, opts.FilingYear)
	best, idx = argmax(scores)
	if best > stringMatchThreshold {
		if countAbove(scores, stringMatchThreshold) > 1 {
			r.logger.Printf("roster: %q matched multiple legislators above %.2f, keeping %q",
				name, stringMatchThreshold, v.legs[idx].FullName)
		}
		return Result{Legislator: v.legs[idx], Score: best}, nil
	}

	// nickname stage
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	nickScores := r.nicknameScores(name, v)
	maskByYear(nickScores, v, opts.FilingYear)
	nickBest, nickIdx := argmax(nickScores)
	if nickBest > stringMatchThreshold {
		return Result{Legislator: v.legs[nickIdx], Score: nickBest}, nil
	}
	return Result{Score: best}, nil
}

// scoreLists scores name against the chamber's display, official and
// wikipedia name lists and returns the elementwise maximum.
func (r *Roster) scoreLists(ctx context.Context, name string, v *view, sim func(a, b string) float64) ([]float64, error) {
	out := make([]float64, len(v.legs))
	for _, list := range [][]string{v.names, v.fullNames, v.wikiNames} {
		scores, err := scoreNames(ctx, name, list, sim)
		if err != nil {
			return nil, err
		}
		for i, s := range scores {
			if s > out[i] {
				out[i] = s
			}
		}
	}
	return out, nil
}

// scoreNames tries exact equality first. Exact hits are spread
// uniformly, so several legislators sharing one exact name all land
// below threshold instead of one being picked arbitrarily. Only when
// nothing matches exactly does the similarity function run, on the
// digit-stripped mention. The deadline is re-checked every few
// candidates: similarity calls can be slow under a cold model.
func scoreNames(ctx context.Context, name string, targets []string, sim func(a, b string) float64) ([]float64, error) {
	scores := exactScores(names.FoldLower(name), targets)
	for _, s := range scores {
		if s > 0 {
			return scores, nil
		}
	}
	if sim == nil {
		return scores, nil
	}
	clean := digitsRe.ReplaceAllString(name, "")
	for i, t := range targets {
		if i%16 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if t == "" {
			continue
		}
		scores[i] = sim(clean, t)
	}
	return scores, nil
}

// exactScores compares folded forms, so case and diacritics never
// break an exact hit. name must arrive already folded.
func exactScores(name string, targets []string) []float64 {
	scores := make([]float64, len(targets))
	n := 0
	for i, t := range targets {
		if t != "" && names.FoldLower(t) == name {
			scores[i] = 1
			n++
		}
	}
	if n > 1 {
		for i := range scores {
			scores[i] /= float64(n)
		}
	}
	return scores
}

func (r *Roster) learnedSimilarity(a, b string) float64 {
	if r.scorer == nil {
		return 0
	}
	return r.scorer.Similarity(a, b)
}

func maskByYear(scores []float64, v *view, filingYear int) {
	if filingYear == 0 {
		return
	}
	for i := range scores {
		if !v.yearValid(i, filingYear) {
			scores[i] = 0
		}
	}
}

// argmax returns the best score and the first index achieving it, so
// ties resolve to the lowest roster index deterministically.
func argmax(scores []float64) (float64, int) {
	best, idx := 0.0, 0
	for i, s := range scores {
		if s > best {
			best, idx = s, i
		}
	}
	return best, idx
}

func countAbove(scores []float64, threshold float64) int {
	n := 0
	for _, s := range scores {
		if s > threshold {
			n++
		}
	}
	return n
}

// nicknameScores marks legislators whose surname (or any contiguous
// join of its hyphen segments) equals the mention's surname and whose
// given name shares a nickname variant, or matches on first initial.
// Hits are normalized to shares so only an unambiguous hit can clear
// the threshold.
func (r *Roster) nicknameScores(name string, v *view) []float64 {
	scores := make([]float64, len(v.legs))
	first, initial, last := parseQueryName(name)
	if last == "" || (first == "" && initial == 0) {
		return scores
	}
	lastKey := names.FoldLower(last)
	nn := names.DefaultNicknames()

	var querySet map[string]struct{}
	if first != "" {
		querySet = nn.Variants(names.FoldLower(first))
	}

	total := 0
	for i, l := range v.legs {
		legFirst := names.FoldLower(l.Name.First)
		if legFirst == "" || v.lastKeys[i] == "" {
			continue
		}
		matched := false
		for _, seg := range names.SurnameSegments(v.lastKeys[i]) {
			if seg != lastKey {
				continue
			}
			if querySet != nil && intersects(nn.Variants(legFirst), querySet) {
				matched = true
				break
			}
			if initial != 0 && rune(legFirst[0]) == initial {
				matched = true
				break
			}
		}
		if matched {
			scores[i] = 1
			total++
		}
	}
	if total > 0 {
		for i := range scores {
			scores[i] /= float64(total)
		}
	}
	return scores
}

func intersects(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

var initialTokenRe = regexp.MustCompile(`^[A-Za-z]\.?$`)

// parseQueryName splits a mention into given name (or initial) and
// surname: last token is the surname, first token the given name
// unless it is a bare initial. Single-token mentions have no given
// name and cannot nickname-match.
func parseQueryName(name string) (first string, initial rune, last string) {
	toks := strings.Fields(strings.Trim(name, " .,"))
	if len(toks) < 2 {
		return "", 0, ""
	}
	last = toks[len(toks)-1]
	head := toks[0]
	if initialTokenRe.MatchString(head) {
		low := names.FoldLower(head)
		initial = rune(low[0])
		return "", initial, last
	}
	return head, 0, last
}
