package roster

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/lobbylinks/lobbylinks/names"
)

// Metric selects the scorer for the string-distance stage.
type Metric int

const (
	JaroWinkler Metric = iota
	Levenshtein
)

// SetMetric overrides the default Jaro-Winkler string stage.
func (r *Roster) SetMetric(m Metric) { r.metric = m }

func (r *Roster) stringSimilarity(a, b string) float64 {
	switch r.metric {
	case Levenshtein:
		return levenshteinSimilarity(a, b)
	default:
		return jaroWinkler(a, b)
	}
}

func jaroWinkler(a, b string) float64 {
	return smetrics.JaroWinkler(names.FoldLower(a), names.FoldLower(b), 0.7, 4)
}

// levenshteinSimilarity normalizes edit distance to [0, 1].
func levenshteinSimilarity(a, b string) float64 {
	a, b = names.FoldLower(a), names.FoldLower(b)
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}
