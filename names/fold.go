package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics so that "Raúl Grijalva" compares equal to
// "Raul Grijalva". Falls back to the input when the transform fails.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// FoldLower folds diacritics and lowercases in one step. Match keys are
// always built through this so the two sides of a comparison agree.
func FoldLower(s string) string {
	return strings.ToLower(Fold(s))
}

// FoldLowerAll applies FoldLower to every element of a list.
func FoldLowerAll(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = FoldLower(s)
	}
	return out
}
