package names

import (
	"regexp"
	"strings"
)

var (
	initialsRe      = regexp.MustCompile(`^([A-Z]\.)+$`)
	romanSuffixRe   = regexp.MustCompile(`^(([IXV]\.){1,4}|[IXV]{1,4})$`)
	numericSuffixRe = regexp.MustCompile(`^[0-9-]`)
)

const namePunct = " &%*-.!_+=,;:\"'"

// StripPunct trims the punctuation runes that NER output tends to leave
// attached to a name span.
func StripPunct(s string) string {
	return strings.TrimSpace(strings.Trim(s, namePunct))
}

// hasInitialsPrefix reports whether the first token is a run of initials
// ("J.R." etc), which the fuzzy matchers score poorly.
func hasInitialsPrefix(name string) bool {
	fields := strings.Fields(name)
	return len(fields) > 0 && initialsRe.MatchString(fields[0])
}

// hasRomanSuffix reports whether the last token is a roman-numeral suffix
// (I, II, III, IV ...).
func hasRomanSuffix(name string) bool {
	fields := strings.Fields(name)
	return len(fields) > 0 && romanSuffixRe.MatchString(fields[len(fields)-1])
}

// hasNumericSuffix reports whether the last token starts with a digit or a
// dash, e.g. the year range in "Sanders 1991-2002".
func hasNumericSuffix(name string) bool {
	fields := strings.Fields(name)
	return len(fields) > 0 && numericSuffixRe.MatchString(fields[len(fields)-1])
}

// Clean repairs common NER artifacts in an extracted person name: trailing
// numeric/date-range suffixes, leading all-initials tokens, and trailing
// roman numerals are stripped iteratively until no rule applies or the
// string runs out of tokens. It returns the cleaned name together with its
// token count and never fails on empty or fully consumed input.
func Clean(name string) (string, int) {
	length := len(strings.Fields(name))

	for hasNumericSuffix(name) {
		fields := strings.Fields(name)
		if len(fields) < 2 {
			break
		}
		name = strings.Join(fields[:len(fields)-1], " ")
		length = len(fields) - 1
	}

	for hasInitialsPrefix(name) {
		fields := strings.Fields(name)
		if len(fields) < 2 {
			break
		}
		name = strings.Join(fields[1:], " ")
		length = len(fields) - 1
	}

	for hasRomanSuffix(name) {
		fields := strings.Fields(name)
		if len(fields) < 2 {
			break
		}
		name = strings.Join(fields[:len(fields)-1], " ")
		length = len(fields) - 1
	}

	name = StripPunct(name)
	return name, length
}
