package names

import "strings"

// SurnameSegments expands a possibly hyphenated surname into every
// contiguous join of its segments, so "ros-hilena morechai-johnson" matches
// mentions written with any subset of the hyphenation collapsed. The input
// itself (minus separators) is always included.
func SurnameSegments(s string) []string {
	s = strings.Trim(s, "- ")
	parts := splitKeepingOrder(s)
	seen := make(map[string]struct{})
	out := make([]string, 0, len(parts)*2)
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for i := range parts {
		add(parts[i])
		joined := parts[i]
		for j := i + 1; j < len(parts); j++ {
			joined += parts[j]
			add(joined)
		}
	}
	return out
}

func splitKeepingOrder(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ' '
	})
}
