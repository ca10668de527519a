package orgnames

import (
	_ "embed"
	"strings"
)

//go:embed placenames.txt
var placenamesData string

//go:embed products.txt
var productsData string

func loadLines(data string) []string {
	var out []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func loadSet(data string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, line := range loadLines(data) {
		set[line] = struct{}{}
	}
	return set
}

var placenames = loadSet(placenamesData)

func isPlacename(s string) bool {
	_, ok := placenames[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}
