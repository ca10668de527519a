package names

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed nicknames.csv
var nicknameData string

// Nicknames maps informal given names to their canonical forms and back.
// The zero value is unusable; construct with NewNicknames.
type Nicknames struct {
	nicknamesOf  map[string][]string // canonical -> nicknames
	canonicalsOf map[string][]string // nickname -> canonicals
}

var (
	defaultNicknames     *Nicknames
	defaultNicknamesOnce sync.Once
)

// DefaultNicknames returns the resolver backed by the embedded table.
func DefaultNicknames() *Nicknames {
	defaultNicknamesOnce.Do(func() {
		defaultNicknames = NewNicknames(nicknameData)
	})
	return defaultNicknames
}

// NewNicknames parses a table where each line is
// "canonical,nick1,nick2,...". Blank lines and malformed rows are skipped.
func NewNicknames(data string) *Nicknames {
	n := &Nicknames{
		nicknamesOf:  make(map[string][]string),
		canonicalsOf: make(map[string][]string),
	}
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		canonical := FoldLower(strings.TrimSpace(fields[0]))
		if canonical == "" {
			continue
		}
		for _, f := range fields[1:] {
			nick := FoldLower(strings.TrimSpace(f))
			if nick == "" {
				continue
			}
			n.nicknamesOf[canonical] = appendUnique(n.nicknamesOf[canonical], nick)
			n.canonicalsOf[nick] = appendUnique(n.canonicalsOf[nick], canonical)
		}
	}
	return n
}

// NicknamesOf returns the registered nicknames for a canonical given name.
func (n *Nicknames) NicknamesOf(first string) []string {
	return append([]string(nil), n.nicknamesOf[FoldLower(first)]...)
}

// CanonicalsOf returns the canonical forms a nickname may stand for.
func (n *Nicknames) CanonicalsOf(first string) []string {
	return append([]string(nil), n.canonicalsOf[FoldLower(first)]...)
}

// Variants returns the union of first, its nicknames and its canonical
// forms, restricted to names of length >= 3. Two-letter fragments produce
// too many spurious matches to be useful as a fallback signal.
func (n *Nicknames) Variants(first string) map[string]struct{} {
	first = FoldLower(first)
	set := make(map[string]struct{})
	add := func(v string) {
		if len(v) >= 3 {
			set[v] = struct{}{}
		}
	}
	add(first)
	for _, v := range n.nicknamesOf[first] {
		add(v)
	}
	for _, v := range n.canonicalsOf[first] {
		add(v)
	}
	return set
}

func appendUnique(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}
