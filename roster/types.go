// Package roster loads the congressional legislator ontology and
// resolves free-text name mentions against it with a cascade of exact,
// learned and string-metric matchers.
package roster

import (
	"sort"
	"strings"

	"github.com/lobbylinks/lobbylinks/names"
)

// Chamber restricts a match to legislators who served in one chamber.
type Chamber int

const (
	Any Chamber = iota
	House
	Senate
)

func (c Chamber) String() string {
	switch c {
	case House:
		return "house"
	case Senate:
		return "senate"
	}
	return "any"
}

// Name holds the structured name fields from the legislator files.
type Name struct {
	First        string `json:"first"`
	Middle       string `json:"middle"`
	Last         string `json:"last"`
	OfficialFull string `json:"official_full"`
}

// Full joins first, middle and last in order, skipping empty fields.
func (n Name) Full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Middle, n.Last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Best prefers the official full name when the source provides one.
func (n Name) Best() string {
	if n.OfficialFull != "" {
		return n.OfficialFull
	}
	return n.Full()
}

// IDSet carries cross-referenced identifiers for one legislator. FEC
// and candidate IDs are lists: a politician accumulates one FEC ID per
// office sought.
type IDSet struct {
	Bioguide    string   `json:"bioguide,omitempty"`
	Thomas      string   `json:"thomas,omitempty"`
	GovTrack    int64    `json:"govtrack,omitempty"`
	ICPSR       int64    `json:"icpsr,omitempty"`
	OpenSecrets string   `json:"opensecrets,omitempty"`
	Wikipedia   string   `json:"wikipedia,omitempty"`
	FEC         []string `json:"fec,omitempty"`
	CandIDs     []string `json:"-"`
}

// addFEC appends an FEC ID, keeping the list sorted and unique.
func (ids *IDSet) addFEC(fecID string) {
	for _, have := range ids.FEC {
		if have == fecID {
			return
		}
	}
	ids.FEC = append(ids.FEC, fecID)
	sort.Strings(ids.FEC)
}

// Term is one stint in office. Start and End are ISO dates; Type is
// rep, sen, prez or viceprez.
type Term struct {
	Type  string `json:"type"`
	Start string `json:"start"`
	End   string `json:"end"`
	State string `json:"state,omitempty"`
	Party string `json:"party,omitempty"`
}

// Legislator is one roster entry with fields derived at load time.
type Legislator struct {
	Name  Name   `json:"name"`
	IDs   IDSet  `json:"id"`
	Terms []Term `json:"terms"`

	// derived at load time
	Index             int    `json:"-"`
	FullName          string `json:"-"`
	CurrentlyInOffice bool   `json:"-"`
	WasHouse          bool   `json:"-"`
	WasSenate         bool   `json:"-"`
	WasExec           bool   `json:"-"`
	FirstTermStart    string `json:"-"`
	FirstHouseStart   string `json:"-"`
	FirstSenateStart  string `json:"-"`
}

// Party returns the party of the most recent term.
func (l *Legislator) Party() string {
	if len(l.Terms) == 0 {
		return ""
	}
	return l.Terms[len(l.Terms)-1].Party
}

// Title is the honorific of the highest office held: Senate outranks
// House, executives get no congressional title.
func (l *Legislator) Title() string {
	if l.WasSenate {
		return "Sen. "
	}
	if l.WasHouse {
		return "Rep. "
	}
	return ""
}

// FirstTermYear is the year the legislator first took any office.
func (l *Legislator) FirstTermYear() int {
	return yearOf(l.FirstTermStart)
}

func yearOf(isoDate string) int {
	if len(isoDate) < 4 {
		return 0
	}
	y := 0
	for _, r := range isoDate[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		y = y*10 + int(r-'0')
	}
	return y
}

// wikiTitleRe strips the disambiguator from a Wikipedia page title,
// "John Smith (politician)" -> "John Smith".
func wikiName(wikipedia string) string {
	if wikipedia == "" {
		return ""
	}
	if i := strings.IndexAny(wikipedia, "(["); i > 0 && wikipedia[i-1] == ' ' {
		return strings.TrimSpace(wikipedia[:i])
	}
	return wikipedia
}

// surnameKey folds and lowercases a surname for exact comparison.
func surnameKey(s string) string {
	return names.FoldLower(s)
}
