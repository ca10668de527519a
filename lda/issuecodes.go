package lda

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

//go:embed issue_codes.csv
var issueCodesData []byte

// IssueCodes maps LDA general issue codes to their display names and
// supports keyword search over the names.
type IssueCodes struct {
	codeToName map[string]string
	nameToCode map[string]string
	codes      []string // sorted, for deterministic iteration
}

func NewIssueCodes() *IssueCodes {
	rd := csv.NewReader(bytes.NewReader(issueCodesData))
	rows, err := rd.ReadAll()
	if err != nil {
		panic("lda: embedded issue codes corrupt: " + err.Error())
	}
	ic := &IssueCodes{
		codeToName: map[string]string{},
		nameToCode: map[string]string{},
	}
	for _, row := range rows[1:] {
		code, name := row[0], row[1]
		ic.codeToName[code] = name
		ic.nameToCode[name] = code
		ic.codes = append(ic.codes, code)
	}
	sort.Strings(ic.codes)
	return ic
}

// Name returns the display name for a code, "" if unknown.
func (ic *IssueCodes) Name(code string) string { return ic.codeToName[code] }

// Code returns the code for an exact display name, "" if unknown.
func (ic *IssueCodes) Code(name string) string { return ic.nameToCode[name] }

// Codes returns all codes in sorted order.
func (ic *IssueCodes) Codes() []string { return ic.codes }

// MatchNames finds codes whose display name contains the query words,
// bag-of-words: "climate change" and "change climate" match alike.
// With and=true every word must appear; otherwise any word suffices.
func (ic *IssueCodes) MatchNames(query string, and bool) []string {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}
	var out []string
	for _, code := range ic.codes {
		name := strings.ToLower(ic.codeToName[code])
		hits := 0
		for _, w := range words {
			if strings.Contains(name, w) {
				hits++
			}
		}
		if (and && hits == len(words)) || (!and && hits > 0) {
			out = append(out, code)
		}
	}
	return out
}

// Suggest fuzzy-ranks the issue names against a possibly misspelled
// query and returns the closest codes, best first.
func (ic *IssueCodes) Suggest(query string, limit int) []string {
	names := make([]string, 0, len(ic.codes))
	for _, code := range ic.codes {
		names = append(names, ic.codeToName[code])
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	var out []string
	for _, r := range ranks {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, ic.nameToCode[r.Target])
	}
	return out
}
