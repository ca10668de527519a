package orgnames

import (
	"regexp"
	"strings"
)

// pattern extracts a shorter candidate name from a longer registrant
// string. The named group "name" is the candidate; reject, when set,
// vetoes a structurally valid match (RE2 has no lookaround, so the
// handful of lookahead conditions in the grammar are re-checked here
// against the captured groups and the unmatched remainder).
type pattern struct {
	re     *regexp.Regexp
	reject func(groups map[string]string, rest string) bool
}

// oboLeadRe recognizes text that opens an on-behalf-of clause. A
// candidate whose unmatched tail starts this way was cut in the middle
// of a client reference and must not survive.
var oboLeadRe = regexp.MustCompile(`(?i)^[\s,]*\(?\s*(ON BEHALF OF|O\.?B\.?O\.?)[\s,]`)

func restStartsOBO(_ map[string]string, rest string) bool {
	return oboLeadRe.MatchString(rest)
}

func nameEndsOfFor(groups map[string]string, _ string) bool {
	up := strings.ToUpper(strings.TrimSpace(groups["name"]))
	return strings.HasSuffix(up, " OF") || strings.HasSuffix(up, " FOR") ||
		up == "OF" || up == "FOR"
}

// topLevelPatterns unwrap client / alias / subsidiary phrasing around a
// whole registrant string. They are tried before the suffix grammar and
// their output is fed back through it.
var topLevelPatterns = []pattern{
	// FIRM NAME ON BEHALF OF CLIENT, possibly parenthesized.
	{re: regexp.MustCompile(`(?i)^.+ \(?ON BEHALF OF (?P<name>.+?),?\)?$`)},
	{re: regexp.MustCompile(`(?i)^.+ \(?O\.?B\.?O\.?,? (?P<name>.+?),?\)?$`)},
	// NAME (FORMERLY OLD NAME), NAME FKA OLD NAME and variants.
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? \(?(?:FORMERLY|PREVIOUSLY|[FP]\.?K\.?A\.?)[.,;:~]* .+$`)},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? \(?(?:FORMERLY|PREVIOUSLY) REPORTED AS .+$`)},
	// NAME AND ITS SUBSIDIARIES / & AFFILIATES.
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? \(?(?:AND|&) (?:ITS )?(?:VARIOUS )?(?:SUBSIDIARIES|AFFILIATES|SUBSIDIARY|AFFILIATE)S?\)?$`)},
	// NAME (ALIAS): both halves are candidates, but the parenthetical
	// is skipped when it itself is an on-behalf-of clause.
	{
		re: regexp.MustCompile(`(?i)^.+?,? \((?P<name>.+)\)$`),
		reject: func(groups map[string]string, _ string) bool {
			return oboLeadRe.MatchString(groups["name"])
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(?P<name>.+?),? \((?P<paren>.+)\)$`),
		reject: func(groups map[string]string, _ string) bool {
			return oboLeadRe.MatchString(groups["paren"])
		},
	},
	// (QUALIFIER) NAME.
	{re: regexp.MustCompile(`(?i)^\(.+\) (?P<name>.+?),?$`)},
	// Leading article.
	{re: regexp.MustCompile(`(?i)^THE (?P<name>.+?),?$`)},
}

// suffixPatterns strip corporate form and product-line suffixes. They
// are applied recursively until no pattern yields a new candidate.
var suffixPatterns = []pattern{
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?)(?: |, )INC(?:ORPORATED)?\.?(?:\b|$)`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^THE (?P<name>.+?),? (?:CORPORATION\b|CORP\.?(?:\b|$))`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? (?:CORPORATION\b|CORP\.?(?:\b|$))`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),?\.COM\b`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? COM\b`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? (?:LLC|L\.L\.C\.?)(?:\b|$)`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? (?:LLP|L\.L\.P\.?)(?:\b|$)`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? (?:LP|L\.P\.?)\b`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? (?:LTD|L\.T\.D|LIMITED)\.?(?:\b|$)`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?:THE )?(?P<name>.+?),? GROUP\b,?`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? STORES\b`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?:THE )?(?P<name>.+?),? COMPANY\b`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? CO\.?\b`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? (?:AND|&) CO(?:MPANY|\.)?\b`), reject: restStartsOBO},
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),? \(?HOLDINGS?\)?\b`), reject: restStartsOBO},
	// Trailing country designations. The candidate must not itself end
	// in OF or FOR, so BANK OF AMERICA keeps its full name.
	{
		re: regexp.MustCompile(`(?i)^(?P<name>.+?),? (?:OF )?(?:NORTH )?AMERICA$`),
		reject: func(groups map[string]string, rest string) bool {
			return nameEndsOfFor(groups, rest)
		},
	},
	{
		re:     regexp.MustCompile(`(?i)^(?P<name>.+?),? (?:THE )?U\.?S\.?A?\.?$`),
		reject: nameEndsOfFor,
	},
	// Dangling comma clause: WALMART, BENTONVILLE AR.
	{re: regexp.MustCompile(`(?i)^(?P<name>.+?),`), reject: restStartsOBO},
}

// productSuffixPatterns are generated from the embedded product and
// service category list: one trailing-word pattern per category.
var productSuffixPatterns = buildProductPatterns()

func buildProductPatterns() []pattern {
	cats := loadLines(productsData)
	out := make([]pattern, 0, len(cats))
	for _, cat := range cats {
		re := regexp.MustCompile(`(?i)^(?P<name>.+?),? ` + regexp.QuoteMeta(cat) + `$`)
		out = append(out, pattern{re: re, reject: nameEndsOfFor})
	}
	return out
}

// abbrev expansions run before any pattern so the suffix grammar only
// has to know the long forms.
type abbrev struct {
	re  *regexp.Regexp
	out string
}

var abbrevs = []abbrev{
	{regexp.MustCompile(`(?i)\bASSOC\b\.?`), "ASSOCIATION"},
	{regexp.MustCompile(`(?i)\bASSN\b\.?`), "ASSOCIATION"},
	{regexp.MustCompile(`(?i)\bASSOCS\b\.?`), "ASSOCIATES"},
	{regexp.MustCompile(`(?i)\bNATL\b\.?`), "NATIONAL"},
	{regexp.MustCompile(`(?i)\bNAT'L\b`), "NATIONAL"},
	{regexp.MustCompile(`(?i)\bINTL\b\.?`), "INTERNATIONAL"},
	{regexp.MustCompile(`(?i)\bINT'L\b`), "INTERNATIONAL"},
	{regexp.MustCompile(`(?i)\bAMER\b\.?`), "AMERICAN"},
	{regexp.MustCompile(`(?i)\bFED\b\.?`), "FEDERATION"},
	{regexp.MustCompile(`(?i)\bFEDN\b\.?`), "FEDERATION"},
	{regexp.MustCompile(`(?i)\bMFG\b\.?`), "MANUFACTURING"},
	{regexp.MustCompile(`(?i)\bMFRS\b\.?`), "MANUFACTURERS"},
	{regexp.MustCompile(`(?i)\bSVCS\b\.?`), "SERVICES"},
	{regexp.MustCompile(`(?i)\bSVC\b\.?`), "SERVICE"},
	{regexp.MustCompile(`(?i)\bTECH\b\.`), "TECHNOLOGY"},
	{regexp.MustCompile(`(?i)\bDEPT\b\.?`), "DEPARTMENT"},
	{regexp.MustCompile(`(?i)\bGOVT\b\.?`), "GOVERNMENT"},
	{regexp.MustCompile(`(?i)\bINST\b\.`), "INSTITUTE"},
	{regexp.MustCompile(`(?i)\bUNIV\b\.?`), "UNIVERSITY"},
	{regexp.MustCompile(`(?i)\bCTR\b\.?`), "CENTER"},
	{regexp.MustCompile(`(?i)\bCMTE\b\.?`), "COMMITTEE"},
	{regexp.MustCompile(`(?i)\bCOMM\b\.`), "COMMITTEE"},
	{regexp.MustCompile(`(?i)\bBROS\b\.?`), "BROTHERS"},
}

func expandAbbrevs(name string) string {
	for _, a := range abbrevs {
		name = a.re.ReplaceAllString(name, a.out)
	}
	return collapseSpaces(name)
}

var spaceRunRe = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

// apply runs one pattern against a candidate and returns the extracted
// name, or "" when the pattern does not fire or is vetoed.
func (p pattern) apply(name string) string {
	loc := p.re.FindStringSubmatchIndex(name)
	if loc == nil {
		return ""
	}
	groups := map[string]string{}
	for i, gn := range p.re.SubexpNames() {
		if gn == "" {
			continue
		}
		lo, hi := loc[2*i], loc[2*i+1]
		if lo >= 0 {
			groups[gn] = name[lo:hi]
		}
	}
	rest := name[loc[1]:]
	if p.reject != nil && p.reject(groups, rest) {
		return ""
	}
	got := collapseSpaces(groups["name"])
	if got == "" || strings.EqualFold(got, name) {
		return ""
	}
	return got
}
