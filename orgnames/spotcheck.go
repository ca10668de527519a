package orgnames

import "strings"

// spotCheck pins a registrant whose filings are too inconsistent for
// the grammar to a fixed canonical name. Matching is a substring test
// on the preprocessed input.
type spotCheck struct {
	contains  string
	canonical string
}

var spotChecks = []spotCheck{
	{"EXXON", "EXXON MOBIL"},
	{"BOEING", "BOEING"},
	{"LOCKHEED", "LOCKHEED MARTIN"},
	{"NORTHROP", "NORTHROP GRUMMAN"},
	{"RAYTHEON", "RAYTHEON"},
	{"AT&T", "AT&T"},
	{"AT & T", "AT&T"},
	{"VERIZON", "VERIZON"},
	{"COMCAST", "COMCAST"},
	{"WAL-MART", "WALMART"},
	{"WAL MART", "WALMART"},
	{"WALMART", "WALMART"},
	{"JOHNSON & JOHNSON", "JOHNSON & JOHNSON"},
	{"JOHNSON AND JOHNSON", "JOHNSON & JOHNSON"},
	{"PROCTER & GAMBLE", "PROCTER & GAMBLE"},
	{"PROCTER AND GAMBLE", "PROCTER & GAMBLE"},
	{"GOLDMAN SACHS", "GOLDMAN SACHS"},
	{"JPMORGAN", "JPMORGAN CHASE"},
	{"JP MORGAN", "JPMORGAN CHASE"},
	{"WELLS FARGO", "WELLS FARGO"},
	{"BANK OF AMERICA", "BANK OF AMERICA"},
	{"GENERAL ELECTRIC", "GENERAL ELECTRIC"},
	{"GENERAL DYNAMICS", "GENERAL DYNAMICS"},
	{"KOCH INDUSTRIES", "KOCH INDUSTRIES"},
	{"BLUE CROSS", "BLUE CROSS BLUE SHIELD"},
	{"BLUE SHIELD", "BLUE CROSS BLUE SHIELD"},
	{"PHRMA", "PHRMA"},
	{"PHARMACEUTICAL RESEARCH AND MANUFACTURERS", "PHRMA"},
	{"U.S. CHAMBER OF COMMERCE", "US CHAMBER OF COMMERCE"},
	{"US CHAMBER OF COMMERCE", "US CHAMBER OF COMMERCE"},
	{"CHAMBER OF COMMERCE OF THE UNITED STATES", "US CHAMBER OF COMMERCE"},
	{"NATIONAL RIFLE ASSOCIATION", "NRA"},
	{"AARP", "AARP"},
	{"AFL-CIO", "AFL-CIO"},
	{"AFL CIO", "AFL-CIO"},
	{"ALPHABET", "GOOGLE"},
	{"GOOGLE", "GOOGLE"},
	{"FACEBOOK", "META"},
	{"META PLATFORMS", "META"},
	{"AMAZON", "AMAZON"},
	{"MICROSOFT", "MICROSOFT"},
	{"APPLE INC", "APPLE"},
	{"ALTRIA", "ALTRIA"},
	{"PHILIP MORRIS", "PHILIP MORRIS"},
	{"ANHEUSER", "ANHEUSER-BUSCH"},
	{"PG&E", "PG&E"},
	{"PACIFIC GAS", "PG&E"},
	{"3M", "3M"},
	{"UNITED PARCEL", "UPS"},
	{"U.P.S.", "UPS"},
	{"FEDEX", "FEDEX"},
	{"FEDERAL EXPRESS", "FEDEX"},
}

// spotCanonicals returns every pinned canonical name whose trigger
// appears in the preprocessed string, in table order.
func spotCanonicals(pre string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, sc := range spotChecks {
		if strings.Contains(pre, sc.contains) {
			if _, dup := seen[sc.canonical]; !dup {
				seen[sc.canonical] = struct{}{}
				out = append(out, sc.canonical)
			}
		}
	}
	return out
}
