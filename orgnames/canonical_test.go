package orgnames

import "testing"

// properNouns is a stand-in tagger so tests do not depend on a trained
// part-of-speech model.
type properNouns map[string]bool

func (p properNouns) Tag(word string) string {
	if p[word] {
		return "NNP"
	}
	return "NN"
}

func testReducer() *Reducer {
	return NewReducer(properNouns{}, nil)
}

func TestReduceCorporateSuffixes(t *testing.T) {
	r := testReducer()
	cases := []struct {
		in   string
		want string
	}{
		{"TESLA MOTORS INC.", "TESLA"},
		{"GENERAL MOTORS COMPANY", "GENERAL MOTORS"},
		{"ACME WIDGETS CORPORATION", "ACME WIDGETS"},
		{"ACME WIDGETS CORP.", "ACME WIDGETS"},
		{"ORACLE AMERICA, INC.", "ORACLE"},
		{"NETFLIX, INC.", "NETFLIX"},
		{"PRICELINE.COM", "PRICELINE"},
		{"QUALCOMM INCORPORATED", "QUALCOMM"},
		{"TARGET ENTERPRISES LLC", "TARGET ENTERPRISES"},
		{"THE GOLDMAN SACHS GROUP, INC.", "GOLDMAN SACHS"},
	}
	for _, tc := range cases {
		if got := r.Reduce(tc.in); got != tc.want {
			t.Errorf("Reduce(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReduceSpotChecks(t *testing.T) {
	r := testReducer()
	cases := []struct {
		in   string
		want string
	}{
		{"EXXON MOBIL CORPORATION", "EXXON MOBIL"},
		{"THE BOEING COMPANY", "BOEING"},
		{"WAL-MART STORES, INC.", "WALMART"},
		{"BANK OF AMERICA CORPORATION", "BANK OF AMERICA"},
	}
	for _, tc := range cases {
		if got := r.Reduce(tc.in); got != tc.want {
			t.Errorf("Reduce(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReduceWrappers(t *testing.T) {
	r := testReducer()
	cases := []struct {
		in   string
		want string
	}{
		{"SMITH & JONES LLP ON BEHALF OF ZYDECO PHARMACEUTICALS", "ZYDECO"},
		{"SMITH & JONES LLP OBO ZYDECO PHARMACEUTICALS INC", "ZYDECO"},
		{"ZYDECO HOLDINGS (FORMERLY ZYDECO GROUP)", "ZYDECO"},
		{"VOLTRAK SYSTEMS AND ITS SUBSIDIARIES", "VOLTRAK"},
	}
	for _, tc := range cases {
		if got := r.Reduce(tc.in); got != tc.want {
			t.Errorf("Reduce(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReduceKeepsCommonSingleWords(t *testing.T) {
	r := testReducer()
	// GENERAL alone is vocabulary, not a company, so stripping MOTORS
	// must not win; similarly AMERICAN alone.
	cases := []struct {
		in      string
		banned  string
		wantLen int
	}{
		{"GENERAL MOTORS", "GENERAL", 2},
		{"AMERICAN AIRLINES GROUP INC.", "AMERICAN", 2},
	}
	for _, tc := range cases {
		got := r.Reduce(tc.in)
		if got == tc.banned {
			t.Errorf("Reduce(%q) collapsed to generic word %q", tc.in, got)
		}
	}
}

func TestReduceRejectsPlacenames(t *testing.T) {
	r := testReducer()
	// The trailing-comma pattern would otherwise leave just the city.
	got := r.Reduce("NEW YORK LIFE INSURANCE COMPANY")
	if got == "NEW YORK" {
		t.Fatalf("Reduce collapsed to placename %q", got)
	}
}

func TestReduceIdempotent(t *testing.T) {
	r := testReducer()
	inputs := []string{
		"TESLA MOTORS INC.",
		"GENERAL MOTORS COMPANY",
		"THE BOEING COMPANY",
		"SMITH & JONES LLP ON BEHALF OF ZYDECO PHARMACEUTICALS",
		"NATIONAL ASSOCIATION OF REALTORS",
	}
	for _, in := range inputs {
		once := r.Reduce(in)
		twice := r.Reduce(once)
		if once != twice {
			t.Errorf("Reduce not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestReduceAllProvenance(t *testing.T) {
	r := testReducer()
	raws := []string{"TESLA MOTORS INC.", "NETFLIX, INC.", "TESLA MOTORS INC."}
	got := r.ReduceAll(raws)
	if len(got) != 2 {
		t.Fatalf("ReduceAll kept %d entries, want 2: %v", len(got), got)
	}
	if got["TESLA MOTORS INC."] != "TESLA" {
		t.Errorf("ReduceAll[TESLA MOTORS INC.] = %q", got["TESLA MOTORS INC."])
	}
	if got["NETFLIX, INC."] != "NETFLIX" {
		t.Errorf("ReduceAll[NETFLIX, INC.] = %q", got["NETFLIX, INC."])
	}
}

func TestReduceDeterministic(t *testing.T) {
	r := testReducer()
	in := "SMITH & JONES LLP ON BEHALF OF ZYDECO PHARMACEUTICALS INC"
	first := r.Reduce(in)
	for i := 0; i < 20; i++ {
		if got := r.Reduce(in); got != first {
			t.Fatalf("run %d: Reduce(%q) = %q, want stable %q", i, in, got, first)
		}
	}
}

func TestPreprocess(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Nestlé   Waters ", "NESTLE WATERS"},
		{"“Acme Widgets”", "ACME WIDGETS"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Preprocess(tc.in); got != tc.want {
			t.Errorf("Preprocess(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExpandAbbrevs(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"NATL ASSN OF REALTORS", "NATIONAL ASSOCIATION OF REALTORS"},
		{"AMER. HOSPITAL ASSOC.", "AMERICAN HOSPITAL ASSOCIATION"},
		{"ACME INTL", "ACME INTERNATIONAL"},
	}
	for _, tc := range cases {
		if got := expandAbbrevs(tc.in); got != tc.want {
			t.Errorf("expandAbbrevs(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
