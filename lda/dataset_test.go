package lda

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func filing(uuid, client, registrant, typeDisplay, period, posted string, year int) *Filing {
	return &Filing{
		UUID:              uuid,
		URL:               "https://lda.senate.gov/api/v1/filings/" + uuid + "/",
		DocumentURL:       "https://lda.senate.gov/filings/public/filing/" + uuid + "/print/",
		FilingTypeDisplay: typeDisplay,
		FilingYear:        year,
		FilingPeriod:      period,
		Posted:            posted,
		Registrant:        Registrant{Name: registrant},
		Client:            ClientOrg{Name: client},
	}
}

func uuids(d *Dataset) []string {
	out := make([]string, d.Len())
	for i, f := range d.Filings {
		out[i] = f.UUID
	}
	return out
}

func TestStripDuplicatesKeepsLastPayloadFirstPosition(t *testing.T) {
	stale := filing("a1", "ACME", "Lobby LLC", "Second Quarter Report", "second_quarter", "2020-07-01", 2020)
	fresh := filing("a1", "ACME", "Lobby LLC", "Second Quarter Report", "second_quarter", "2020-07-01", 2020)
	fresh.Income = "5,000.00"
	other := filing("b2", "ZETA", "Lobby LLC", "Second Quarter Report", "second_quarter", "2020-07-02", 2020)

	d := NewDataset([]*Filing{stale, other, fresh})
	if got := uuids(d); !reflect.DeepEqual(got, []string{"a1", "b2"}) {
		t.Fatalf("uuids = %v", got)
	}
	if d.Filings[0].IncomeValue() != 5000 {
		t.Fatalf("duplicate survivor income = %v, want refreshed payload", d.Filings[0].IncomeValue())
	}
}

func TestConcatDeduplicates(t *testing.T) {
	d := NewDataset([]*Filing{filing("a1", "ACME", "L", "Report", "first_quarter", "2020-04-01", 2020)})
	d.Concat(NewDataset([]*Filing{
		filing("a1", "ACME", "L", "Report", "first_quarter", "2020-04-01", 2020),
		filing("c3", "ACME", "L", "Report", "third_quarter", "2020-10-01", 2020),
	}))
	if got := uuids(d); !reflect.DeepEqual(got, []string{"a1", "c3"}) {
		t.Fatalf("uuids = %v", got)
	}
}

func TestMergeAmendedPrefersAmendment(t *testing.T) {
	report := filing("r1", "ACME", "Lobby LLC", "Second Quarter Report", "second_quarter", "2020-09-01", 2020)
	amendment := filing("m1", "ACME", "Lobby LLC", "Second Quarter Amendment", "second_quarter", "2020-07-15", 2020)
	unrelated := filing("u1", "ZETA", "Lobby LLC", "Second Quarter Report", "second_quarter", "2020-07-01", 2020)

	d := NewDataset([]*Filing{report, amendment, unrelated})
	d.MergeAmended()
	// Amendment wins even though it was posted before the re-filed report.
	if got := uuids(d); !reflect.DeepEqual(got, []string{"m1", "u1"}) {
		t.Fatalf("uuids = %v", got)
	}
}

func TestMergeAmendedLaterPostingWins(t *testing.T) {
	early := filing("e1", "ACME", "Lobby LLC", "Mid-Year Report", "mid_year", "2019-07-01", 2019)
	late := filing("l1", "ACME", "Lobby LLC", "Mid-Year Report", "mid_year", "2019-08-20", 2019)

	d := NewDataset([]*Filing{early, late})
	d.MergeAmended()
	if got := uuids(d); !reflect.DeepEqual(got, []string{"l1"}) {
		t.Fatalf("uuids = %v", got)
	}
}

func TestMergeAmendedKeepsDistinctClients(t *testing.T) {
	a := filing("a1", "ACME", "Lobby LLC", "First Quarter Report", "first_quarter", "2021-04-01", 2021)
	b := filing("b1", "ZETA", "Lobby LLC", "First Quarter Report", "first_quarter", "2021-04-01", 2021)
	d := NewDataset([]*Filing{a, b})
	d.MergeAmended()
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
}

type suffixReducer struct{}

func (suffixReducer) Reduce(name string) string {
	return strings.TrimSuffix(strings.TrimSuffix(name, " INC."), " INC")
}

func TestMergeNamesAndReset(t *testing.T) {
	d := NewDataset([]*Filing{
		filing("a1", "ACME INC.", "L", "Report", "first_quarter", "2020-04-01", 2020),
		filing("b1", "ACME INC", "L", "Report", "third_quarter", "2020-10-01", 2020),
		filing("c1", "ZETA", "L", "Report", "first_quarter", "2020-04-01", 2020),
	})
	d.MergeNames(suffixReducer{}, nil)

	if got := d.Clients(); !reflect.DeepEqual(got, []string{"ACME", "ZETA"}) {
		t.Fatalf("Clients = %v", got)
	}
	if d.Filings[0].Client.MergedFrom != "ACME INC." {
		t.Fatalf("MergedFrom = %q", d.Filings[0].Client.MergedFrom)
	}

	d.ResetNames()
	if got := d.Clients(); !reflect.DeepEqual(got, []string{"ACME INC", "ACME INC.", "ZETA"}) {
		t.Fatalf("Clients after reset = %v", got)
	}
	if d.Filings[0].Client.MergedFrom != "" {
		t.Fatalf("MergedFrom not cleared: %q", d.Filings[0].Client.MergedFrom)
	}
}

func TestApplyFilter(t *testing.T) {
	d := NewDataset([]*Filing{
		filing("a1", "ACME", "L", "Report", "first_quarter", "2020-04-01", 2020),
		filing("b1", "ZETA", "L", "Report", "first_quarter", "2021-04-01", 2021),
	})
	kept := d.ApplyFilter(func(f *Filing) bool { return f.FilingYear == 2021 })
	if got := uuids(kept); !reflect.DeepEqual(got, []string{"b1"}) {
		t.Fatalf("uuids = %v", got)
	}
	if d.Len() != 2 {
		t.Fatal("ApplyFilter mutated the source dataset")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	d := NewDataset([]*Filing{
		filing("a1", "ACME", "Lobby LLC", "First Quarter Report", "first_quarter", "2020-04-01", 2020),
	})
	d.Filings[0].Income = "12,500.00"

	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := d.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadDataset(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 || got.Filings[0].UUID != "a1" || got.Filings[0].IncomeValue() != 12500 {
		t.Fatalf("round trip mismatch: %+v", got.Filings[0])
	}
}

func TestQuarter(t *testing.T) {
	cases := []struct{ period, want string }{
		{"first_quarter", "Q1"},
		{"second_quarter", "Q2"},
		{"mid_year", "Q2"},
		{"third_quarter", "Q3"},
		{"fourth_quarter", "Q4"},
		{"year_end", "Q4"},
		{"special", "special"},
	}
	for _, tc := range cases {
		f := &Filing{FilingPeriod: tc.period}
		if got := f.Quarter(); got != tc.want {
			t.Errorf("Quarter(%q) = %q, want %q", tc.period, got, tc.want)
		}
	}
}

func TestActivityLobbyistIDs(t *testing.T) {
	a := &Activity{Lobbyists: []ActivityLobbyist{
		{Lobbyist: Lobbyist{ID: 7}},
		{Lobbyist: Lobbyist{ID: 3}},
		{Lobbyist: Lobbyist{ID: 7}},
	}}
	if got := a.LobbyistIDs(); !reflect.DeepEqual(got, []int64{7, 3}) {
		t.Fatalf("LobbyistIDs = %v", got)
	}
}

func TestFilingSummary(t *testing.T) {
	f := filing("a1", "ACME", "Lobby LLC", "Second Quarter Report", "second_quarter", "2020-07-01", 2020)
	f.Income = "10,000.00"
	f.Registrant.ID = 42
	f.Client.GeneralDescription = "widgets"

	s := f.Summary()
	if s.TotalSpend != 10000 || s.YearAndPeriod != "2020 (Q2)" || s.RegistrantID != 42 {
		t.Fatalf("summary = %+v", s)
	}
	if s.FilingID != "a1" || s.ClientIndustry != "widgets" {
		t.Fatalf("summary = %+v", s)
	}
}
