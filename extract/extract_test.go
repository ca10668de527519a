package extract

import (
	"reflect"
	"strings"
	"testing"
)

// fakeNER tokenizes on whitespace and reports pre-scripted entities,
// so tests exercise the extraction logic without a trained model.
type fakeNER struct {
	entities []Span
}

func (f *fakeNER) Parse(text string) ([]string, []Span, error) {
	return strings.Fields(text), f.entities, nil
}

func TestPreprocess(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(Sen.Smith)", "( Sen.Smith )"},
		{"Staff for Rep. Smith,1999-2004", "Staff for Rep. Smith , 1999-2004"},
		{"Smith2001", "Smith 2001"},
		{"1994Smith", "1994 Smith"},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		if got := Preprocess(tc.in); got != tc.want {
			t.Errorf("Preprocess(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractTitleBeforeEntity(t *testing.T) {
	ner := &fakeNER{entities: []Span{{Text: "John Smith", Label: "PERSON"}}}
	x := NewExtractor(ner, nil)
	got, err := x.Extract("Chief of staff to Rep. John Smith ( D-CA )")
	if err != nil {
		t.Fatal(err)
	}
	want := []Mention{{Name: "John Smith", Chamber: House, Words: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExtractTitleInsideEntity(t *testing.T) {
	ner := &fakeNER{entities: []Span{{Text: "Senator Jane Doe", Label: "PERSON"}}}
	x := NewExtractor(ner, nil)
	got, err := x.Extract("Counsel to Senator Jane Doe")
	if err != nil {
		t.Fatal(err)
	}
	want := []Mention{{Name: "Jane Doe", Chamber: Senate, Words: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExtractNoTitle(t *testing.T) {
	ner := &fakeNER{entities: []Span{{Text: "Jane Doe", Label: "PERSON"}}}
	x := NewExtractor(ner, nil)
	got, err := x.Extract("Worked with Jane Doe on appropriations")
	if err != nil {
		t.Fatal(err)
	}
	want := []Mention{{Name: "Jane Doe", Chamber: Unknown, Words: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExtractConcatenatedTitle(t *testing.T) {
	ner := &fakeNER{entities: []Span{{Text: "Sen.Smith", Label: "PERSON"}}}
	x := NewExtractor(ner, nil)
	got, err := x.Extract("Aide to Sen.Smith")
	if err != nil {
		t.Fatal(err)
	}
	var found *Mention
	for i := range got {
		if got[i].Name == "Smith" {
			found = &got[i]
		}
	}
	if found == nil {
		t.Fatalf("no Smith mention in %+v", got)
	}
	if found.Chamber != Senate || found.Words != 1 {
		t.Fatalf("got %+v, want Senate surname", *found)
	}
}

func TestExtractSkipsNonPerson(t *testing.T) {
	ner := &fakeNER{entities: []Span{
		{Text: "Washington", Label: "GPE"},
		{Text: "John Smith", Label: "PERSON"},
	}}
	x := NewExtractor(ner, nil)
	got, err := x.Extract("In Washington with Rep. John Smith")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "John Smith" {
		t.Fatalf("got %+v, want only John Smith", got)
	}
}

func TestExtractLastWriteWins(t *testing.T) {
	ner := &fakeNER{entities: []Span{
		{Text: "John Smith", Label: "PERSON"},
		{Text: "John Smith", Label: "PERSON"},
	}}
	x := NewExtractor(ner, nil)
	// each sighting resolves at its own position; the second one's
	// classification stands
	got, err := x.Extract("Rep. John Smith and Rep. John Smith")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("duplicate name not collapsed: %+v", got)
	}
}

func TestExtractRepeatedNameDifferentTitles(t *testing.T) {
	ner := &fakeNER{entities: []Span{
		{Text: "John Smith", Label: "PERSON"},
		{Text: "John Smith", Label: "PERSON"},
	}}
	x := NewExtractor(ner, nil)
	got, err := x.Extract("Rep. John Smith met Sen. John Smith")
	if err != nil {
		t.Fatal(err)
	}
	want := []Mention{{Name: "John Smith", Chamber: Senate, Words: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want later sighting's chamber %+v", got, want)
	}
}

func TestExtractHonorsSpanOffsets(t *testing.T) {
	// token stream: Sen.(0) Jane(1) Doe(2) praised(3) Jane(4) Doe(5);
	// the span points at the second occurrence, whose preceding token
	// is not a title.
	ner := &fakeNER{entities: []Span{
		{Text: "Jane Doe", Label: "PERSON", Start: 4, End: 6},
	}}
	x := NewExtractor(ner, nil)
	got, err := x.Extract("Sen. Jane Doe praised Jane Doe")
	if err != nil {
		t.Fatal(err)
	}
	want := []Mention{{Name: "Jane Doe", Chamber: Unknown, Words: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExtractDeterministicOrder(t *testing.T) {
	ner := &fakeNER{entities: []Span{
		{Text: "Jane Doe", Label: "PERSON"},
		{Text: "John Smith", Label: "PERSON"},
	}}
	x := NewExtractor(ner, nil)
	first, err := x.Extract("Sen. Jane Doe and Rep. John Smith")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := x.Extract("Sen. Jane Doe and Rep. John Smith")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: order changed: %+v vs %+v", i, first, again)
		}
	}
}
