package graph

import (
	"bytes"
	"strings"
	"testing"
)

func edge(client, legislator string, lobbyist int64) Edge {
	return Edge{
		ClientName:         client,
		Legislator:         legislator,
		EdgeType:           EdgeType,
		LobbyistID:         lobbyist,
		LegislatorBioguide: "B-" + legislator,
		ClientNameUnmerged: client,
		FilingYear:         2020,
	}
}

func TestExtrapolateAddsImpliedLinks(t *testing.T) {
	// lobbyist 1 linked ACME to Doe and ZETA to Smith; each client
	// inherits the other link.
	edges := []Edge{
		edge("ACME", "Sen. Jane Doe", 1),
		edge("ZETA", "Rep. John Smith", 1),
	}
	got := Extrapolate(edges)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	added := got[2:]
	if added[0].ClientName != "ACME" || added[0].Legislator != "Rep. John Smith" {
		t.Fatalf("added[0] = %+v", added[0])
	}
	if added[1].ClientName != "ZETA" || added[1].Legislator != "Sen. Jane Doe" {
		t.Fatalf("added[1] = %+v", added[1])
	}
	for _, e := range added {
		if !e.Extrapolated {
			t.Fatalf("edge not flagged: %+v", e)
		}
		if !strings.HasPrefix(e.LinkSourceText, "EXTRAPOLATED lobbyist=1 ") {
			t.Fatalf("source text = %q", e.LinkSourceText)
		}
		if e.LegislatorBioguide == "" {
			t.Fatal("legislator identity not carried over")
		}
	}
}

func TestExtrapolateNoMissingLinks(t *testing.T) {
	edges := []Edge{
		edge("ACME", "Sen. Jane Doe", 1),
		edge("ACME", "Sen. Jane Doe", 1),
		edge("ZETA", "Rep. John Smith", 2),
	}
	if got := Extrapolate(edges); len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestExtrapolateDeterministic(t *testing.T) {
	edges := []Edge{
		edge("ACME", "Sen. Jane Doe", 1),
		edge("ACME", "Rep. David Park", 3),
		edge("ZETA", "Rep. John Smith", 1),
		edge("ZETA", "Sen. Maria Vole", 3),
	}
	first := Extrapolate(edges)
	for run := 0; run < 10; run++ {
		got := Extrapolate(edges)
		if len(got) != len(first) {
			t.Fatalf("run %d: len %d vs %d", run, len(got), len(first))
		}
		for i := range got {
			if got[i] != first[i] {
				t.Fatalf("run %d edge %d differs", run, i)
			}
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	e := edge("ACME", "Sen. Jane Doe", 1)
	e.Confidence = 0.95
	e.FilingIndex = 3
	if err := WriteCSV(&buf, []Edge{e}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "client_name,legislator,edge_type,") {
		t.Fatalf("header = %q", lines[0])
	}
	for _, want := range []string{"ACME", "Sen. Jane Doe", "0.95", "2020"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("row %q missing %q", lines[1], want)
		}
	}
}
