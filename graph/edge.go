// Package graph builds the client-to-legislator link network from a
// filing dataset: it walks every lobbyist's covered-position text,
// resolves the legislator names found there and emits one edge per
// resolved link.
package graph

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// EdgeType labels links recovered from covered-position text.
const EdgeType = "ClientOfLobbyistLinkedTo"

// Edge is one resolved client-to-legislator link.
type Edge struct {
	ClientName         string
	Legislator         string // titled full name, "Sen. Jane Doe"
	EdgeType           string
	Title              string
	Party              string
	Confidence         float64
	ClientIndustry     string
	ContractValue      float64
	IssueName          string
	IssueDescription   string
	IssueCode          string
	LobbyistID         int64
	LobbyistName       string
	CurrentlyInOffice  bool
	LinkSourceText     string
	LegislatorICPSR    int64
	LegislatorGovTrack int64
	LegislatorBioguide string
	LegislatorThomas   string
	FilingYear         int
	ClientNameUnmerged string
	IncomePerLobbyist  float64
	RegistrantID       int64
	FilingIndex        int
	Extrapolated       bool
}

var csvHeader = []string{
	"client_name", "legislator", "edge_type", "title", "party",
	"confidence", "client_industry", "contract_value",
	"issue_name", "issue_description", "issue_code", "lobbyist_id",
	"lobbyist_name", "currently_in_office", "link_source_text",
	"legislator_icpsr", "legislator_govtrack", "legislator_bioguide",
	"legislator_thomas", "filing_year", "client_name_unmerged_",
	"income_per_lobbyist", "registrant_id", "filing_index",
	"extrapolated",
}

func (e *Edge) record() []string {
	return []string{
		e.ClientName,
		e.Legislator,
		e.EdgeType,
		e.Title,
		e.Party,
		strconv.FormatFloat(e.Confidence, 'f', -1, 64),
		e.ClientIndustry,
		strconv.FormatFloat(e.ContractValue, 'f', -1, 64),
		e.IssueName,
		e.IssueDescription,
		e.IssueCode,
		strconv.FormatInt(e.LobbyistID, 10),
		e.LobbyistName,
		strconv.FormatBool(e.CurrentlyInOffice),
		e.LinkSourceText,
		strconv.FormatInt(e.LegislatorICPSR, 10),
		strconv.FormatInt(e.LegislatorGovTrack, 10),
		e.LegislatorBioguide,
		e.LegislatorThomas,
		strconv.Itoa(e.FilingYear),
		e.ClientNameUnmerged,
		strconv.FormatFloat(e.IncomePerLobbyist, 'f', -1, 64),
		strconv.FormatInt(e.RegistrantID, 10),
		strconv.Itoa(e.FilingIndex),
		strconv.FormatBool(e.Extrapolated),
	}
}

// WriteCSV writes the edge list with a header row.
func WriteCSV(w io.Writer, edges []Edge) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("graph: write header: %w", err)
	}
	for i := range edges {
		if err := cw.Write(edges[i].record()); err != nil {
			return fmt.Errorf("graph: write edge %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the edge list to a file.
func SaveCSV(path string, edges []Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graph: save: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, edges)
}
