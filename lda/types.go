// Package lda models Lobbying Disclosure Act filings and talks to the
// disclosure REST API: querying, pagination, deduplication, amendment
// merging and client-name canonicalization.
package lda

import (
	"strconv"
	"strings"
)

// Filing is one LDA filing as returned by the filings endpoint.
// Monetary fields arrive as decimal strings or null.
type Filing struct {
	UUID              string     `json:"filing_uuid"`
	URL               string     `json:"url"`
	DocumentURL       string     `json:"filing_document_url"`
	FilingType        string     `json:"filing_type"`
	FilingTypeDisplay string     `json:"filing_type_display"`
	FilingYear        int        `json:"filing_year"`
	FilingPeriod      string     `json:"filing_period"`
	Posted            string     `json:"dt_posted"`
	Income            string     `json:"income"`
	Expenses          string     `json:"expenses"`
	Registrant        Registrant `json:"registrant"`
	Client            ClientOrg  `json:"client"`
	Activities        []Activity `json:"lobbying_activities"`
}

// IncomeValue parses the income field, zero when absent.
func (f *Filing) IncomeValue() float64 { return parseMoney(f.Income) }

// ExpensesValue parses the expenses field, zero when absent.
func (f *Filing) ExpensesValue() float64 { return parseMoney(f.Expenses) }

// TotalSpend is income plus expenses: lobby-firm filings report
// income, in-house filings report expenses.
func (f *Filing) TotalSpend() float64 { return f.IncomeValue() + f.ExpensesValue() }

func parseMoney(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// IsAmendment reports whether the filing amends an earlier report.
func (f *Filing) IsAmendment() bool {
	return strings.HasSuffix(f.FilingTypeDisplay, "Amendment")
}

// IsReport reports whether the filing is an original report.
func (f *Filing) IsReport() bool {
	return strings.HasSuffix(f.FilingTypeDisplay, "Report")
}

// Quarter maps the filing period to Q1..Q4; older filings use the
// half-year periods.
func (f *Filing) Quarter() string {
	switch f.FilingPeriod {
	case "first_quarter":
		return "Q1"
	case "second_quarter", "mid_year":
		return "Q2"
	case "third_quarter":
		return "Q3"
	case "fourth_quarter", "year_end":
		return "Q4"
	}
	return f.FilingPeriod
}

type Registrant struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ClientOrg is the organization on whose behalf lobbying occurred.
// MergedFrom preserves the filed name after canonicalization.
type ClientOrg struct {
	Name               string `json:"name"`
	GeneralDescription string `json:"general_description"`
	MergedFrom         string `json:"name__merged_from_,omitempty"`
}

type Activity struct {
	GeneralIssueCode    string             `json:"general_issue_code"`
	GeneralIssueDisplay string             `json:"general_issue_code_display"`
	Description         string             `json:"description"`
	ForeignEntityIssues string             `json:"foreign_entity_issues"`
	Lobbyists           []ActivityLobbyist `json:"lobbyists"`
	GovernmentEntities  []GovernmentEntity `json:"government_entities"`
}

// LobbyistIDs returns the distinct lobbyist IDs on the activity, used
// to apportion the contract value.
func (a *Activity) LobbyistIDs() []int64 {
	seen := map[int64]struct{}{}
	var out []int64
	for _, al := range a.Lobbyists {
		if _, dup := seen[al.Lobbyist.ID]; dup {
			continue
		}
		seen[al.Lobbyist.ID] = struct{}{}
		out = append(out, al.Lobbyist.ID)
	}
	return out
}

type ActivityLobbyist struct {
	Lobbyist        Lobbyist `json:"lobbyist"`
	CoveredPosition string   `json:"covered_position"`
	New             bool     `json:"new"`
}

type Lobbyist struct {
	ID         int64  `json:"id"`
	Prefix     string `json:"prefix"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Suffix     string `json:"suffix"`
}

// FullName joins first, middle and last names in order.
func (l Lobbyist) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.FirstName, l.MiddleName, l.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type GovernmentEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
