package lda

import "fmt"

// FilingSummary is the flattened, display-oriented view of a filing.
type FilingSummary struct {
	RegistrantID         int64
	FilingYear           int
	Client               string
	ClientNameMergedFrom string
	ClientIndustry       string
	LobbyistIncome       float64
	LobbyistExpenses     float64
	TotalSpend           float64
	LobbyEntity          string
	FilingPeriod         string
	YearAndPeriod        string
	FilingType           string
	FilingID             string
}

// Summary produces the filing's flattened view.
func (f *Filing) Summary() FilingSummary {
	quarter := f.Quarter()
	return FilingSummary{
		RegistrantID:         f.Registrant.ID,
		FilingYear:           f.FilingYear,
		Client:               f.Client.Name,
		ClientNameMergedFrom: f.Client.MergedFrom,
		ClientIndustry:       f.Client.GeneralDescription,
		LobbyistIncome:       f.IncomeValue(),
		LobbyistExpenses:     f.ExpensesValue(),
		TotalSpend:           f.TotalSpend(),
		LobbyEntity:          f.Registrant.Name,
		FilingPeriod:         quarter,
		YearAndPeriod:        fmt.Sprintf("%d (%s)", f.FilingYear, quarter),
		FilingType:           f.FilingTypeDisplay,
		FilingID:             f.UUID,
	}
}

// ActivitySummary is the flattened view of one lobbying activity.
type ActivitySummary struct {
	GeneralIssueCode    string
	GeneralIssue        string
	ForeignEntityIssues string
	Description         string
	NumLobbyists        int
	GovernmentEntities  []string
}

// Summary produces the activity's flattened view.
func (a *Activity) Summary() ActivitySummary {
	entities := make([]string, len(a.GovernmentEntities))
	for i, e := range a.GovernmentEntities {
		entities[i] = e.Name
	}
	return ActivitySummary{
		GeneralIssueCode:    a.GeneralIssueCode,
		GeneralIssue:        a.GeneralIssueDisplay,
		ForeignEntityIssues: a.ForeignEntityIssues,
		Description:         a.Description,
		NumLobbyists:        len(a.Lobbyists),
		GovernmentEntities:  entities,
	}
}
