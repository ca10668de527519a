package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lobbylinks/lobbylinks/internal/app"
	"github.com/lobbylinks/lobbylinks/lda"
	"github.com/lobbylinks/lobbylinks/roster"
)

var (
	fetchClientName     string
	fetchRegistrantName string
	fetchYearFrom       int
	fetchYearTo         int
	fetchIssueText      string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Query the LDA API and save the filing dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := lda.Query{}
		if fetchClientName != "" {
			q["client_name"] = fetchClientName
		}
		if fetchRegistrantName != "" {
			q["registrant_name"] = fetchRegistrantName
		}
		if fetchIssueText != "" {
			q["filing_specific_lobbying_issues"] = fetchIssueText
		}
		if fetchYearFrom != 0 {
			to := fetchYearTo
			if to == 0 {
				to = fetchYearFrom
			}
			q["filing_year"] = []int{fetchYearFrom, to}
		}
		if len(q) == 0 {
			return errors.New("fetch needs at least one of --client-name, --registrant-name, --issue-text, --year-from")
		}
		svc, err := app.NewService(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()
		ds, err := svc.Fetch(cmd.Context(), q)
		if err != nil {
			return err
		}
		if err := ds.Save(cfg.DatasetPath); err != nil {
			return err
		}
		fmt.Printf("saved %d filings to %s\n", ds.Len(), cfg.DatasetPath)
		return nil
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the link graph from the saved dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), cfg, logger, nil)
	},
}

var reduceCmd = &cobra.Command{
	Use:   "reduce NAME...",
	Short: "Canonicalize organization names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.NewService(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()
		reduced := svc.Reducer().ReduceAll(args)
		for _, name := range args {
			fmt.Printf("%s\t%s\n", name, reduced[name])
		}
		return nil
	},
}

var (
	issuesAny     bool
	issuesSuggest bool
)

var issuesCmd = &cobra.Command{
	Use:   "issues QUERY",
	Short: "Look up LDA general issue codes by keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ic := lda.NewIssueCodes()
		var codes []string
		if issuesSuggest {
			codes = ic.Suggest(args[0], 5)
		} else {
			codes = ic.MatchNames(args[0], !issuesAny)
		}
		if len(codes) == 0 {
			return fmt.Errorf("no issue codes match %q", args[0])
		}
		for _, code := range codes {
			fmt.Printf("%s\t%s\n", code, ic.Name(code))
		}
		return nil
	},
}

var (
	matchChamber  string
	matchYear     int
	matchLastName bool
)

var matchCmd = &cobra.Command{
	Use:   "match NAME",
	Short: "Resolve a free-text name against the legislator roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chamber, err := parseChamber(matchChamber)
		if err != nil {
			return err
		}
		svc, err := app.NewService(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()
		res, err := svc.Match(cmd.Context(), args[0], roster.MatchOptions{
			Chamber:      chamber,
			FilingYear:   matchYear,
			LastNameOnly: matchLastName,
		})
		if err != nil {
			return err
		}
		if res.Legislator == nil {
			return fmt.Errorf("no match for %q (best score %.3f)", args[0], res.Score)
		}
		l := res.Legislator
		fmt.Printf("%s%s\t%s\tscore=%.3f\tbioguide=%s\n",
			l.Title(), l.FullName, l.Party(), res.Score, l.IDs.Bioguide)
		return nil
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster [ID_TYPE ID_VALUE]",
	Short: "Show roster statistics or look up a legislator by identifier",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.NewService(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()
		r := svc.Roster()
		if len(args) == 0 {
			fmt.Printf("%d legislators loaded\n", r.Len())
			return nil
		}
		if len(args) != 2 {
			return errors.New("roster lookup needs ID_TYPE and ID_VALUE")
		}
		found := r.LookupID(args[0], args[1])
		if len(found) == 0 {
			return fmt.Errorf("no legislator with %s=%s", args[0], args[1])
		}
		for _, l := range found {
			fmt.Printf("%s%s\t%s\tfirst term %d\n",
				l.Title(), l.FullName, l.Party(), l.FirstTermYear())
		}
		return nil
	},
}

func parseChamber(s string) (roster.Chamber, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return roster.Any, nil
	case "house", "rep":
		return roster.House, nil
	case "senate", "sen":
		return roster.Senate, nil
	}
	return roster.Any, fmt.Errorf("unknown chamber %q", s)
}

func init() {
	fetchCmd.Flags().StringVar(&fetchClientName, "client-name", "", "client name search, quoted substrings match exactly")
	fetchCmd.Flags().StringVar(&fetchRegistrantName, "registrant-name", "", "registrant name search")
	fetchCmd.Flags().StringVar(&fetchIssueText, "issue-text", "", "search within specific lobbying issue text")
	fetchCmd.Flags().IntVar(&fetchYearFrom, "year-from", 0, "first filing year")
	fetchCmd.Flags().IntVar(&fetchYearTo, "year-to", 0, "last filing year (default --year-from)")

	issuesCmd.Flags().BoolVar(&issuesAny, "any", false, "match any query word instead of all")
	issuesCmd.Flags().BoolVar(&issuesSuggest, "suggest", false, "fuzzy-rank issue names for a misspelled query")

	matchCmd.Flags().StringVar(&matchChamber, "chamber", "", "restrict to house or senate")
	matchCmd.Flags().IntVar(&matchYear, "year", 0, "filing year for the chronological filter")
	matchCmd.Flags().BoolVar(&matchLastName, "last-name", false, "treat the query as a bare surname")
}
