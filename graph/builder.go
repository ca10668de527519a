package graph

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lobbylinks/lobbylinks/extract"
	"github.com/lobbylinks/lobbylinks/lda"
	"github.com/lobbylinks/lobbylinks/names"
	"github.com/lobbylinks/lobbylinks/roster"
	"github.com/lobbylinks/lobbylinks/wordstats"
)

// othTitles are honorifics the recognizer keeps glued to names;
// stripping one and retrying recovers matches like "Chairman Smith".
var othTitles = []string{
	"Chairman", "Chair", "Chrmn", "Chr", "Chairwoman", "Chrwm", "Chrwmn",
}

// Config controls graph construction.
type Config struct {
	// MatchTimeout bounds each attempt to resolve one mention.
	MatchTimeout time.Duration
	// IncludeCodes restricts activities to these general issue
	// codes; empty means all.
	IncludeCodes []string
	// DisableSegmentRetry turns off the word-segmentation retry for
	// names with missing spaces ("JohnSmith").
	DisableSegmentRetry bool
	// Progress draws a progress bar over the filing loop.
	Progress bool
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.MatchTimeout <= 0 {
		c.MatchTimeout = 5 * time.Second
	}
}

// Builder resolves covered-position text against the legislator roster
// and accumulates edges. It is not safe for concurrent use.
type Builder struct {
	cfg       Config
	roster    *roster.Roster
	extractor *extract.Extractor
	issues    *lda.IssueCodes
	logger    *log.Logger

	// mentions memoizes extraction per covered-position text, which
	// repeats heavily across filings.
	mentions map[string][]extract.Mention
	// outcomes memoizes terminal resolution results, hits and
	// misses alike, keyed by normalized mention.
	outcomes *gocache.Cache

	titleCaser cases.Caser
}

// outcome is a cached resolution result. A stored miss
// (found=false) suppresses re-running the cascade for a mention that
// already failed.
type outcome struct {
	index int
	score float64
	found bool
}

func NewBuilder(cfg Config, r *roster.Roster, x *extract.Extractor, ic *lda.IssueCodes, logger *log.Logger) *Builder {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if ic == nil {
		ic = lda.NewIssueCodes()
	}
	return &Builder{
		cfg:        cfg,
		roster:     r,
		extractor:  x,
		issues:     ic,
		logger:     logger,
		mentions:   map[string][]extract.Mention{},
		outcomes:   gocache.New(gocache.NoExpiration, 0),
		titleCaser: cases.Title(language.English),
	}
}

// Build walks every filing, activity and lobbyist, resolves the
// legislator mentions in each covered position and returns the edge
// list. Unresolvable mentions are dropped. The context cancels the
// whole build; per-mention deadlines come from MatchTimeout.
func (b *Builder) Build(ctx context.Context, ds *lda.Dataset) ([]Edge, error) {
	var bar *progressbar.ProgressBar
	if b.cfg.Progress {
		bar = progressbar.New(ds.Len())
	}
	var edges []Edge
	for n, filing := range ds.Filings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		contract := filing.IncomeValue()
		unmerged := filing.Client.MergedFrom
		if unmerged == "" {
			unmerged = filing.Client.Name
		}
		for ai := range filing.Activities {
			activity := &filing.Activities[ai]
			if !b.includeCode(activity.GeneralIssueCode) {
				continue
			}
			perLobbyist := contract
			if ids := activity.LobbyistIDs(); len(ids) > 0 {
				perLobbyist = contract / float64(len(ids))
			}
			for _, al := range activity.Lobbyists {
				if al.CoveredPosition == "" {
					continue
				}
				for _, m := range b.mentionsFor(al.CoveredPosition) {
					match, score, found := b.resolve(ctx, m, filing.FilingYear)
					if !found {
						continue
					}
					// The outcome cache is keyed without the year, so
					// a hit cached from a later filing must still pass
					// this filing's chronology.
					if filing.FilingYear != 0 && match.FirstTermYear() > filing.FilingYear {
						continue
					}
					edges = append(edges, Edge{
						ClientName:         filing.Client.Name,
						Legislator:         match.Title() + match.FullName,
						EdgeType:           EdgeType,
						Title:              match.Title(),
						Party:              match.Party(),
						Confidence:         score,
						ClientIndustry:     filing.Client.GeneralDescription,
						ContractValue:      contract,
						IssueName:          b.issues.Name(activity.GeneralIssueCode),
						IssueDescription:   activity.Description,
						IssueCode:          activity.GeneralIssueCode,
						LobbyistID:         al.Lobbyist.ID,
						LobbyistName:       al.Lobbyist.FullName(),
						CurrentlyInOffice:  match.CurrentlyInOffice,
						LinkSourceText:     al.CoveredPosition,
						LegislatorICPSR:    match.IDs.ICPSR,
						LegislatorGovTrack: match.IDs.GovTrack,
						LegislatorBioguide: match.IDs.Bioguide,
						LegislatorThomas:   match.IDs.Thomas,
						FilingYear:         filing.FilingYear,
						ClientNameUnmerged: unmerged,
						IncomePerLobbyist:  perLobbyist,
						RegistrantID:       filing.Registrant.ID,
						FilingIndex:        n,
					})
				}
			}
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	b.logger.Printf("graph: built %d edges from %d filings", len(edges), ds.Len())
	return edges, nil
}

func (b *Builder) includeCode(code string) bool {
	if len(b.cfg.IncludeCodes) == 0 {
		return true
	}
	for _, c := range b.cfg.IncludeCodes {
		if c == code {
			return true
		}
	}
	return false
}

func (b *Builder) mentionsFor(coveredPosition string) []extract.Mention {
	if cached, ok := b.mentions[coveredPosition]; ok {
		return cached
	}
	found, err := b.extractor.Extract(coveredPosition)
	if err != nil {
		b.logger.Printf("graph: extract %q: %v", coveredPosition, err)
		found = nil
	}
	b.mentions[coveredPosition] = found
	return found
}

// resolve runs the matching cascade for one mention, with the title
// strip and word segmentation retries, and memoizes the terminal
// outcome. Timeouts count as misses.
func (b *Builder) resolve(ctx context.Context, m extract.Mention, filingYear int) (*roster.Legislator, float64, bool) {
	name, words := names.Clean(m.Name)
	if name == "" {
		return nil, 0, false
	}
	key := fmt.Sprintf("%s|%s|%d", name, m.Chamber, words)
	if cached, ok := b.outcomes.Get(key); ok {
		out := cached.(outcome)
		if !out.found {
			return nil, 0, false
		}
		return b.roster.At(out.index), out.score, true
	}

	chamber := chamberOf(m.Chamber)
	res := b.attempt(ctx, name, words, chamber, filingYear)

	if res.Legislator == nil {
		for _, title := range othTitles {
			stripped := stripTitle(name, title)
			if stripped == name || stripped == "" {
				continue
			}
			res = b.attempt(ctx, stripped, len(strings.Fields(stripped)), chamber, filingYear)
			if res.Legislator != nil {
				break
			}
		}
	}
	if res.Legislator == nil && !b.cfg.DisableSegmentRetry {
		res = b.segmentRetry(ctx, name, chamber, filingYear)
	}

	if res.Legislator == nil {
		b.outcomes.Set(key, outcome{}, gocache.NoExpiration)
		return nil, 0, false
	}
	b.outcomes.Set(key, outcome{
		index: res.Legislator.Index,
		score: res.Score,
		found: true,
	}, gocache.NoExpiration)
	return res.Legislator, res.Score, true
}

// attempt is one timeout-bounded pass through the roster cascade.
func (b *Builder) attempt(ctx context.Context, name string, words int, chamber roster.Chamber, filingYear int) roster.Result {
	mctx, cancel := context.WithTimeout(ctx, b.cfg.MatchTimeout)
	defer cancel()
	res, err := b.roster.BestMatch(mctx, name, roster.MatchOptions{
		Chamber:      chamber,
		LastNameOnly: words < 2,
		FilingYear:   filingYear,
	})
	if err != nil {
		b.logger.Printf("graph: match %q timed out", name)
		return roster.Result{}
	}
	return res
}

// segmentRetry re-splits a name with missing word boundaries
// ("JohnSmith") and runs extraction and matching over the result.
func (b *Builder) segmentRetry(ctx context.Context, name string, chamber roster.Chamber, filingYear int) roster.Result {
	segmented := b.titleCaser.String(strings.Join(wordstats.Segment(name), " "))
	if segmented == "" || strings.EqualFold(segmented, name) {
		return roster.Result{}
	}
	found, err := b.extractor.Extract(segmented)
	if err != nil || len(found) == 0 {
		// No entity recognized in the resplit text; try it as a
		// bare name.
		found = []extract.Mention{{Name: segmented, Words: len(strings.Fields(segmented))}}
	}
	for _, m := range found {
		cleaned, words := names.Clean(m.Name)
		if cleaned == "" {
			continue
		}
		res := b.attempt(ctx, cleaned, words, chamber, filingYear)
		if res.Legislator != nil {
			b.logger.Printf("graph: matched %q after resplitting %q", cleaned, name)
			return res
		}
	}
	return roster.Result{}
}

// stripTitle removes a leading honorific word, case-insensitively.
func stripTitle(name, title string) string {
	if len(name) <= len(title) {
		return name
	}
	if !strings.EqualFold(name[:len(title)], title) {
		return name
	}
	rest := name[len(title):]
	if rest[0] != ' ' && rest[0] != '.' {
		return name
	}
	return strings.TrimLeft(rest, " .")
}

func chamberOf(c extract.Chamber) roster.Chamber {
	switch c {
	case extract.House:
		return roster.House
	case extract.Senate:
		return roster.Senate
	}
	return roster.Any
}
