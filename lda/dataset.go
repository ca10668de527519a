package lda

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
)

// Dataset is an in-memory collection of filings with the cleanup
// operations the link builder expects to run before graph
// construction.
type Dataset struct {
	Filings []*Filing `json:"filings"`
}

func NewDataset(filings []*Filing) *Dataset {
	d := &Dataset{Filings: filings}
	d.StripDuplicates()
	return d
}

func (d *Dataset) Len() int { return len(d.Filings) }

// Concat appends another dataset's filings and re-deduplicates.
func (d *Dataset) Concat(other *Dataset) {
	d.Filings = append(d.Filings, other.Filings...)
	d.StripDuplicates()
}

// StripDuplicates removes filings sharing (uuid, url, document url).
// Each survivor keeps the position of its first occurrence but the
// payload of its last, so re-fetched pages win over stale copies.
func (d *Dataset) StripDuplicates() {
	type key [3]string
	pos := map[key]int{}
	out := d.Filings[:0]
	for _, f := range d.Filings {
		k := key{f.UUID, f.URL, f.DocumentURL}
		if i, dup := pos[k]; dup {
			out[i] = f
			continue
		}
		pos[k] = len(out)
		out = append(out, f)
	}
	d.Filings = out
}

// MergeAmended collapses filings that share registrant, year, period
// and client down to the authoritative version: amendments beat
// original reports, later postings beat earlier ones.
func (d *Dataset) MergeAmended() {
	type key struct {
		registrant string
		year       int
		period     string
		client     string
	}
	best := map[key]*Filing{}
	var order []key
	for _, f := range d.Filings {
		k := key{f.Registrant.Name, f.FilingYear, f.FilingPeriod, f.Client.Name}
		cur, seen := best[k]
		if !seen {
			best[k] = f
			order = append(order, k)
			continue
		}
		if supersedes(f, cur) {
			best[k] = f
		}
	}
	out := make([]*Filing, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	d.Filings = out
}

// supersedes reports whether candidate should replace cur: an
// amendment supersedes a report regardless of dates, otherwise the
// later posting wins.
func supersedes(candidate, cur *Filing) bool {
	if candidate.IsAmendment() && cur.IsReport() {
		return true
	}
	if cur.IsAmendment() && candidate.IsReport() {
		return false
	}
	return candidate.Posted >= cur.Posted
}

// ApplyFilter returns a new dataset holding the filings keep accepts.
func (d *Dataset) ApplyFilter(keep func(*Filing) bool) *Dataset {
	var out []*Filing
	for _, f := range d.Filings {
		if keep(f) {
			out = append(out, f)
		}
	}
	return &Dataset{Filings: out}
}

// Clients returns the distinct client names, sorted.
func (d *Dataset) Clients() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, f := range d.Filings {
		if _, dup := seen[f.Client.Name]; dup {
			continue
		}
		seen[f.Client.Name] = struct{}{}
		out = append(out, f.Client.Name)
	}
	sort.Strings(out)
	return out
}

// Reducer canonicalizes an organization name; the production
// implementation is orgnames.Reducer.
type Reducer interface {
	Reduce(name string) string
}

// MergeNames canonicalizes client names in place. The filed name is
// preserved in MergedFrom, and each distinct name is reduced once.
func (d *Dataset) MergeNames(r Reducer, logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	memo := map[string]string{}
	pre, post := map[string]struct{}{}, map[string]struct{}{}
	for _, f := range d.Filings {
		name := f.Client.Name
		if f.Client.MergedFrom == "" {
			f.Client.MergedFrom = name
		}
		merged, ok := memo[name]
		if !ok {
			merged = r.Reduce(name)
			memo[name] = merged
		}
		if merged != name {
			f.Client.Name = merged
		}
		pre[f.Client.MergedFrom] = struct{}{}
		post[f.Client.Name] = struct{}{}
	}
	logger.Printf("lda: merged %d client names to %d", len(pre), len(post))
}

// ResetNames undoes MergeNames, restoring the filed client names.
func (d *Dataset) ResetNames() {
	for _, f := range d.Filings {
		if f.Client.MergedFrom != "" {
			f.Client.Name = f.Client.MergedFrom
			f.Client.MergedFrom = ""
		}
	}
}

// Save writes the dataset as JSON.
func (d *Dataset) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("lda: save: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", " ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("lda: save: %w", err)
	}
	return nil
}

// LoadDataset reads a dataset saved with Save.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lda: load: %w", err)
	}
	defer f.Close()
	var d Dataset
	if err := json.NewDecoder(f).Decode(&d); err != nil {
		return nil, fmt.Errorf("lda: load %s: %w", path, err)
	}
	return &d, nil
}
