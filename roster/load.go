package roster

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"time"
)

// Config points the loader at the legislator ontology files. The JSON
// files follow the congress-legislators schema; the CSV files carry
// identifier cross-references and are optional.
type Config struct {
	CurrentPath    string `json:"current_path"`
	HistoricalPath string `json:"historical_path"`
	ExecutivePath  string `json:"executive_path"`

	CRPMapPath     string `json:"crp_map_path"`
	CandidatesPath string `json:"candidates_path"`
	ManualIDPath   string `json:"manual_id_path"`

	// MinYear and MaxYear bound the roster to legislators whose
	// service overlaps [MinYear, MaxYear], inclusive.
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`

	LoadExecutive bool `json:"load_executive"`

	// Now anchors the executive in-office computation; zero means
	// time.Now. Congressional entries take their status from which
	// file they came from instead.
	Now time.Time `json:"-"`
}

func (c *Config) ApplyDefaults() {
	if c.MinYear == 0 {
		c.MinYear = 1990
	}
	if c.MaxYear == 0 {
		c.MaxYear = 9999
	}
	if c.Now.IsZero() {
		c.Now = time.Now()
	}
}

// Roster is the loaded legislator set. Legislators() excludes
// executives; All() includes them, in load order, so Index values are
// stable across runs.
type Roster struct {
	cfg         Config
	logger      *log.Logger
	legislators []*Legislator
	executives  []*Legislator
	all         []*Legislator

	scorer Scorer
	metric Metric

	views [3]view // indexed by Chamber, built lazily
}

// Load reads the configured files and derives the per-legislator
// fields the matcher needs.
func Load(cfg Config, logger *log.Logger) (*Roster, error) {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Roster{cfg: cfg, logger: logger}

	hist, err := loadFile(cfg.HistoricalPath)
	if err != nil {
		return nil, fmt.Errorf("roster: load historical: %w", err)
	}
	cur, err := loadFile(cfg.CurrentPath)
	if err != nil {
		return nil, fmt.Errorf("roster: load current: %w", err)
	}
	for _, l := range hist {
		l.CurrentlyInOffice = false
	}
	for _, l := range cur {
		l.CurrentlyInOffice = true
	}

	combined := append(hist, cur...)
	for _, l := range combined {
		if r.inWindow(l) {
			l.Index = len(r.legislators)
			r.legislators = append(r.legislators, l)
		}
	}

	if cfg.LoadExecutive && cfg.ExecutivePath != "" {
		execs, err := loadFile(cfg.ExecutivePath)
		if err != nil {
			return nil, fmt.Errorf("roster: load executive: %w", err)
		}
		today := cfg.Now.Format("2006-01-02")
		for _, e := range execs {
			if !r.inWindow(e) {
				continue
			}
			maxEnd := ""
			for _, t := range e.Terms {
				if t.End > maxEnd {
					maxEnd = t.End
				}
			}
			e.CurrentlyInOffice = maxEnd >= today
			// executives sit after the legislators in All order
			e.Index = len(r.legislators) + len(r.executives)
			r.executives = append(r.executives, e)
		}
	}

	r.all = append(append([]*Legislator{}, r.legislators...), r.executives...)

	for _, l := range r.all {
		derive(l)
	}
	if err := r.crossReferenceIDs(); err != nil {
		return nil, err
	}

	r.logger.Printf("roster: loaded %d legislators, %d executives (window %d-%d)",
		len(r.legislators), len(r.executives), cfg.MinYear, cfg.MaxYear)
	return r, nil
}

func loadFile(path string) ([]*Legislator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []*Legislator
	if err := json.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// inWindow keeps legislators whose service overlaps the configured
// year window: some term ends on or after MinYear and some term starts
// by the end of MaxYear. Dates are ISO strings, so the comparison is
// lexicographic against the bare year.
func (r *Roster) inWindow(l *Legislator) bool {
	minYear := strconv.Itoa(r.cfg.MinYear)
	maxYear := strconv.Itoa(r.cfg.MaxYear)
	endsAfter, startsBefore := false, false
	for _, t := range l.Terms {
		if t.End >= minYear {
			endsAfter = true
		}
		if t.Start <= maxYear {
			startsBefore = true
		}
	}
	return endsAfter && startsBefore
}

func derive(l *Legislator) {
	l.FullName = l.Name.Full()
	for _, t := range l.Terms {
		switch t.Type {
		case "rep":
			l.WasHouse = true
			if l.FirstHouseStart == "" || t.Start < l.FirstHouseStart {
				l.FirstHouseStart = t.Start
			}
		case "sen":
			l.WasSenate = true
			if l.FirstSenateStart == "" || t.Start < l.FirstSenateStart {
				l.FirstSenateStart = t.Start
			}
		case "prez", "viceprez":
			l.WasExec = true
		}
		if l.FirstTermStart == "" || t.Start < l.FirstTermStart {
			l.FirstTermStart = t.Start
		}
	}
}

// crossReferenceIDs fills in FEC IDs from the CRP map, merged
// candidate IDs from the candidates file, and applies manual
// overrides. All inputs are optional.
func (r *Roster) crossReferenceIDs() error {
	crp2fec, err := loadCRPMap(r.cfg.CRPMapPath)
	if err != nil {
		return fmt.Errorf("roster: crp map: %w", err)
	}
	fec2cand, err := loadCandidateMap(r.cfg.CandidatesPath)
	if err != nil {
		return fmt.Errorf("roster: candidates: %w", err)
	}
	manual, err := loadManualIDs(r.cfg.ManualIDPath)
	if err != nil {
		return fmt.Errorf("roster: manual ids: %w", err)
	}

	for _, l := range r.all {
		if len(l.IDs.FEC) == 0 && l.IDs.OpenSecrets != "" {
			for _, fecID := range crp2fec[l.IDs.OpenSecrets] {
				l.IDs.addFEC(fecID)
			}
		}
		if len(l.IDs.FEC) > 0 {
			seen := map[string]struct{}{}
			for _, fecID := range l.IDs.FEC {
				if cand, ok := fec2cand[fecID]; ok {
					seen[cand] = struct{}{}
				}
			}
			cands := make([]string, 0, len(seen))
			for c := range seen {
				cands = append(cands, c)
			}
			sort.Strings(cands)
			l.IDs.CandIDs = cands
		}
		applyManual(l, manual)
	}
	return nil
}

type manualOverride struct {
	newType  string
	newValue string
}

func applyManual(l *Legislator, manual map[[2]string][]manualOverride) {
	if len(manual) == 0 {
		return
	}
	for _, pair := range [][2]string{
		{"bioguide", l.IDs.Bioguide},
		{"thomas", l.IDs.Thomas},
		{"govtrack", strconv.FormatInt(l.IDs.GovTrack, 10)},
		{"icpsr", strconv.FormatInt(l.IDs.ICPSR, 10)},
		{"opensecrets", l.IDs.OpenSecrets},
	} {
		if pair[1] == "" || pair[1] == "0" {
			continue
		}
		for _, ov := range manual[pair] {
			setManualID(l, ov)
		}
	}
}

func setManualID(l *Legislator, ov manualOverride) {
	switch ov.newType {
	case "fec":
		l.IDs.addFEC(ov.newValue)
	case "CAND_ID":
		for _, have := range l.IDs.CandIDs {
			if have == ov.newValue {
				return
			}
		}
		l.IDs.CandIDs = append(l.IDs.CandIDs, ov.newValue)
		sort.Strings(l.IDs.CandIDs)
	case "bioguide":
		l.IDs.Bioguide = ov.newValue
	case "thomas":
		l.IDs.Thomas = ov.newValue
	case "opensecrets":
		l.IDs.OpenSecrets = ov.newValue
	case "govtrack":
		if v, err := strconv.ParseInt(ov.newValue, 10, 64); err == nil {
			l.IDs.GovTrack = v
		}
	case "icpsr":
		if v, err := strconv.ParseInt(ov.newValue, 10, 64); err == nil {
			l.IDs.ICPSR = v
		}
	}
}

func openCSV(path string) (*csv.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	return rd, f.Close, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

func loadCRPMap(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	rd, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	header, err := rd.Read()
	if err != nil {
		return nil, err
	}
	idx := headerIndex(header)
	cid, fec := idx["CID"], idx["FECCandID"]
	out := map[string][]string{}
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out[rec[cid]] = append(out[rec[cid]], rec[fec])
	}
	return out, nil
}

func loadCandidateMap(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	rd, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	header, err := rd.Read()
	if err != nil {
		return nil, err
	}
	idx := headerIndex(header)
	candID, merged := idx["CAND_ID"], idx["CAND_ID_MERGED"]
	out := map[string]string{}
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out[rec[candID]] = rec[merged]
	}
	return out, nil
}

func loadManualIDs(path string) (map[[2]string][]manualOverride, error) {
	if path == "" {
		return nil, nil
	}
	rd, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	header, err := rd.Read()
	if err != nil {
		return nil, err
	}
	idx := headerIndex(header)
	it, iv := idx["id_type"], idx["id_value"]
	nt, nv := idx["new_id_type"], idx["new_id_value"]
	out := map[[2]string][]manualOverride{}
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		key := [2]string{rec[it], rec[iv]}
		out[key] = append(out[key], manualOverride{newType: rec[nt], newValue: rec[nv]})
	}
	return out, nil
}

// Len is the number of congressional legislators (executives excluded).
func (r *Roster) Len() int { return len(r.legislators) }

// At returns the i'th entry across legislators then executives.
func (r *Roster) At(i int) *Legislator { return r.all[i] }

// Legislators returns the congressional entries in load order.
func (r *Roster) Legislators() []*Legislator { return r.legislators }

// LookupID finds entries whose identifier of the given type matches
// value. FEC and candidate IDs match any element of the list.
func (r *Roster) LookupID(idType, value string) []*Legislator {
	var out []*Legislator
	for _, l := range r.all {
		if idMatches(l, idType, value) {
			out = append(out, l)
		}
	}
	return out
}

func idMatches(l *Legislator, idType, value string) bool {
	switch idType {
	case "bioguide":
		return l.IDs.Bioguide == value
	case "thomas":
		return l.IDs.Thomas == value
	case "govtrack":
		return l.IDs.GovTrack != 0 && strconv.FormatInt(l.IDs.GovTrack, 10) == value
	case "icpsr":
		return l.IDs.ICPSR != 0 && strconv.FormatInt(l.IDs.ICPSR, 10) == value
	case "opensecrets":
		return l.IDs.OpenSecrets == value
	case "fec":
		for _, id := range l.IDs.FEC {
			if id == value {
				return true
			}
		}
	case "CAND_ID":
		for _, id := range l.IDs.CandIDs {
			if id == value {
				return true
			}
		}
	}
	return false
}
