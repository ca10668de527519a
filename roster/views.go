package roster

import "sync"

// view is the per-chamber slice of the roster with the parallel name
// lists the matcher scores against. Views are built once on first use;
// every list is index-aligned with legs.
type view struct {
	once sync.Once

	legs       []*Legislator
	names      []string // first middle last
	fullNames  []string // official full, falling back to names
	wikiNames  []string // wikipedia title, disambiguator stripped
	lastKeys   []string // folded lowercase surnames
	startYears []int    // year of first term in the chamber's scope
}

func (r *Roster) chamberView(c Chamber) *view {
	v := &r.views[c]
	v.once.Do(func() {
		for _, l := range r.legislators {
			switch c {
			case House:
				if !l.WasHouse {
					continue
				}
			case Senate:
				if !l.WasSenate {
					continue
				}
			}
			v.legs = append(v.legs, l)
			v.names = append(v.names, l.FullName)
			v.fullNames = append(v.fullNames, l.Name.Best())
			v.wikiNames = append(v.wikiNames, wikiName(l.IDs.Wikipedia))
			v.lastKeys = append(v.lastKeys, surnameKey(l.Name.Last))
			v.startYears = append(v.startYears, yearOf(l.FirstTermStart))
		}
	})
	return v
}

// yearValid reports whether the legislator at index i could have been
// mentioned in a filing from filingYear: their first term must have
// started by then. Zero disables the filter.
func (v *view) yearValid(i, filingYear int) bool {
	return filingYear == 0 || filingYear >= v.startYears[i]
}
