package lda

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Query is one set of LDA API parameters. List values are expanded by
// BuildQueries; a filing_year list is treated as an inclusive range.
type Query map[string]any

// BuildQueries expands every list-valued parameter into the cross
// product of scalar queries, since the API accepts one value per
// parameter. Expansion order is deterministic: keys are walked sorted.
func BuildQueries(q Query) []Query {
	expanded := Query{}
	for k, v := range q {
		expanded[k] = v
	}
	if years, ok := expanded["filing_year"]; ok {
		if r := yearRange(years); r != nil {
			expanded["filing_year"] = r
		}
	}

	var listKeys []string
	for k, v := range expanded {
		if isList(v) {
			listKeys = append(listKeys, k)
		}
	}
	sort.Strings(listKeys)
	if len(listKeys) == 0 {
		return []Query{expanded}
	}

	out := []Query{{}}
	for k, v := range expanded {
		if isList(v) {
			continue
		}
		out[0][k] = v
	}
	for _, k := range listKeys {
		vals := listValues(expanded[k])
		var next []Query
		for _, base := range out {
			for _, val := range vals {
				q := Query{}
				for bk, bv := range base {
					q[bk] = bv
				}
				q[k] = val
				next = append(next, q)
			}
		}
		out = next
	}
	return out
}

func isList(v any) bool {
	switch v.(type) {
	case []string, []int, []any:
		return true
	}
	return false
}

func listValues(v any) []any {
	switch vv := v.(type) {
	case []string:
		out := make([]any, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out
	case []int:
		out := make([]any, len(vv))
		for i, n := range vv {
			out[i] = n
		}
		return out
	case []any:
		return vv
	}
	return []any{v}
}

// yearRange turns a filing_year list into the inclusive run of years
// between its minimum and maximum.
func yearRange(v any) []int {
	vals := listValues(v)
	if len(vals) == 0 {
		return nil
	}
	min, max := 0, 0
	ok := false
	for _, val := range vals {
		n, isInt := val.(int)
		if !isInt {
			return nil
		}
		if !ok {
			min, max, ok = n, n, true
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if !ok {
		return nil
	}
	out := make([]int, 0, max-min+1)
	for y := min; y <= max; y++ {
		out = append(out, y)
	}
	return out
}

// Values encodes the query for the request URL.
func (q Query) Values() url.Values {
	vals := url.Values{}
	for k, v := range q {
		vals.Set(k, fmt.Sprint(v))
	}
	return vals
}

// exactSearches pulls the double-quoted phrases out of a parameter
// value; the API ignores quoting, so these become a post-filter.
func exactSearches(v any) []string {
	s := fmt.Sprint(v)
	var out []string
	for {
		open := strings.IndexByte(s, '"')
		if open < 0 {
			break
		}
		s = s[open+1:]
		end := strings.IndexByte(s, '"')
		if end < 0 {
			break
		}
		out = append(out, s[:end])
		s = s[end+1:]
	}
	return out
}

// ExactSearchFilter builds a filing predicate from the quoted phrases
// in the query: every phrase must appear, case-insensitively, in the
// field the parameter searches.
func ExactSearchFilter(q Query) func(*Filing) bool {
	filters := map[string][]string{}
	for k, v := range q {
		if phrases := exactSearches(v); len(phrases) > 0 {
			filters[k] = phrases
		}
	}
	if len(filters) == 0 {
		return func(*Filing) bool { return true }
	}
	return func(f *Filing) bool {
		for key, phrases := range filters {
			field := strings.ToLower(searchField(f, key))
			if field == "" {
				continue
			}
			for _, p := range phrases {
				if !strings.Contains(field, strings.ToLower(p)) {
					return false
				}
			}
		}
		return true
	}
}

// searchField maps an API search parameter to the filing field it
// queries. Unknown parameters are skipped rather than failing the
// filing.
func searchField(f *Filing, key string) string {
	switch key {
	case "client_name":
		return f.Client.Name
	case "client_general_description":
		return f.Client.GeneralDescription
	case "registrant_name":
		return f.Registrant.Name
	case "registrant_description":
		return f.Registrant.Description
	case "filing_specific_lobbying_issues":
		var sb strings.Builder
		for _, a := range f.Activities {
			sb.WriteString(a.Description)
			sb.WriteByte('\n')
		}
		return sb.String()
	}
	return ""
}
