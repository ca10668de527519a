package graph

import (
	"fmt"
	"sort"
)

type link struct {
	lobbyist   int64
	legislator string
}

// Extrapolate adds the edges implied by shared lobbyists: when a
// lobbyist is linked to a legislator in any filing, every client that
// employs that lobbyist inherits the link. Returned edges are the
// input plus the new ones, which carry a synthetic source text and the
// Extrapolated flag. New edges are ordered by client, lobbyist and
// legislator so repeated runs agree.
func Extrapolate(edges []Edge) []Edge {
	lobbyistLinks := map[int64]map[link]struct{}{}
	clientLinks := map[string]map[link]struct{}{}
	clientLobbyists := map[string]map[int64]struct{}{}
	representative := map[link]int{}
	var clientOrder []string

	for i := range edges {
		e := &edges[i]
		if e.ClientName == "" || e.Legislator == "" {
			continue
		}
		l := link{e.LobbyistID, e.Legislator}
		if lobbyistLinks[e.LobbyistID] == nil {
			lobbyistLinks[e.LobbyistID] = map[link]struct{}{}
		}
		lobbyistLinks[e.LobbyistID][l] = struct{}{}
		if clientLinks[e.ClientName] == nil {
			clientLinks[e.ClientName] = map[link]struct{}{}
			clientLobbyists[e.ClientName] = map[int64]struct{}{}
			clientOrder = append(clientOrder, e.ClientName)
		}
		clientLinks[e.ClientName][l] = struct{}{}
		clientLobbyists[e.ClientName][e.LobbyistID] = struct{}{}
		if _, seen := representative[l]; !seen {
			representative[l] = i
		}
	}

	out := edges
	for _, client := range clientOrder {
		var missing []link
		for lobbyist := range clientLobbyists[client] {
			for l := range lobbyistLinks[lobbyist] {
				if _, have := clientLinks[client][l]; !have {
					missing = append(missing, l)
				}
			}
		}
		sort.Slice(missing, func(i, j int) bool {
			if missing[i].lobbyist != missing[j].lobbyist {
				return missing[i].lobbyist < missing[j].lobbyist
			}
			return missing[i].legislator < missing[j].legislator
		})
		for _, l := range missing {
			src := edges[representative[l]]
			e := src
			e.ClientName = client
			e.ClientNameUnmerged = client
			e.ClientIndustry = ""
			e.ContractValue = 0
			e.IncomePerLobbyist = 0
			e.IssueName = ""
			e.IssueDescription = ""
			e.IssueCode = ""
			e.RegistrantID = 0
			e.FilingIndex = -1
			e.LinkSourceText = fmt.Sprintf(
				"EXTRAPOLATED lobbyist=%d linked to legislator=(%s) in a filing",
				l.lobbyist, l.legislator)
			e.Extrapolated = true
			out = append(out, e)
		}
	}
	return out
}
