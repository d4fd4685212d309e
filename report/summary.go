package report

import (
	"sort"

	"github.com/dustin/go-wikigraph"
)

// Ranked is a page and how many pages link to it.
type Ranked struct {
	ID      uint64
	Title   string
	Inbound int
}

// Summary describes a finished mapping and graph.
type Summary struct {
	Pages     int
	Redirects int
	Sources   int
	Edges     int
	SelfLinks int

	// Redirects whose target has no page.
	DanglingRedirects []string
	// The pages with the most inbound links, most linked first.
	MostLinked []Ranked
}

// Summarize computes a Summary, keeping the top most linked pages.
func Summarize(tm *wikigraph.TitleMapping, g wikigraph.LinkGraph, top int) Summary {
	s := Summary{
		Pages:     len(tm.IDToTitle),
		Redirects: len(tm.Redirects),
		Sources:   len(g),
		Edges:     g.EdgeCount(),
	}

	for from, to := range tm.Redirects {
		if _, ok := tm.TitleToID[to]; !ok {
			s.DanglingRedirects = append(s.DanglingRedirects, from)
		}
	}
	sort.Strings(s.DanglingRedirects)

	inbound := map[uint64]int{}
	for from, set := range g {
		for to := range set {
			inbound[to]++
			if to == from {
				s.SelfLinks++
			}
		}
	}

	ranked := make([]Ranked, 0, len(inbound))
	for id, n := range inbound {
		ranked = append(ranked, Ranked{ID: id, Title: tm.IDToTitle[id], Inbound: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Inbound != ranked[j].Inbound {
			return ranked[i].Inbound > ranked[j].Inbound
		}
		return ranked[i].ID < ranked[j].ID
	})
	if top >= 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	s.MostLinked = ranked

	return s
}
