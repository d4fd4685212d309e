package wikigraph

import (
	"fmt"
	"io"
	"sort"
)

// LinkGraph maps a source page id to the set of page ids it links to.
type LinkGraph map[uint64]map[uint64]struct{}

// Add inserts the edge from -> to.
func (g LinkGraph) Add(from, to uint64) {
	set, ok := g[from]
	if !ok {
		set = map[uint64]struct{}{}
		g[from] = set
	}
	set[to] = struct{}{}
}

// Has reports whether the edge from -> to exists.
func (g LinkGraph) Has(from, to uint64) bool {
	_, ok := g[from][to]
	return ok
}

// Targets gets the destinations of from in ascending order.
func (g LinkGraph) Targets(from uint64) []uint64 {
	set := g[from]
	rv := make([]uint64, 0, len(set))
	for id := range set {
		rv = append(rv, id)
	}
	sort.Slice(rv, func(i, j int) bool { return rv[i] < rv[j] })
	return rv
}

// Sources gets every source id in ascending order.
func (g LinkGraph) Sources() []uint64 {
	rv := make([]uint64, 0, len(g))
	for id := range g {
		rv = append(rv, id)
	}
	sort.Slice(rv, func(i, j int) bool { return rv[i] < rv[j] })
	return rv
}

// EdgeCount is the total number of distinct edges.
func (g LinkGraph) EdgeCount() int {
	n := 0
	for _, set := range g {
		n += len(set)
	}
	return n
}

// GraphStats counts what happened during a graph pass.
type GraphStats struct {
	Pages      int64
	GoodEdges  int64
	BadEdges   int64
	EmptyLinks int64
	BadTitles  int64
}

// graphBuilder accumulates a LinkGraph against a finished TitleMapping.
type graphBuilder struct {
	titles *TitleMapping
	edges  LinkGraph
	stats  GraphStats
	sink   Sink
	every  int64
}

func (b *graphBuilder) page(p *Page) {
	b.stats.Pages++
	if len(p.Text) == 0 {
		return
	}
	if !p.HasID {
		b.sink.Warn(fmt.Errorf("%w: text of %q", ErrMissingID, p.Title))
		return
	}
	scanLinks(p.Text, func(raw []byte) bool {
		b.link(p.ID, raw)
		return true
	}, func() {
		b.stats.EmptyLinks++
		b.sink.Warn(fmt.Errorf("%w: in page %d", ErrEmptyLink, p.ID))
	})
}

func (b *graphBuilder) link(from uint64, raw []byte) {
	title, err := NormalizeTitle(raw)
	if err != nil {
		b.stats.BadTitles++
		b.sink.Warn(fmt.Errorf("link in page %d: %w", from, err))
		return
	}
	to, ok := b.titles.Resolve(title)
	if !ok {
		b.stats.BadEdges++
		if b.stats.BadEdges%b.every == 0 {
			b.sink.Warn(fmt.Errorf("%w: %q from page %d (%d so far)",
				ErrDanglingLink, title, from, b.stats.BadEdges))
		}
		return
	}
	b.edges.Add(from, to)
	b.stats.GoodEdges++
	if b.stats.GoodEdges%b.every == 0 {
		b.sink.Progress("good edges", b.stats.GoodEdges)
	}
}

// ReadLinkGraph builds the link graph of a dump stream, resolving link
// targets through titles.
func ReadLinkGraph(titles *TitleMapping, r io.Reader, opts Options) (LinkGraph, GraphStats, error) {
	opts = opts.withDefaults()
	pr := NewPageReader(r, opts.Sink)
	pr.every = opts.PageInterval

	b := graphBuilder{
		titles: titles,
		edges:  LinkGraph{},
		sink:   opts.Sink,
		every:  opts.EdgeInterval,
	}
	for {
		p, err := pr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.stats, fmt.Errorf("reading dump: %w", err)
		}
		b.page(p)
	}
	opts.Sink.Progress("good edges total", b.stats.GoodEdges)
	opts.Sink.Progress("bad edges total", b.stats.BadEdges)
	return b.edges, b.stats, nil
}

// BuildLinkGraph builds the link graph of the dump at path. titles must
// come from a previous BuildTitleMapping over the same dump.
func BuildLinkGraph(titles *TitleMapping, path string, opts Options) (LinkGraph, GraphStats, error) {
	f, err := OpenDump(path)
	if err != nil {
		return nil, GraphStats{}, err
	}
	defer f.Close()
	return ReadLinkGraph(titles, f, opts)
}
