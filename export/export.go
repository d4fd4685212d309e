package export

import (
	"context"
	"fmt"
	"iter"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dustin/go-wikigraph"
	"github.com/dustin/go-wikigraph/config"
)

// Node is one page as stored in a document database.
type Node struct {
	ID        uint64   `json:"id" bson:"_id"`
	Title     string   `json:"title,omitempty" bson:"title,omitempty"`
	Links     []uint64 `json:"links,omitempty" bson:"links,omitempty"`
	Redirects []string `json:"redirects,omitempty" bson:"redirects,omitempty"`
}

// Nodes yields a Node for every page that has a title or outgoing links,
// in ascending id order.
func Nodes(tm *wikigraph.TitleMapping, g wikigraph.LinkGraph) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		redirects := map[string][]string{}
		for from, to := range tm.Redirects {
			redirects[to] = append(redirects[to], from)
		}

		ids := make([]uint64, 0, len(tm.IDToTitle)+len(g))
		for id := range tm.IDToTitle {
			ids = append(ids, id)
		}
		for id := range g {
			if _, ok := tm.IDToTitle[id]; !ok {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			n := Node{ID: id, Title: tm.IDToTitle[id]}
			if _, ok := g[id]; ok {
				n.Links = g.Targets(id)
			}
			if n.Title != "" {
				n.Redirects = redirects[n.Title]
				sort.Strings(n.Redirects)
			}
			if !yield(n) {
				return
			}
		}
	}
}

// A Store receives a finished mapping and graph.
type Store interface {
	Load(ctx context.Context, tm *wikigraph.TitleMapping, g wikigraph.LinkGraph) error
	Close() error
}

// LoadAll loads the artifacts into every store at once, stopping at the
// first failure.
func LoadAll(ctx context.Context, stores []Store, tm *wikigraph.TitleMapping, g wikigraph.LinkGraph) error {
	grp, ctx := errgroup.WithContext(ctx)
	for _, s := range stores {
		grp.Go(func() error {
			return s.Load(ctx, tm, g)
		})
	}
	return grp.Wait()
}

// FromConfig opens every store that has a destination configured. On
// error, the stores opened so far are closed.
func FromConfig(c config.Export) ([]Store, error) {
	var stores []Store
	fail := func(err error) ([]Store, error) {
		CloseAll(stores)
		return nil, err
	}

	if c.SQLite != "" {
		s, err := OpenSQLite(c.SQLite)
		if err != nil {
			return fail(fmt.Errorf("sqlite: %w", err))
		}
		stores = append(stores, s)
	}
	if c.Couchbase.URL != "" {
		s, err := OpenCouchbase(c.Couchbase.URL, c.Couchbase.Bucket)
		if err != nil {
			return fail(fmt.Errorf("couchbase: %w", err))
		}
		stores = append(stores, s)
	}
	if c.CouchDB != "" {
		s, err := OpenCouchDB(c.CouchDB)
		if err != nil {
			return fail(fmt.Errorf("couchdb: %w", err))
		}
		stores = append(stores, s)
	}
	if c.Mongo.URL != "" {
		s, err := OpenMongo(c.Mongo.URL, c.Mongo.Database, c.Mongo.Collection)
		if err != nil {
			return fail(fmt.Errorf("mongo: %w", err))
		}
		stores = append(stores, s)
	}
	if c.Elasticsearch.URL != "" {
		stores = append(stores, OpenElastic(c.Elasticsearch.URL, c.Elasticsearch.Index))
	}
	return stores, nil
}

// CloseAll closes every store, returning the first error.
func CloseAll(stores []Store) error {
	var rv error
	for _, s := range stores {
		if err := s.Close(); err != nil && rv == nil {
			rv = err
		}
	}
	return rv
}
