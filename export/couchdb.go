package export

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-couch"

	"github.com/dustin/go-wikigraph"
)

type couchNode struct {
	ID  string `json:"_id"`
	Rev string `json:"_rev,omitempty"`
	Node
}

// CouchDBStore inserts one document per page, keyed by escaped title.
// A page that is already there gets overwritten.
type CouchDBStore struct {
	db couch.Database
}

// OpenCouchDB connects to the database at dburl.
func OpenCouchDB(dburl string) (*CouchDBStore, error) {
	db, err := couch.Connect(dburl)
	if err != nil {
		return nil, err
	}
	return &CouchDBStore{db: db}, nil
}

// escapeTitle keeps slashes and pluses in titles from being read as part
// of the document URL.
func escapeTitle(in string) string {
	return strings.Replace(strings.Replace(in, "/", "%2f", -1),
		"+", "%2b", -1)
}

func docID(n Node) string {
	if n.Title == "" {
		return "id:" + strconv.FormatUint(n.ID, 10)
	}
	return escapeTitle(n.Title)
}

func (s *CouchDBStore) Load(ctx context.Context, tm *wikigraph.TitleMapping, g wikigraph.LinkGraph) error {
	for n := range Nodes(tm, g) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.put(couchNode{ID: docID(n), Node: n}); err != nil {
			return fmt.Errorf("inserting %v: %w", n.ID, err)
		}
	}
	return nil
}

func (s *CouchDBStore) put(doc couchNode) error {
	_, _, err := s.db.Insert(&doc)
	var httpe *couch.HTTPError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &httpe) && httpe.Status == http.StatusConflict:
		return s.replace(doc)
	default:
		return err
	}
}

// replace overwrites an existing document with doc.
func (s *CouchDBStore) replace(doc couchNode) error {
	var prev couchNode
	if err := s.db.Retrieve(doc.ID, &prev); err != nil {
		return fmt.Errorf("retrieving existing %v: %w", doc.ID, err)
	}
	if prev.Rev == "" {
		return fmt.Errorf("got no rev from %v", doc.ID)
	}
	_, err := s.db.EditWith(&doc, doc.ID, prev.Rev)
	return err
}

func (s *CouchDBStore) Close() error {
	return nil
}
