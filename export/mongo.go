package export

import (
	"context"
	"fmt"

	"gopkg.in/mgo.v2"

	"github.com/dustin/go-wikigraph"
)

// Titles are unique, and a reload should not duplicate them.
var titleIndex = mgo.Index{
	Key:        []string{"title"},
	Unique:     true,
	DropDups:   true,
	Background: true,
	Sparse:     true,
}

// MongoStore inserts one document per page. Pages that are already
// present are counted in Dups and left alone.
type MongoStore struct {
	session    *mgo.Session
	database   string
	collection string

	Dups int
}

// OpenMongo dials url and makes sure the title index exists.
func OpenMongo(url, database, collection string) (*MongoStore, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, err
	}
	err = session.DB(database).C(collection).EnsureIndex(titleIndex)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("creating title index: %w", err)
	}
	return &MongoStore{session: session, database: database, collection: collection}, nil
}

func (s *MongoStore) Load(ctx context.Context, tm *wikigraph.TitleMapping, g wikigraph.LinkGraph) error {
	c := s.session.DB(s.database).C(s.collection)
	for n := range Nodes(tm, g) {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.Insert(&n)
		switch {
		case err == nil:
		case mgo.IsDup(err):
			s.Dups++
		default:
			return fmt.Errorf("inserting %v: %w", n.ID, err)
		}
	}
	return nil
}

func (s *MongoStore) Close() error {
	s.session.Close()
	return nil
}
