package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/couchbase/go-couchbase"

	"github.com/dustin/go-wikigraph"
)

// CouchbaseStore sets one document per page, keyed by page id.
type CouchbaseStore struct {
	bucket *couchbase.Bucket
}

// OpenCouchbase connects to bucket in the default pool of the cluster at
// url (e.g. http://localhost:8091/).
func OpenCouchbase(url, bucket string) (*CouchbaseStore, error) {
	b, err := couchbase.GetBucket(url, "default", bucket)
	if err != nil {
		return nil, err
	}
	return &CouchbaseStore{bucket: b}, nil
}

func (s *CouchbaseStore) Load(ctx context.Context, tm *wikigraph.TitleMapping, g wikigraph.LinkGraph) error {
	for n := range Nodes(tm, g) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.bucket.Set(strconv.FormatUint(n.ID, 10), 0, n); err != nil {
			return fmt.Errorf("setting %v: %w", n.ID, err)
		}
	}
	return nil
}

func (s *CouchbaseStore) Close() error {
	s.bucket.Close()
	return nil
}
