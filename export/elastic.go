package export

import (
	"context"
	"strconv"

	"github.com/dustin/go-elasticsearch"

	"github.com/dustin/go-wikigraph"
)

// How many updates go out per bulk request.
const batchSize = 1000

// ElasticStore indexes one document per page through the bulk API.
// The bulk loader reports nothing back, so documents the server rejects
// are lost without an error from Load.
type ElasticStore struct {
	url   string
	index string
}

// OpenElastic gets a store for index on the server at url. Nothing is
// contacted until Load.
func OpenElastic(url, index string) *ElasticStore {
	return &ElasticStore{url: url, index: index}
}

func (s *ElasticStore) Load(ctx context.Context, tm *wikigraph.TitleMapping, g wikigraph.LinkGraph) error {
	es := elasticsearch.ElasticSearch{URL: s.url}
	bulkLoader := es.Bulk()
	defer bulkLoader.Quit()

	counter := 0
	for n := range Nodes(tm, g) {
		if err := ctx.Err(); err != nil {
			return err
		}
		counter++
		if counter > batchSize {
			bulkLoader.SendBatch()
			counter = 0
		}
		ui := elasticsearch.UpdateInstruction{
			Id:    strconv.FormatUint(n.ID, 10),
			Index: s.index,
			Type:  "page",
			Body: map[string]interface{}{
				"title":     n.Title,
				"links":     n.Links,
				"redirects": n.Redirects,
			},
		}
		bulkLoader.Update(&ui)
	}
	return nil
}

func (s *ElasticStore) Close() error {
	return nil
}
