// Package wikigraph turns a wikipedia xml dump into a link graph.
//
// It works in two passes over the same dump. The first builds a
// TitleMapping (canonical title <-> page id, plus redirects); the
// second uses that mapping to resolve every [[wikilink]] in article text
// into an edge of a LinkGraph. Both artifacts can be written to disk
// between runs.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// See tools/wikigraph for the command line program driving all this.
package wikigraph
