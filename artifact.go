package wikigraph

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// An Artifact is something that can be written out after a pass.
type Artifact interface {
	Encode(w io.Writer) error
}

// Encode writes the mapping as CBOR.
func (tm *TitleMapping) Encode(w io.Writer) error {
	return encMode.NewEncoder(w).Encode(tm)
}

// DecodeTitleMapping reads a mapping written by Encode.
func DecodeTitleMapping(r io.Reader) (*TitleMapping, error) {
	tm := NewTitleMapping()
	if err := cbor.NewDecoder(r).Decode(tm); err != nil {
		return nil, err
	}
	if tm.TitleToID == nil {
		tm.TitleToID = map[string]uint64{}
	}
	if tm.IDToTitle == nil {
		tm.IDToTitle = map[uint64]string{}
	}
	if tm.Redirects == nil {
		tm.Redirects = map[string]string{}
	}
	return tm, nil
}

// Encode writes the graph as CBOR, each source id mapped to a sorted
// array of destination ids.
func (g LinkGraph) Encode(w io.Writer) error {
	flat := make(map[uint64][]uint64, len(g))
	for from := range g {
		flat[from] = g.Targets(from)
	}
	return encMode.NewEncoder(w).Encode(flat)
}

// DecodeLinkGraph reads a graph written by Encode.
func DecodeLinkGraph(r io.Reader) (LinkGraph, error) {
	var flat map[uint64][]uint64
	if err := cbor.NewDecoder(r).Decode(&flat); err != nil {
		return nil, err
	}
	g := make(LinkGraph, len(flat))
	for from, tos := range flat {
		set := make(map[uint64]struct{}, len(tos))
		for _, to := range tos {
			set[to] = struct{}{}
		}
		g[from] = set
	}
	return g, nil
}

// WriteFile encodes a into path. The data goes to a temporary file next
// to path first, so path is either left alone or fully written.
func WriteFile(path string, a Artifact) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := a.Encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadTitleMappingFile loads a mapping written with WriteFile.
func ReadTitleMappingFile(path string) (*TitleMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeTitleMapping(f)
}

// ReadLinkGraphFile loads a graph written with WriteFile.
func ReadLinkGraphFile(path string) (LinkGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeLinkGraph(f)
}
