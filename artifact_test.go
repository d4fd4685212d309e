package wikigraph

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestTitleMappingFile(t *testing.T) {
	tm := NewTitleMapping()
	tm.addPage(1, "Apple")
	tm.addPage(3, "Banana")
	tm.addRedirect("Apple Inc", "Apple")

	path := filepath.Join(t.TempDir(), "titlemap.cbor")
	if err := WriteFile(path, tm); err != nil {
		t.Fatalf("Error writing mapping: %v", err)
	}
	got, err := ReadTitleMappingFile(path)
	if err != nil {
		t.Fatalf("Error reading mapping: %v", err)
	}
	if !reflect.DeepEqual(got, tm) {
		t.Errorf("Expected %#v, got %#v", tm, got)
	}
}

func TestTitleMappingFieldNames(t *testing.T) {
	tm := NewTitleMapping()
	tm.addPage(1, "Apple")

	var buf bytes.Buffer
	if err := tm.Encode(&buf); err != nil {
		t.Fatalf("Error encoding: %v", err)
	}
	var raw map[string]interface{}
	if err := cbor.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Error decoding: %v", err)
	}
	for _, k := range []string{"str_u", "u_str", "redirs"} {
		if _, ok := raw[k]; !ok {
			t.Errorf("Expected field %q in %v", k, raw)
		}
	}
}

func TestLinkGraphFile(t *testing.T) {
	g := LinkGraph{}
	g.Add(3, 1)
	g.Add(3, 2)
	g.Add(7, 7)

	path := filepath.Join(t.TempDir(), "graph.cbor")
	if err := WriteFile(path, g); err != nil {
		t.Fatalf("Error writing graph: %v", err)
	}
	got, err := ReadLinkGraphFile(path)
	if err != nil {
		t.Fatalf("Error reading graph: %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("Expected %v, got %v", g, got)
	}
}

func TestLinkGraphEncodingIsStable(t *testing.T) {
	g := LinkGraph{}
	for i := uint64(0); i < 50; i++ {
		g.Add(i%7, i)
	}
	var a, b bytes.Buffer
	if err := g.Encode(&a); err != nil {
		t.Fatalf("Error encoding: %v", err)
	}
	if err := g.Encode(&b); err != nil {
		t.Fatalf("Error encoding: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("Expected identical encodings")
	}
}

type brokenArtifact struct{}

func (brokenArtifact) Encode(w io.Writer) error {
	w.Write([]byte("partial"))
	return os.ErrInvalid
}

func TestWriteFileLeavesNothingOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.cbor")
	err := WriteFile(path, brokenArtifact{})
	if err == nil {
		t.Fatalf("Expected an error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Error listing dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected an empty dir, got %v", entries)
	}
}
