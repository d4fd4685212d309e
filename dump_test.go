package wikigraph

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dsnet/compress/bzip2"
)

func TestBuildFromBzip2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fruit.xml.bz2")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Error creating dump: %v", err)
	}
	w, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		t.Fatalf("Error creating bzip2 writer: %v", err)
	}
	if _, err := w.Write([]byte(fruitDump)); err != nil {
		t.Fatalf("Error compressing: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Error closing bzip2 writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Error closing dump: %v", err)
	}

	tm, err := BuildTitleMapping(path, Options{})
	if err != nil {
		t.Fatalf("Error building mapping: %v", err)
	}
	g, _, err := BuildLinkGraph(tm, path, Options{})
	if err != nil {
		t.Fatalf("Error building graph: %v", err)
	}
	if !reflect.DeepEqual(g, LinkGraph{3: {1: {}}}) {
		t.Errorf("Unexpected graph: %v", g)
	}
}

func TestOpenDumpCorruptBzip2(t *testing.T) {
	path := writeDump(t, "bad.xml.bz2", "definitely not bzip2")
	_, err := BuildTitleMapping(path, Options{})
	if err == nil {
		t.Fatalf("Expected an error reading a corrupt bzip2 dump")
	}
}
