package wikigraph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// recorder is a Sink that keeps everything it's told.
type recorder struct {
	warnings []error
	progress map[string]int64
}

func (r *recorder) Warn(err error) {
	r.warnings = append(r.warnings, err)
}

func (r *recorder) Progress(counter string, n int64) {
	if r.progress == nil {
		r.progress = map[string]int64{}
	}
	r.progress[counter] = n
}

func (r *recorder) count(target error) int {
	n := 0
	for _, err := range r.warnings {
		if errors.Is(err, target) {
			n++
		}
	}
	return n
}

func writeDump(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Error writing dump: %v", err)
	}
	return path
}

// fruitDump holds the pages the mapping and graph tests share.
const fruitDump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10">
  <siteinfo>
    <sitename>Wikipedia</sitename>
  </siteinfo>
  <page>
    <title>Apple</title>
    <ns>0</ns>
    <id>1</id>
    <revision>
      <id>1001</id>
      <contributor><username>someone</username><id>77</id></contributor>
      <text xml:space="preserve"></text>
    </revision>
  </page>
  <page>
    <title>Apple Inc</title>
    <ns>0</ns>
    <id>2</id>
    <redirect title="Apple" />
  </page>
  <page>
    <title>Banana</title>
    <ns>0</ns>
    <id>3</id>
    <revision>
      <id>1003</id>
      <text xml:space="preserve">[[Apple Inc]] and [[Apple|fruit]]</text>
    </revision>
  </page>
  <page>
    <title>Cherry</title>
    <ns>0</ns>
    <id>4</id>
    <revision>
      <id>1004</id>
      <text xml:space="preserve">[[Nonexistent Page]]</text>
    </revision>
  </page>
</mediawiki>
`
