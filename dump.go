package wikigraph

import (
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

type dumpFile struct {
	io.Reader
	closers []io.Closer
}

func (d *dumpFile) Close() error {
	var rv error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil && rv == nil {
			rv = err
		}
	}
	return rv
}

// OpenDump opens a dump file for reading. Files ending in .bz2 are
// decompressed on the fly.
func OpenDump(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		return f, nil
	}
	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &dumpFile{Reader: bz, closers: []io.Closer{f, bz}}, nil
}
