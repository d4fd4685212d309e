package wikigraph

import (
	"bytes"
	"io"
	"regexp"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// How much of the stream is examined for an XML declaration.
const declPeek = 512

var declRE *regexp.Regexp

func init() {
	declRE = regexp.MustCompile(`^(?:\xef\xbb\xbf)?\s*<\?xml[^>]*\sencoding\s*=\s*["']([^"']+)["']`)
}

func isNUL(r rune) bool { return r == 0 }

// xmlRune maps characters the XML decoder would choke on to U+FFFD.
// Ill-formed bytes arrive here as utf8.RuneError and stay that way.
func xmlRune(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return '\uFFFD'
	}
	return r
}

// utf8Input cleans r so that no byte of a UTF-8 dump can stop the
// decoder: NULs are dropped, and ill-formed sequences and the other
// characters XML forbids become U+FFFD.
// Dumps declaring another encoding pass through untouched for the
// decoder's CharsetReader.
func utf8Input(r io.Reader) io.Reader {
	head := make([]byte, declPeek)
	n, err := io.ReadFull(r, head)
	head = head[:n]

	rest := r
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
	default:
		rest = failedReader{err}
	}
	src := io.MultiReader(bytes.NewReader(head), rest)

	if m := declRE.FindSubmatch(head); m != nil {
		if _, name := charset.Lookup(string(m[1])); name != "" && name != "utf-8" {
			return src
		}
	}
	return transform.NewReader(src, transform.Chain(
		runes.Remove(runes.Predicate(isNUL)), runes.Map(xmlRune)))
}

// failedReader replays an error hit while looking at the head of a dump.
type failedReader struct {
	err error
}

func (f failedReader) Read([]byte) (int, error) {
	return 0, f.err
}
