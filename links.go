package wikigraph

import (
	"iter"
	"regexp"
)

var linkRE *regexp.Regexp

func init() {
	// [[target#section|alias]], tolerating NUL padding between the
	// brackets. Section and alias are matched but not captured.
	linkRE = regexp.MustCompile(`\[\x00*\[([^|#\]]*)(?:#[^|\]]*)?(?:\|.*?)?\]\x00*\]`)
}

// LinkTargets yields the raw target of every wikilink in an article body,
// left to right. Section anchors and aliases are dropped, and links with
// an empty target are skipped.
//
// The sequence is lazy and may be ranged over any number of times. The
// yielded slices alias text.
func LinkTargets(text []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		scanLinks(text, yield, nil)
	}
}

// scanLinks drives the link regexp over text, calling empty (if set) for
// every link that has no target.
func scanLinks(text []byte, yield func([]byte) bool, empty func()) {
	pos := 0
	for pos < len(text) {
		m := linkRE.FindSubmatchIndex(text[pos:])
		if m == nil {
			return
		}
		start, end := pos+m[2], pos+m[3]
		pos += m[1]
		if start == end {
			if empty != nil {
				empty()
			}
			continue
		}
		if !yield(text[start:end:end]) {
			return
		}
	}
}
