package wikigraph

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode/utf8"
)

var spaceRE, trimRE *regexp.Regexp

func init() {
	spaceRE = regexp.MustCompile(`[ _]+`)
	// Only trims when the title ends in a single space; a lone leading
	// space is left alone otherwise.
	trimRE = regexp.MustCompile(`^ ?([^ ].*[^ ]) $`)
}

// NormalizeTitle turns raw title or link target bytes into the canonical
// title form used as map keys.
//
// Runs of spaces and underscores become a single space, a trailing space
// (and then an optional leading one) is trimmed, and a leading ASCII
// lowercase letter is capitalized. Non-ASCII first letters are left
// alone.
func NormalizeTitle(raw []byte) (string, error) {
	b := trimRE.ReplaceAll(spaceRE.ReplaceAll(raw, []byte(" ")), []byte("${1}"))
	if len(b) > 0 && b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	if !validText(b) {
		return "", fmt.Errorf("%w: title %q", ErrEncoding, b)
	}
	return string(b), nil
}

// validText reports whether b is UTF-8 free of U+FFFD. The reader turns
// ill-formed input into U+FFFD, which MediaWiki never allows in a title.
func validText(b []byte) bool {
	return utf8.Valid(b) && !bytes.ContainsRune(b, utf8.RuneError)
}
