package wikigraph

import "errors"

// Conditions reported to a Sink while reading a dump. None of these stop a
// pass; they only make the output less complete. I/O failures are returned
// directly from the Build functions instead.
var (
	// ErrSyntax marks malformed or unexpectedly nested markup.
	ErrSyntax = errors.New("xml syntax")
	// ErrEncoding marks a title, id or link target that is not valid UTF-8.
	ErrEncoding = errors.New("invalid UTF-8")
	// ErrBadID marks id text that does not parse as an unsigned integer.
	ErrBadID = errors.New("unparseable page id")
	// ErrMissingID marks a page that has text but no usable id.
	ErrMissingID = errors.New("page has no id")
	// ErrMissingTitle marks a page that has no title.
	ErrMissingTitle = errors.New("page has no title")
	// ErrDanglingLink marks a link that resolves neither directly nor
	// through one redirect.
	ErrDanglingLink = errors.New("dangling link")
	// ErrEmptyLink marks a wikilink with no target title.
	ErrEmptyLink = errors.New("link with no title")
)
