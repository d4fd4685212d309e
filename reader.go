package wikigraph

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html/charset"
)

// A Page is what the reader saw of one <page> element.
type Page struct {
	// ID is only meaningful when HasID is set.
	ID    uint64
	HasID bool
	// Title is nil when the page had no title text.
	Title []byte
	// Redirect is nil unless the page carried a <redirect/> marker.
	Redirect []byte
	// Text is all the <text> content of the page, concatenated.
	Text []byte
}

// pageState is the per-page "currently inside" bookkeeping. It is reset
// wholesale at every </page>.
type pageState struct {
	inPage, inTitle, inID, inText bool
	sawTitle, sawID               bool
	page                          Page
}

// A PageReader pulls pages out of a dump one at a time.
//
// It never gives up on structural oddities: they are reported to the
// sink and reading continues. Close tags are not matched against open
// ones by the decoder; the page state alone decides what they mean.
// Only errors from the underlying reader are returned.
type PageReader struct {
	x     *xml.Decoder
	sink  Sink
	st    pageState
	pages int64
	every int64
	done  bool
}

// NewPageReader gets a page reader over a dump stream.
func NewPageReader(r io.Reader, sink Sink) *PageReader {
	if sink == nil {
		sink = Discard
	}
	d := xml.NewDecoder(utf8Input(r))
	d.Strict = false
	d.CharsetReader = charset.NewReaderLabel
	return &PageReader{x: d, sink: sink, every: DefaultPageInterval}
}

// Pages returns how many </page> closes have been seen so far.
func (pr *PageReader) Pages() int64 {
	return pr.pages
}

func (pr *PageReader) warnf(format string, args ...interface{}) {
	pr.sink.Warn(fmt.Errorf("%w: "+format, append([]interface{}{ErrSyntax}, args...)...))
}

// Next gets the next page from the dump. It returns io.EOF once the dump
// is exhausted.
func (pr *PageReader) Next() (*Page, error) {
	if pr.done {
		return nil, io.EOF
	}
	for {
		t, err := pr.x.RawToken()
		if err != nil {
			return nil, pr.finish(err)
		}
		switch e := t.(type) {
		case xml.StartElement:
			pr.start(e)
		case xml.CharData:
			pr.text(e)
		case xml.EndElement:
			if p := pr.end(e); p != nil {
				return p, nil
			}
		}
	}
}

func (pr *PageReader) finish(err error) error {
	pr.done = true
	var serr *xml.SyntaxError
	switch {
	case err == io.EOF:
	case errors.As(err, &serr):
		pr.sink.Warn(fmt.Errorf("%w: %v (stopped after %d pages)", ErrSyntax, serr, pr.pages))
	default:
		return err
	}
	if pr.st.inPage {
		pr.warnf("dump ended inside <page>")
	}
	pr.sink.Progress("pages total", pr.pages)
	return io.EOF
}

func (pr *PageReader) start(e xml.StartElement) {
	st := &pr.st
	switch e.Name.Local {
	case "page":
		if st.inPage {
			pr.warnf("<page> inside <page>")
		}
		st.inPage = true
	case "title":
		if !st.inPage {
			pr.warnf("<title> without parent <page>")
			return
		}
		st.inTitle = true
	case "id":
		if !st.inPage {
			pr.warnf("<id> without parent <page>")
			return
		}
		st.inID = true
	case "text":
		if !st.inPage {
			pr.warnf("<text> without parent <page>")
			return
		}
		st.inText = true
	case "redirect":
		if !st.inPage {
			pr.warnf("<redirect> without parent <page>")
			return
		}
		for _, a := range e.Attr {
			if a.Name.Local == "title" {
				st.page.Redirect = []byte(a.Value)
			}
		}
		if st.page.Redirect == nil {
			pr.warnf("<redirect> without title attribute")
		}
	}
}

func (pr *PageReader) text(data xml.CharData) {
	st := &pr.st
	if st.inTitle && !st.sawTitle {
		st.sawTitle = true
		st.page.Title = data.Copy()
	}
	if st.inID && !st.sawID {
		st.sawID = true
		pr.parseID(data)
	}
	if st.inText {
		st.page.Text = append(st.page.Text, data...)
	}
}

func (pr *PageReader) parseID(data []byte) {
	if !validText(data) {
		pr.sink.Warn(fmt.Errorf("%w: id %q", ErrEncoding, data))
		return
	}
	id, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		pr.sink.Warn(fmt.Errorf("%w: %v", ErrBadID, err))
		return
	}
	pr.st.page.ID = id
	pr.st.page.HasID = true
}

// end handles a close tag, returning the finished page on </page>.
func (pr *PageReader) end(e xml.EndElement) *Page {
	st := &pr.st
	switch e.Name.Local {
	case "page":
		if !st.inPage {
			pr.warnf("closing </page> tag when not in <page>")
			pr.st = pageState{}
			return nil
		}
		p := st.page
		pr.st = pageState{}
		pr.pages++
		if pr.pages%pr.every == 0 {
			pr.sink.Progress("pages", pr.pages)
		}
		return &p
	case "title":
		if !st.inTitle {
			pr.warnf("closing </title> tag when not in <title>")
		}
		st.inTitle = false
	case "id":
		if !st.inID {
			pr.warnf("closing </id> tag when not in <id>")
		}
		st.inID = false
	case "text":
		if !st.inText {
			pr.warnf("closing </text> tag when not in <text>")
		}
		st.inText = false
	}
	return nil
}
