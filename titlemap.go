package wikigraph

import (
	"fmt"
	"io"
)

// TitleMapping links canonical titles to page ids and records redirects.
type TitleMapping struct {
	TitleToID map[string]uint64 `cbor:"str_u"`
	IDToTitle map[uint64]string `cbor:"u_str"`
	// Redirects maps a redirect page's title to the title it points at.
	Redirects map[string]string `cbor:"redirs"`
}

// NewTitleMapping gets an empty mapping.
func NewTitleMapping() *TitleMapping {
	return &TitleMapping{
		TitleToID: map[string]uint64{},
		IDToTitle: map[uint64]string{},
		Redirects: map[string]string{},
	}
}

// Resolve finds the page id a link title refers to. A redirect is
// followed at most once: a redirect pointing at another redirect does not
// resolve.
func (tm *TitleMapping) Resolve(title string) (uint64, bool) {
	if id, ok := tm.TitleToID[title]; ok {
		return id, true
	}
	if target, ok := tm.Redirects[title]; ok {
		id, ok := tm.TitleToID[target]
		return id, ok
	}
	return 0, false
}

// addPage records an article. Later entries win; whatever they displace
// is removed so both directions stay inverse.
func (tm *TitleMapping) addPage(id uint64, title string) {
	if old, ok := tm.TitleToID[title]; ok && old != id {
		delete(tm.IDToTitle, old)
	}
	if old, ok := tm.IDToTitle[id]; ok && old != title {
		delete(tm.TitleToID, old)
	}
	delete(tm.Redirects, title)
	tm.TitleToID[title] = id
	tm.IDToTitle[id] = title
}

func (tm *TitleMapping) addRedirect(title, target string) {
	if id, ok := tm.TitleToID[title]; ok {
		delete(tm.TitleToID, title)
		delete(tm.IDToTitle, id)
	}
	tm.Redirects[title] = target
}

// titleMapper accumulates a TitleMapping, one page at a time.
type titleMapper struct {
	tm   *TitleMapping
	sink Sink
}

func (m *titleMapper) page(p *Page) {
	if p.Title == nil {
		if p.HasID || p.Redirect != nil {
			m.sink.Warn(fmt.Errorf("%w: id=%d", ErrMissingTitle, p.ID))
		}
		return
	}
	title, err := NormalizeTitle(p.Title)
	if err != nil {
		m.sink.Warn(err)
		return
	}
	switch {
	case p.Redirect != nil:
		target, err := NormalizeTitle(p.Redirect)
		if err != nil {
			m.sink.Warn(fmt.Errorf("redirect from %q: %w", title, err))
			return
		}
		m.tm.addRedirect(title, target)
	case p.HasID:
		m.tm.addPage(p.ID, title)
	}
}

// ReadTitleMapping builds a TitleMapping from a dump stream.
func ReadTitleMapping(r io.Reader, opts Options) (*TitleMapping, error) {
	opts = opts.withDefaults()
	pr := NewPageReader(r, opts.Sink)
	pr.every = opts.PageInterval

	m := titleMapper{tm: NewTitleMapping(), sink: opts.Sink}
	for {
		p, err := pr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dump: %w", err)
		}
		m.page(p)
	}
	return m.tm, nil
}

// BuildTitleMapping builds a TitleMapping from the dump at path, which
// may be bzip2 compressed.
func BuildTitleMapping(path string, opts Options) (*TitleMapping, error) {
	f, err := OpenDump(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTitleMapping(f, opts)
}
