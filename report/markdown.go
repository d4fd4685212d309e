package report

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
)

// WriteMarkdown renders s to w.
func WriteMarkdown(w io.Writer, s Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Link Graph Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Measure", "Count"},
		Rows: [][]string{
			{"Pages", humanize.Comma(int64(s.Pages))},
			{"Redirects", humanize.Comma(int64(s.Redirects))},
			{"Pages with links", humanize.Comma(int64(s.Sources))},
			{"Links", humanize.Comma(int64(s.Edges))},
			{"Self links", humanize.Comma(int64(s.SelfLinks))},
			{"Dangling redirects", humanize.Comma(int64(len(s.DanglingRedirects)))},
		},
	})
	md.PlainText("")

	md.H2("Most Linked Pages")
	md.PlainText("")
	if len(s.MostLinked) == 0 {
		md.PlainText("No links.")
	} else {
		rows := make([][]string, 0, len(s.MostLinked))
		for _, r := range s.MostLinked {
			title := r.Title
			if title == "" {
				title = "(untitled)"
			}
			rows = append(rows, []string{
				strconv.FormatUint(r.ID, 10), title, humanize.Comma(int64(r.Inbound)),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"ID", "Title", "Inbound"},
			Rows:   rows,
		})
	}
	md.PlainText("")

	if len(s.DanglingRedirects) > 0 {
		md.H2("Dangling Redirects")
		md.PlainText("")
		md.BulletList(s.DanglingRedirects...)
		md.PlainText("")
	}

	return md.Build()
}
