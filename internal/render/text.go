package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/griffithind/sysstatus/internal/report"
)

// Text renders rows as aligned "key: value" lines. Section headers are
// printed as "[key]" and their entries are indented two spaces per level.
type Text struct{}

// Render writes the rows to w.
func (t *Text) Render(w io.Writer, rows []report.Row) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, r := range rows {
		if r.Kind == report.KindHeader {
			fmt.Fprintf(tw, "%s[%s]\n", indent(r.Depth), r.Key)
			continue
		}
		fmt.Fprintf(tw, "%s%s:\t%s\n", indent(r.Depth), r.Key, r.Text())
	}
	return tw.Flush()
}

// Pretty renders rows as a boxed table. Section headers become merged
// rows spanning both columns.
type Pretty struct {
	// Style defaults to table.StyleRounded.
	Style *table.Style
}

// Render writes the rows to w.
func (p *Pretty) Render(w io.Writer, rows []report.Row) error {
	tw := table.NewWriter()
	style := table.StyleRounded
	if p.Style != nil {
		style = *p.Style
	}
	tw.SetStyle(style)
	tw.AppendHeader(table.Row{"Key", "Value"})

	merged := table.RowConfig{AutoMerge: true}
	for _, r := range rows {
		label := indent(r.Depth) + r.Key
		if r.Kind == report.KindHeader {
			tw.AppendRow(table.Row{label, label}, merged)
			continue
		}
		tw.AppendRow(table.Row{label, r.Text()})
	}

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}
