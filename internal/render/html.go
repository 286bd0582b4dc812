package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/griffithind/sysstatus/internal/report"
)

// DefaultHeaderColor is the background of section header rows.
const DefaultHeaderColor = "#e6e6e6"

// HTML renders rows as two-column table rows. Section headers span both
// columns; nesting is shown by header order only.
//
// Keys and values are written verbatim. Escape the report before
// rendering untrusted data.
type HTML struct {
	// Table wraps the rows in <table></table>.
	Table bool
	// HeaderColor overrides DefaultHeaderColor.
	HeaderColor string
}

// Render writes the rows to w.
func (h *HTML) Render(w io.Writer, rows []report.Row) error {
	color := h.HeaderColor
	if color == "" {
		color = DefaultHeaderColor
	}

	bw := bufio.NewWriter(w)
	if h.Table {
		bw.WriteString("<table>")
	}
	for _, r := range rows {
		if r.Kind == report.KindHeader {
			fmt.Fprintf(bw, "<tr><th colspan='2' bgcolor='%s'>%s</th></tr>", color, r.Key)
			continue
		}
		fmt.Fprintf(bw, "<tr><th align='right'>%s</th><td align='left' style='padding-left:10px'>%s</td></tr>", r.Key, r.Text())
	}
	if h.Table {
		bw.WriteString("</table>")
	}
	return bw.Flush()
}
