package render

import (
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/griffithind/sysstatus/internal/report"
)

// Entry is one node of the ordered tree printed by Dump. Value holds a
// scalar or, for sections, []Entry.
type Entry struct {
	Key   string
	Value any
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump prints a typed debug dump of the report tree.
type Dump struct{}

// Render writes the dump to w.
func (d *Dump) Render(w io.Writer, rows []report.Row) error {
	entries, _ := Tree(rows)
	dumpConfig.Fdump(w, entries)
	return nil
}

// Tree rebuilds the ordered entry tree from walked rows. It returns the
// entries and the number of rows consumed.
func Tree(rows []report.Row) ([]Entry, int) {
	return buildTree(rows, 0, 0)
}

func buildTree(rows []report.Row, i, depth int) ([]Entry, int) {
	entries := []Entry{}
	for i < len(rows) && rows[i].Depth == depth {
		r := rows[i]
		i++
		if r.Kind == report.KindHeader {
			var children []Entry
			children, i = buildTree(rows, i, depth+1)
			entries = append(entries, Entry{Key: r.Key, Value: children})
			continue
		}
		entries = append(entries, Entry{Key: r.Key, Value: r.Value})
	}
	return entries, i
}
