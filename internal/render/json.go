package render

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/griffithind/sysstatus/internal/report"
)

// JSON renders rows as a nested JSON object in walk order. Scalars keep
// their JSON types.
type JSON struct {
	// Indent pretty-prints the output when non-empty.
	Indent string
}

// Render writes the object followed by a newline.
func (j *JSON) Render(w io.Writer, rows []report.Row) error {
	data, err := report.RowsToJSON(rows)
	if err != nil {
		return err
	}

	if j.Indent != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", j.Indent); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
