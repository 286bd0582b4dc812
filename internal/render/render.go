// Package render turns the rows of a walked report into HTML, JSON, plain
// text, a boxed terminal table or a debug dump.
//
// Renderers never escape keys or values. A caller that embeds HTML output
// in a live document must escape the report first, for example with
// report.Escape(s, html.EscapeString).
package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/report"
)

// Format represents the output format.
type Format string

const (
	FormatHTML   Format = "html"
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatPretty Format = "pretty"
	FormatDump   Format = "dump"
)

// Formats lists every supported format name.
func Formats() []string {
	return []string{
		string(FormatHTML),
		string(FormatJSON),
		string(FormatText),
		string(FormatPretty),
		string(FormatDump),
	}
}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if string(f) == known {
			return f, nil
		}
	}
	return "", errors.UnknownFormat(name, Formats())
}

// Renderer writes walked report rows to w.
type Renderer interface {
	Render(w io.Writer, rows []report.Row) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(w io.Writer, rows []report.Row) error

// Render calls f.
func (f RendererFunc) Render(w io.Writer, rows []report.Row) error {
	return f(w, rows)
}

// New returns the default renderer for format.
func New(format Format) (Renderer, error) {
	switch format {
	case FormatHTML:
		return &HTML{Table: true}, nil
	case FormatJSON:
		return &JSON{Indent: "  "}, nil
	case FormatText:
		return &Text{}, nil
	case FormatPretty:
		return &Pretty{}, nil
	case FormatDump:
		return &Dump{}, nil
	}
	return nil, errors.UnknownFormat(string(format), Formats())
}

// Section walks s and renders it with r.
func Section(w io.Writer, r Renderer, s *report.Section, opts ...report.WalkOption) error {
	rows, err := report.Walk(s, opts...)
	if err != nil {
		return err
	}
	return r.Render(w, rows)
}

const (
	preBegin = `<pre style="word-break:break-word">`
	preEnd   = `</pre>`
)

// Printable renders s as a string. HTML output is a complete <table>.
// With pretty set, JSON and dump output is wrapped in a <pre> block.
func Printable(format Format, s *report.Section, pretty bool, opts ...report.WalkOption) (string, error) {
	r, err := New(format)
	if err != nil {
		return "", err
	}
	if j, ok := r.(*JSON); ok && !pretty {
		j.Indent = ""
	}

	var buf bytes.Buffer
	wrap := pretty && (format == FormatJSON || format == FormatDump)
	if wrap {
		buf.WriteString(preBegin)
	}
	if err := Section(&buf, r, s, opts...); err != nil {
		return "", err
	}
	if wrap {
		buf.WriteString(preEnd)
	}
	return buf.String(), nil
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
