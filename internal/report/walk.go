package report

import (
	"strings"

	"github.com/griffithind/sysstatus/internal/errors"
)

// DefaultMaxDepth is the nesting limit applied by Walk unless overridden.
const DefaultMaxDepth = 64

// Kind distinguishes section headers from key/value rows.
type Kind int

const (
	// KindRow is a key/value pair.
	KindRow Kind = iota
	// KindHeader introduces a nested section and spans both columns.
	KindHeader
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindHeader {
		return "header"
	}
	return "row"
}

// Row is one record of a flattened report.
type Row struct {
	Kind  Kind
	Key   string
	Value any // nil for headers
	Depth int
}

// Text returns the display string of the row value.
func (r Row) Text() string {
	if r.Kind == KindHeader {
		return ""
	}
	return FormatScalar(r.Value)
}

type walkOptions struct {
	maxDepth int
}

// WalkOption configures Walk and Visit.
type WalkOption func(*walkOptions)

// WithMaxDepth limits how deeply sections may nest. A limit of zero or
// less disables the depth check; cycles are still detected.
func WithMaxDepth(n int) WalkOption {
	return func(o *walkOptions) {
		o.maxDepth = n
	}
}

// Walk flattens s depth-first in insertion order. A nested section
// yields a header row followed immediately by its own rows at Depth+1.
//
// Keys and values are returned verbatim; nothing is escaped. Callers
// embedding rows in markup must escape them first (see Escape).
//
// A section that contains itself fails with REPORT_CYCLE and nesting past
// the depth limit fails with REPORT_TOO_DEEP. The same section may appear
// in several places as long as it is not its own ancestor.
func Walk(s *Section, opts ...WalkOption) ([]Row, error) {
	rows := make([]Row, 0, s.Len())
	err := Visit(s, func(r Row) error {
		rows = append(rows, r)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Visit is like Walk but streams each row to fn. Visiting stops at the
// first error returned by fn.
func Visit(s *Section, fn func(Row) error, opts ...WalkOption) error {
	o := walkOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	w := &walker{
		opts:     o,
		fn:       fn,
		visiting: make(map[*Section]bool),
	}
	if s == nil {
		return nil
	}
	return w.walk(s, 0, nil)
}

type walker struct {
	opts     walkOptions
	fn       func(Row) error
	visiting map[*Section]bool
}

func (w *walker) walk(s *Section, depth int, path []string) error {
	if w.visiting[s] {
		return errors.ReportCycle(pathString(path))
	}
	if w.opts.maxDepth > 0 && depth > w.opts.maxDepth {
		return errors.ReportTooDeep(pathString(path), w.opts.maxDepth)
	}

	w.visiting[s] = true
	defer delete(w.visiting, s)

	for _, key := range s.keys {
		value := s.values[key]
		if child, ok := value.(*Section); ok {
			if err := w.fn(Row{Kind: KindHeader, Key: key, Depth: depth}); err != nil {
				return err
			}
			childPath := append(path[:len(path):len(path)], key)
			if err := w.walk(child, depth+1, childPath); err != nil {
				return err
			}
			continue
		}
		if err := w.fn(Row{Kind: KindRow, Key: key, Value: value, Depth: depth}); err != nil {
			return err
		}
	}
	return nil
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "."
	}
	return strings.Join(path, ".")
}

// FromRows rebuilds a section from rows produced by Walk.
func FromRows(rows []Row) *Section {
	root := NewSection()
	stack := []*Section{root}
	for _, r := range rows {
		if r.Depth+1 < len(stack) {
			stack = stack[:r.Depth+1]
		}
		current := stack[len(stack)-1]
		if r.Kind == KindHeader {
			child := NewSection()
			current.Set(r.Key, child)
			stack = append(stack, child)
			continue
		}
		current.Set(r.Key, r.Value)
	}
	return root
}

// Clone returns a deep copy of s. Sections shared between several parents
// are copied once per occurrence.
func Clone(s *Section, opts ...WalkOption) (*Section, error) {
	rows, err := Walk(s, opts...)
	if err != nil {
		return nil, err
	}
	return FromRows(rows), nil
}

// Escape returns a deep copy of s with every key and scalar value passed
// through escape. Scalars become strings.
func Escape(s *Section, escape func(string) string, opts ...WalkOption) (*Section, error) {
	rows, err := Walk(s, opts...)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Key = escape(rows[i].Key)
		if rows[i].Kind == KindRow {
			rows[i].Value = escape(rows[i].Text())
		}
	}
	return FromRows(rows), nil
}
