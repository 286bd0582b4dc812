package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/griffithind/sysstatus/internal/errors"
)

// MarshalJSON encodes s as a JSON object in insertion order.
func (s *Section) MarshalJSON() ([]byte, error) {
	rows, err := Walk(s)
	if err != nil {
		return nil, err
	}
	return RowsToJSON(rows)
}

// RowsToJSON encodes rows produced by Walk as a nested JSON object.
// Scalars keep their JSON types; HTML characters are not escaped.
func RowsToJSON(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := []bool{true}
	for _, r := range rows {
		for len(first)-1 > r.Depth {
			buf.WriteByte('}')
			first = first[:len(first)-1]
		}
		if !first[len(first)-1] {
			buf.WriteByte(',')
		}
		first[len(first)-1] = false

		if err := writeJSONValue(&buf, r.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')

		if r.Kind == KindHeader {
			buf.WriteByte('{')
			first = append(first, true)
			continue
		}
		if err := writeJSONValue(&buf, r.Value); err != nil {
			return nil, fmt.Errorf("key %q: %w", r.Key, err)
		}
	}
	for len(first) > 1 {
		buf.WriteByte('}')
		first = first[:len(first)-1]
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON decodes a JSON object keeping the key order. Arrays become
// sections keyed by index and numbers become int64 when they fit,
// float64 otherwise.
func (s *Section) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// DecodeJSON reads one JSON object from r into a new section.
func DecodeJSON(r io.Reader) (*Section, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.ReportDecode(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.ReportDecode(fmt.Errorf("expected a JSON object, got %v", tok))
	}

	s, err := decodeJSONObject(dec, 1)
	if err != nil {
		return nil, errors.ReportDecode(err)
	}
	return s, nil
}

func decodeJSONObject(dec *json.Decoder, depth int) (*Section, error) {
	if depth > DefaultMaxDepth {
		return nil, fmt.Errorf("nesting exceeds %d levels", DefaultMaxDepth)
	}

	s := NewSection()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeJSONValue(dec, depth)
		if err != nil {
			return nil, err
		}
		s.Set(key, value)
	}
	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeJSONArray(dec *json.Decoder, depth int) (*Section, error) {
	if depth > DefaultMaxDepth {
		return nil, fmt.Errorf("nesting exceeds %d levels", DefaultMaxDepth)
	}

	s := NewSection()
	for i := 0; dec.More(); i++ {
		value, err := decodeJSONValue(dec, depth)
		if err != nil {
			return nil, err
		}
		s.Set(strconv.Itoa(i), value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeJSONValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec, depth+1)
		case '[':
			return decodeJSONArray(dec, depth+1)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		return v.Float64()
	default:
		return v, nil
	}
}
