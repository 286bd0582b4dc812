package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionKeepsInsertionOrder(t *testing.T) {
	s := NewSection().
		Set("wp_ver", "6.4").
		Set("abspath", "/var/www").
		Set("debug", false)

	assert.Equal(t, []string{"wp_ver", "abspath", "debug"}, s.Keys())
	assert.Equal(t, 3, s.Len())

	s.Set("wp_ver", "6.5")
	assert.Equal(t, []string{"wp_ver", "abspath", "debug"}, s.Keys(), "re-setting keeps position")

	v, ok := s.Get("wp_ver")
	require.True(t, ok)
	assert.Equal(t, "6.5", v)
}

func TestSectionZeroValue(t *testing.T) {
	var s Section
	s.Set("a", 1)
	assert.Equal(t, 1, s.Len())

	var nilSection *Section
	assert.Equal(t, 0, nilSection.Len())
	assert.Nil(t, nilSection.Keys())
	_, ok := nilSection.Get("a")
	assert.False(t, ok)
}

func TestSectionChild(t *testing.T) {
	s := NewSection()
	theme := s.Section("theme")
	theme.Set("name", "Twenty")

	assert.Same(t, theme, s.Section("theme"))

	s.Set("plain", "x")
	replaced := s.Section("plain")
	assert.Equal(t, 0, replaced.Len())
	assert.Equal(t, []string{"theme", "plain"}, s.Keys())
}

func TestSectionDelete(t *testing.T) {
	s := NewSection().Set("a", 1).Set("b", 2).Set("c", 3)

	assert.True(t, s.Delete("b"))
	assert.False(t, s.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, s.Keys())

	s.Set("b", 4)
	assert.Equal(t, []string{"a", "c", "b"}, s.Keys())
}

func TestSectionKeysIsACopy(t *testing.T) {
	s := NewSection().Set("a", 1)
	keys := s.Keys()
	keys[0] = "z"
	assert.Equal(t, []string{"a"}, s.Keys())
}

func TestSectionRangeStops(t *testing.T) {
	s := NewSection().Set("a", 1).Set("b", 2).Set("c", 3)

	var seen []string
	s.Range(func(k string, _ any) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestSectionMerge(t *testing.T) {
	s := NewSection().Set("a", 1).Set("b", 2)
	s.Merge(NewSection().Set("b", 20).Set("c", 30))

	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
	v, _ := s.Get("b")
	assert.Equal(t, 20, v)
}

type mode string

type version struct{ major, minor int }

func (v version) String() string { return "v1.2" }

func TestSetNormalizesValues(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	var nilSection *Section

	s := NewSection().
		Set("map", map[string]int{"b": 2, "a": 1}).
		Set("list", []string{"x", "y"}).
		Set("bytes", []byte("raw")).
		Set("err", errors.New("boom")).
		Set("stringer", version{1, 2}).
		Set("time", ts).
		Set("named", mode("enforcing")).
		Set("nil section", nilSection)

	m, _ := s.Get("map")
	require.IsType(t, &Section{}, m)
	assert.Equal(t, []string{"a", "b"}, m.(*Section).Keys())

	l, _ := s.Get("list")
	require.IsType(t, &Section{}, l)
	assert.Equal(t, []string{"0", "1"}, l.(*Section).Keys())

	for key, want := range map[string]any{
		"bytes":       "raw",
		"err":         "boom",
		"stringer":    "v1.2",
		"time":        ts.String(),
		"named":       "enforcing",
		"nil section": nil,
	} {
		got, _ := s.Get(key)
		assert.Equal(t, want, got, key)
	}
}

func TestSetCutsSelfReferences(t *testing.T) {
	t.Run("map", func(t *testing.T) {
		m := map[string]any{"a": 1}
		m["self"] = m

		s := NewSection().Set("data", m)
		data := s.Section("data")
		assert.Equal(t, []string{"a", "self"}, data.Keys())
		self, _ := data.Get("self")
		assert.Equal(t, CycleMarker, self)

		_, err := Walk(s)
		assert.NoError(t, err)
	})

	t.Run("slice", func(t *testing.T) {
		l := []any{"x", nil}
		l[1] = l

		s := NewSection().Set("list", l)
		second, _ := s.Section("list").Get("1")
		assert.Equal(t, CycleMarker, second)
	})

	t.Run("pointer", func(t *testing.T) {
		var p any
		p = &p

		s := NewSection().Set("ptr", p)
		v, _ := s.Get("ptr")
		assert.Equal(t, CycleMarker, v)
	})

	t.Run("shared value is not a cycle", func(t *testing.T) {
		shared := map[string]any{"v": 1}
		s := NewSection().Set("pair", []any{shared, shared})
		pair := s.Section("pair")
		assert.IsType(t, &Section{}, mustGet(t, pair, "0"))
		assert.IsType(t, &Section{}, mustGet(t, pair, "1"))
	})
}

func TestSetBoundsDepth(t *testing.T) {
	var deep any = "leaf"
	for i := 0; i < DefaultMaxDepth+5; i++ {
		deep = []any{deep}
	}

	s := NewSection().Set("deep", deep)
	cur := s.Section("deep")
	for i := 1; i < DefaultMaxDepth; i++ {
		cur = cur.Section("0")
	}
	v, _ := cur.Get("0")
	assert.Equal(t, DepthMarker, v)
}

func mustGet(t *testing.T, s *Section, key string) any {
	t.Helper()
	v, ok := s.Get(key)
	require.True(t, ok, key)
	return v
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"int8", int8(3), "3"},
		{"float", 1.5, "1.5"},
		{"whole float", 2.0, "2"},
		{"float32", float32(0.1), "0.1"},
		{"section", NewSection().Set("a", 1), "section(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatScalar(tt.input))
		})
	}
}
