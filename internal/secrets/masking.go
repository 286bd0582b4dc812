// Package secrets redacts sensitive values from status reports.
package secrets

import (
	"strings"

	"github.com/griffithind/sysstatus/internal/report"
)

// Mask replaces every redacted value.
const Mask = "********"

// DefaultPatterns are the key fragments redacted when none are configured.
var DefaultPatterns = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"api_key",
	"apikey",
	"private_key",
	"authorization",
}

// Masker redacts report values whose key contains one of its patterns.
// Matching is case-insensitive. A secret key that holds a section has
// every value below it redacted.
type Masker struct {
	patterns []string
}

// NewMasker creates a masker. A nil slice selects DefaultPatterns; an
// empty non-nil slice disables masking.
func NewMasker(patterns []string) *Masker {
	if patterns == nil {
		patterns = DefaultPatterns
	}
	m := &Masker{}
	for _, p := range patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			m.patterns = append(m.patterns, p)
		}
	}
	return m
}

// Enabled reports whether the masker has any pattern.
func (m *Masker) Enabled() bool {
	return m != nil && len(m.patterns) > 0
}

// IsSecret reports whether key matches a pattern.
func (m *Masker) IsSecret(key string) bool {
	if !m.Enabled() {
		return false
	}
	lower := strings.ToLower(key)
	for _, p := range m.patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// MaskSection returns a copy of s with secret values replaced by Mask and
// the number of values replaced. s itself is not modified.
func (m *Masker) MaskSection(s *report.Section, opts ...report.WalkOption) (*report.Section, int, error) {
	rows, err := report.Walk(s, opts...)
	if err != nil {
		return nil, 0, err
	}

	masked := 0
	secretDepth := -1
	for i, r := range rows {
		if secretDepth >= 0 && r.Depth <= secretDepth {
			secretDepth = -1
		}
		switch {
		case r.Kind == report.KindHeader:
			if secretDepth < 0 && m.IsSecret(r.Key) {
				secretDepth = r.Depth
			}
		case secretDepth >= 0 || m.IsSecret(r.Key):
			rows[i].Value = Mask
			masked++
		}
	}
	return report.FromRows(rows), masked, nil
}
