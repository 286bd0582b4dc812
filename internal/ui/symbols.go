package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// CheckResult is the outcome of one check.
type CheckResult int

const (
	CheckResultPass CheckResult = iota
	CheckResultFail
	CheckResultWarn
	CheckResultSkip
)

type checkStyle struct {
	name   string
	symbol string
	color  pterm.Color
}

var checkStyles = map[CheckResult]checkStyle{
	CheckResultPass: {"pass", "✓", pterm.FgGreen},
	CheckResultFail: {"fail", "✗", pterm.FgRed},
	CheckResultWarn: {"warn", "!", pterm.FgYellow},
	CheckResultSkip: {"skip", "-", pterm.FgGray},
}

// String returns the lower-case name of the result.
func (r CheckResult) String() string {
	if s, ok := checkStyles[r]; ok {
		return s.name
	}
	return "unknown"
}

// FormatCheck prefixes message with the coloured symbol for result.
// Skipped messages are greyed out as well.
func FormatCheck(result CheckResult, message string) string {
	s, ok := checkStyles[result]
	if !ok {
		return message
	}
	if result == CheckResultSkip {
		message = s.color.Sprint(message)
	}
	return s.color.Sprint(s.symbol) + " " + message
}

// CheckCounts tallies check results for a summary line.
type CheckCounts map[CheckResult]int

// Add records one result.
func (c CheckCounts) Add(r CheckResult) { c[r]++ }

// OK reports whether nothing failed.
func (c CheckCounts) OK() bool { return c[CheckResultFail] == 0 }

// String summarises the non-zero counts, e.g. "2 passed, 1 failed".
func (c CheckCounts) String() string {
	labels := []struct {
		result CheckResult
		label  string
	}{
		{CheckResultPass, "passed"},
		{CheckResultFail, "failed"},
		{CheckResultWarn, "warned"},
		{CheckResultSkip, "skipped"},
	}
	var parts []string
	for _, l := range labels {
		if n := c[l.result]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, l.label))
		}
	}
	if len(parts) == 0 {
		return "no checks"
	}
	return strings.Join(parts, ", ")
}

// Code returns code-styled text.
func Code(text string) string {
	return pterm.FgCyan.Sprint(text)
}
