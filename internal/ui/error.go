package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/griffithind/sysstatus/internal/errors"
)

// ErrorFormatter renders errors for the terminal.
type ErrorFormatter struct {
	writer io.Writer
}

// NewErrorFormatter creates a new error formatter.
func NewErrorFormatter(w io.Writer) *ErrorFormatter {
	return &ErrorFormatter{writer: w}
}

// Format renders err for display.
//
// A StatusError gets a category badge and its code, then cause, context
// and hint blocks. An error joining several errors (config validation)
// gets a count followed by one brief line per error.
func (f *ErrorFormatter) Format(err error) string {
	if err == nil {
		return ""
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok && len(joined.Unwrap()) > 1 {
		return f.formatJoined(joined.Unwrap())
	}
	if se, ok := errors.AsStatusError(err); ok {
		return f.formatStatusError(se)
	}
	return FormatCheck(CheckResultFail, err.Error()) + "\n"
}

func (f *ErrorFormatter) formatStatusError(err *errors.StatusError) string {
	var sb strings.Builder

	badge := pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold).
		Sprintf(" %s ", strings.ToUpper(string(err.Category)))
	fmt.Fprintf(&sb, "%s %s %s\n", badge, pterm.FgRed.Sprint(err.Message), pterm.FgGray.Sprintf("(%s)", err.Code))

	if err.Cause != nil {
		fmt.Fprintf(&sb, "\n%s: %s\n", pterm.FgBlue.Sprint("Cause"), err.Cause)
	}

	if keys := err.ContextKeys(); len(keys) > 0 {
		fmt.Fprintf(&sb, "\n%s:\n", pterm.FgBlue.Sprint("Context"))
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", pterm.FgGray.Sprint(k), err.Context[k])
		}
	}

	if err.Hint != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", Code("ℹ"), pterm.FgGray.Sprint(err.Hint))
	}

	return sb.String()
}

func (f *ErrorFormatter) formatJoined(errs []error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", pterm.FgRed.Sprintf("%d problems found:", len(errs)))
	for _, e := range errs {
		fmt.Fprintf(&sb, "  %s\n", FormatCheck(CheckResultFail, FormatErrorBrief(e)))
	}
	return sb.String()
}

// Write writes a formatted error to the writer.
func (f *ErrorFormatter) Write(err error) {
	if err == nil {
		return
	}
	fmt.Fprint(f.writer, f.Format(err))
}

// PrintError prints a formatted error to the configured error writer.
func PrintError(err error) {
	if err == nil {
		return
	}
	NewErrorFormatter(ErrWriter()).Write(err)
}

// FormatErrorBrief returns a one-line error message. Structured errors are
// prefixed with category and code.
func FormatErrorBrief(err error) string {
	if err == nil {
		return ""
	}
	if se, ok := errors.AsStatusError(err); ok {
		return fmt.Sprintf("[%s/%s] %s", se.Category, se.Code, se.Message)
	}
	return err.Error()
}
