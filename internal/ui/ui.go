// Package ui provides terminal output for the sysstatus CLI using pterm.
package ui

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
)

// Verbosity represents the output verbosity level.
type Verbosity int

const (
	VerbosityQuiet   Verbosity = -1
	VerbosityNormal  Verbosity = 0
	VerbosityVerbose Verbosity = 1
)

// Config holds UI configuration.
type Config struct {
	Verbosity Verbosity
	// NoColor forces colour off. Colour is also off when Writer is not a
	// terminal, see ColorEnabled.
	NoColor   bool
	Writer    io.Writer
	ErrWriter io.Writer
}

var (
	current  Config
	colored  bool
	configMu sync.Mutex
)

func init() {
	current = Config{
		Verbosity: VerbosityNormal,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}
}

// Configure sets up the UI with the given configuration.
func Configure(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()

	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}
	current = cfg

	colored = !cfg.NoColor && ColorEnabled(cfg.Writer)
	if colored {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
	pterm.SetDefaultOutput(cfg.Writer)
}

// Colored reports whether colour output is active.
func Colored() bool {
	configMu.Lock()
	defer configMu.Unlock()
	return colored
}

// IsQuiet returns true if quiet mode is enabled.
func IsQuiet() bool {
	configMu.Lock()
	defer configMu.Unlock()
	return current.Verbosity == VerbosityQuiet
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	configMu.Lock()
	defer configMu.Unlock()
	return current.Verbosity == VerbosityVerbose
}

// Writer returns the configured output writer.
func Writer() io.Writer {
	configMu.Lock()
	defer configMu.Unlock()
	return current.Writer
}

// ErrWriter returns the configured error writer.
func ErrWriter() io.Writer {
	configMu.Lock()
	defer configMu.Unlock()
	return current.ErrWriter
}

// Success prints a success message unless quiet.
func Success(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	pterm.Success.WithWriter(Writer()).Printf(format+"\n", args...)
}

// Error prints an error message. Errors are shown even when quiet.
func Error(format string, args ...interface{}) {
	pterm.Error.WithWriter(ErrWriter()).Printf(format+"\n", args...)
}

// Warning prints a warning to the error writer unless quiet.
func Warning(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	pterm.Warning.WithWriter(ErrWriter()).Printf(format+"\n", args...)
}

// Info prints an info message unless quiet.
func Info(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	pterm.Info.WithWriter(Writer()).Printf(format+"\n", args...)
}

// Verbose prints a message only in verbose mode.
func Verbose(format string, args ...interface{}) {
	if !IsVerbose() {
		return
	}
	pterm.FgGray.Printf(format+"\n", args...)
}

// Printf prints a formatted line unless quiet.
func Printf(format string, args ...interface{}) {
	if IsQuiet() {
		return
	}
	pterm.Printf(format+"\n", args...)
}

// Output writes s to the output writer. Report output is written even in
// quiet mode since it is the command's result.
func Output(s string) error {
	_, err := io.WriteString(Writer(), s)
	return err
}

// JSON writes v as indented JSON to the output writer.
func JSON(v interface{}) error {
	enc := json.NewEncoder(Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderTable renders a table with headers and rows.
// Does nothing in quiet mode.
func RenderTable(headers []string, rows [][]string) error {
	if IsQuiet() {
		return nil
	}
	data := pterm.TableData{headers}
	for _, row := range rows {
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(Writer()).WithData(data).Render()
}

// Spinner wraps a pterm spinner drawn on the error writer, so it never
// mixes with report output.
type Spinner struct {
	printer *pterm.SpinnerPrinter
}

// StartSpinner starts a spinner. It is a no-op when quiet or when colour
// is off, which is the case for pipes and dumb terminals.
func StartSpinner(message string) *Spinner {
	if IsQuiet() || !Colored() {
		return &Spinner{}
	}
	s, _ := pterm.DefaultSpinner.WithWriter(ErrWriter()).WithRemoveWhenDone(true).Start(message)
	return &Spinner{printer: s}
}

// Fail stops the spinner with a failure message.
func (s *Spinner) Fail(message string) {
	if s.printer != nil {
		s.printer.Fail(message)
	}
}

// Stop stops the spinner without a message.
func (s *Spinner) Stop() {
	if s.printer != nil {
		_ = s.printer.Stop()
	}
}
