// Package config loads the optional sysstatus configuration file.
package config

import (
	"strings"

	"github.com/griffithind/sysstatus/internal/parse"
	"github.com/griffithind/sysstatus/internal/report"
	"github.com/griffithind/sysstatus/internal/util"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".sysstatus.json"

// Defaults for the status endpoint.
const (
	DefaultAction    = "sysstatus.get"
	DefaultListen    = "127.0.0.1:8080"
	DefaultCustomKey = "custom"
)

// Environment overrides.
const (
	EnvListen    = "SYSSTATUS_LISTEN"
	EnvAction    = "SYSSTATUS_ACTION"
	EnvDebug     = "SYSSTATUS_DEBUG"
	EnvMaxDepth  = "SYSSTATUS_MAX_DEPTH"
	EnvLogFormat = "SYSSTATUS_LOG_FORMAT"
)

// Config is the sysstatus configuration.
type Config struct {
	// Action is the value the status endpoint expects in its "action" field.
	Action string `json:"action,omitempty"`
	// Listen is the address the status server binds.
	Listen string `json:"listen,omitempty"`
	// CustomKey names the section holding Custom in the report.
	CustomKey string `json:"customKey,omitempty"`
	// Custom is arbitrary user data appended to every report.
	Custom *report.Section `json:"custom,omitempty"`
	// Limits maps a limit name to a size string such as "256M".
	Limits *report.Section `json:"limits,omitempty"`
	// Requirements are minimum host resources checked on every report.
	Requirements *Requirements `json:"requirements,omitempty"`
	// MaskKeys are key fragments whose values are redacted. Nil selects
	// the built-in list; an empty list turns masking off.
	MaskKeys []string `json:"maskKeys,omitempty"`
	// MaxDepth bounds report nesting; zero means report.DefaultMaxDepth.
	MaxDepth int `json:"maxDepth,omitempty"`
	// Debug is reported as-is and enables debug logging.
	Debug bool `json:"debug,omitempty"`
	// LogFormat is "text" (default) or "json".
	LogFormat string `json:"logFormat,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Action:    DefaultAction,
		Listen:    DefaultListen,
		CustomKey: DefaultCustomKey,
	}
}

// ApplyEnv overrides fields from SYSSTATUS_* environment variables.
func (c *Config) ApplyEnv() {
	c.Listen = util.GetEnv(EnvListen, c.Listen)
	c.Action = util.GetEnv(EnvAction, c.Action)
	c.Debug = util.GetEnvBool(EnvDebug, c.Debug)
	c.MaxDepth = util.GetEnvInt(EnvMaxDepth, c.MaxDepth)
	c.LogFormat = util.GetEnv(EnvLogFormat, c.LogFormat)
}

// Limit is a parsed size limit.
type Limit struct {
	Name  string
	Raw   string
	Bytes int64
	Err   error
}

// ParsedLimits returns the configured limits in file order. A limit that
// does not parse carries its error in Err. Negative limits such as "-1"
// are kept; they conventionally mean unlimited.
func (c *Config) ParsedLimits() []Limit {
	if c.Limits == nil {
		return nil
	}

	var limits []Limit
	c.Limits.Range(func(name string, value any) bool {
		raw := strings.TrimSpace(report.FormatScalar(value))
		l := Limit{Name: name, Raw: raw}
		l.Bytes, l.Err = parse.ParseSize(raw)
		limits = append(limits, l)
		return true
	})
	return limits
}

// CustomSection returns Custom, never nil.
func (c *Config) CustomSection() *report.Section {
	if c.Custom == nil {
		return report.NewSection()
	}
	return c.Custom
}

// WalkOptions returns the report walk options implied by the config.
func (c *Config) WalkOptions() []report.WalkOption {
	if c.MaxDepth == 0 {
		return nil
	}
	return []report.WalkOption{report.WithMaxDepth(c.MaxDepth)}
}
