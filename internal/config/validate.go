package config

import (
	"fmt"
	"strings"

	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/parse"
	"github.com/griffithind/sysstatus/internal/util"
)

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*errors.StatusError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes each validation error to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// Validate validates a configuration. It returns nil or a
// ValidationErrors listing every problem found.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Action) == "" {
		errs = append(errs, errors.ConfigValidation("action", "must not be empty"))
	}
	if strings.TrimSpace(cfg.Listen) == "" {
		errs = append(errs, errors.ConfigValidation("listen", "must not be empty"))
	}
	if cfg.MaxDepth < 0 {
		errs = append(errs, errors.ConfigValidation("maxDepth", "must not be negative"))
	}
	if _, err := util.ParseLogFormat(cfg.LogFormat); err != nil {
		errs = append(errs, errors.ConfigValidation("logFormat", err.Error()))
	}

	for _, l := range cfg.ParsedLimits() {
		if l.Err != nil {
			errs = append(errs, errors.ConfigValidation("limits."+l.Name, l.Err.Error()))
		}
	}

	if r := cfg.Requirements; r != nil {
		if r.CPUs < 0 {
			errs = append(errs, errors.ConfigValidation("requirements.cpus", "must not be negative"))
		}
		if r.Memory != "" {
			if _, err := parseSizeValue(r.Memory); err != nil {
				errs = append(errs, errors.ConfigValidation("requirements.memory", err.Error()))
			}
		}
		if r.Storage != "" {
			if _, err := parseSizeValue(r.Storage); err != nil {
				errs = append(errs, errors.ConfigValidation("requirements.storage", err.Error()))
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

var errNegative = fmt.Errorf("must not be negative")

// parseSizeValue parses trimmed user input, rejecting negative sizes.
func parseSizeValue(text string) (int64, error) {
	n, err := parse.ParseSize(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.SizeInvalid(text, errNegative)
	}
	return n, nil
}
