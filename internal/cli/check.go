package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/griffithind/sysstatus/internal/collect"
	"github.com/griffithind/sysstatus/internal/config"
	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/parse"
	"github.com/griffithind/sysstatus/internal/ui"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configured limits and host requirements",
	Long: `Check the configuration against this machine.

This command checks:
- every configured limit parses as a size
- the host meets the configured requirements (cpus, memory, storage)`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output as JSON")
}

// CheckResult represents a single check result.
type CheckResult struct {
	Name    string `json:"name"`
	Result  string `json:"result"`
	Message string `json:"message"`
}

// CheckOutput represents the check output for JSON.
type CheckOutput struct {
	Checks []CheckResult `json:"checks"`
	AllOK  bool          `json:"allOk"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	checks := runChecks(cmd.Context(), cfg, &collect.SystemHost{})

	counts := ui.CheckCounts{}
	for _, c := range checks {
		counts.Add(c.result)
	}
	allOK := counts.OK()

	if checkJSON {
		out := CheckOutput{AllOK: allOK}
		for _, c := range checks {
			out.Checks = append(out.Checks, CheckResult{Name: c.name, Result: c.result.String(), Message: c.message})
		}
		if err := ui.JSON(out); err != nil {
			return err
		}
	} else {
		for _, c := range checks {
			ui.Printf("%s", ui.FormatCheck(c.result, fmt.Sprintf("%s: %s", c.name, c.message)))
		}
		if allOK {
			ui.Success("All checks passed (%s)", counts)
		}
	}

	if !allOK {
		return errors.Newf(errors.CategoryConfig, errors.CodeConfigValidation, "checks failed: %s", counts)
	}
	return nil
}

type check struct {
	name    string
	result  ui.CheckResult
	message string
}

func runChecks(ctx context.Context, cfg *config.Config, host collect.HostSource) []check {
	var checks []check

	limits := cfg.ParsedLimits()
	if len(limits) == 0 {
		checks = append(checks, check{"limits", ui.CheckResultSkip, "none configured"})
	}
	for _, l := range limits {
		c := check{name: "limit " + l.Name}
		switch {
		case l.Err != nil:
			c.result, c.message = ui.CheckResultFail, l.Err.Error()
		case l.Bytes < 0:
			c.result, c.message = ui.CheckResultPass, "unlimited"
		default:
			c.result, c.message = ui.CheckResultPass, parse.FormatSize(l.Bytes)
		}
		checks = append(checks, c)
	}

	if cfg.Requirements == nil {
		return append(checks, check{"requirements", ui.CheckResultSkip, "none configured"})
	}

	facts, err := host.HostFacts(ctx)
	if err != nil {
		return append(checks, check{"requirements", ui.CheckResultFail, fmt.Sprintf("host lookup failed: %v", err)})
	}

	result := config.CheckRequirements(cfg.Requirements, facts.Resources())
	for _, msg := range result.Errors {
		checks = append(checks, check{"requirements", ui.CheckResultFail, msg})
	}
	for _, msg := range result.Warnings {
		checks = append(checks, check{"requirements", ui.CheckResultWarn, msg})
	}
	if result.Satisfied && len(result.Warnings) == 0 {
		checks = append(checks, check{"requirements", ui.CheckResultPass, "met"})
	}
	return checks
}
