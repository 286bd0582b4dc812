package cli

import (
	"github.com/spf13/cobra"

	"github.com/griffithind/sysstatus/internal/collect"
	"github.com/griffithind/sysstatus/internal/render"
	"github.com/griffithind/sysstatus/internal/ui"
)

var (
	reportOutput     string
	reportPretty     bool
	reportUserAgent  string
	reportRemoteAddr string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Collect and print a status report",
	Long: `Collect a status report for this machine and print it.

Formats:
  text    aligned key: value lines (default)
  pretty  boxed table
  json    nested JSON object
  html    <table> markup, not escaped
  dump    typed debug dump

With --pretty, json and dump output is wrapped in a <pre> block and json
is indented.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", string(render.FormatText), "output format (html, json, text, pretty, dump)")
	reportCmd.Flags().BoolVar(&reportPretty, "pretty", false, "wrap json and dump output in <pre>")
	reportCmd.Flags().StringVar(&reportUserAgent, "user-agent", "", "User-Agent reported in the browser section")
	reportCmd.Flags().StringVar(&reportRemoteAddr, "remote-addr", "127.0.0.1", "client address used for the localhost field")
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(reportOutput)
	if err != nil {
		return err
	}

	spinner := ui.StartSpinner("Collecting report")
	client := collect.Client{UserAgent: reportUserAgent, RemoteAddr: reportRemoteAddr}
	rep, err := collect.NewFromConfig(cfg, client, nil).Build(cmd.Context())
	if err != nil {
		spinner.Fail("Collection failed")
		return err
	}
	spinner.Stop()

	out, err := printable(format, rep, reportPretty)
	if err != nil {
		return err
	}
	return ui.Output(out)
}
