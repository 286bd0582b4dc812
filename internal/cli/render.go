package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/render"
	"github.com/griffithind/sysstatus/internal/report"
	"github.com/griffithind/sysstatus/internal/ui"
	"github.com/griffithind/sysstatus/internal/util"
)

var (
	renderInput  string
	renderOutput string
	renderPretty bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a saved report file",
	Long: `Render a report produced elsewhere with the same renderers as the
report command.

The input is a JSON object or a YAML mapping; key order is kept. Use "-"
to read JSON from stdin.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "report file (.json, .yaml, .yml or - for stdin)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", string(render.FormatText), "output format (html, json, text, pretty, dump)")
	renderCmd.Flags().BoolVar(&renderPretty, "pretty", false, "wrap json and dump output in <pre>")
	_ = renderCmd.MarkFlagRequired("input")
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(renderOutput)
	if err != nil {
		return err
	}

	rep, err := readReport(renderInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out, err := printable(format, rep, renderPretty)
	if err != nil {
		return err
	}
	return ui.Output(out)
}

// readReport decodes the report at path, picking the decoder from the
// file extension.
func readReport(path string, stdin io.Reader) (*report.Section, error) {
	if path == "-" {
		return report.DecodeJSON(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.FileRead(path, err)
	}
	defer f.Close()

	switch ext := util.Ext(path); ext {
	case "json":
		return report.DecodeJSON(f)
	case "yaml", "yml":
		return report.DecodeYAML(f)
	default:
		return nil, errors.Newf(errors.CategoryInput, errors.CodeReportDecode, "unsupported report file type %q", ext).
			WithHint("Use a .json, .yaml or .yml file")
	}
}

// printable renders rep with the configured depth limit. The result
// always ends with a newline.
func printable(format render.Format, rep *report.Section, pretty bool) (string, error) {
	out, err := render.Printable(format, rep, pretty, cfg.WalkOptions()...)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}
