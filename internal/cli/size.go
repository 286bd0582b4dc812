package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/parse"
	"github.com/griffithind/sysstatus/internal/ui"
)

var sizeJSON bool

var sizeCmd = &cobra.Command{
	Use:   "size <value>...",
	Short: "Convert size strings to bytes",
	Long: `Convert byte-size strings such as 256M, 1.5G or 512 to byte counts.

Units K, M, G, T and P (any case) are powers of 1024. Fractions are
rounded to the nearest byte. Surrounding whitespace is ignored.

Negative values such as -1 (unlimited) look like flags; put them after --:

  sysstatus size -- -1 -1M`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSize,
}

func init() {
	sizeCmd.Flags().BoolVar(&sizeJSON, "json", false, "output as JSON")
	sizeCmd.SetFlagErrorFunc(sizeFlagError)
}

// sizeFlagError explains flag errors caused by negative sizes given
// without a preceding --.
func sizeFlagError(cmd *cobra.Command, err error) error {
	const prefix = "unknown shorthand flag: '"
	_, rest, found := strings.Cut(err.Error(), prefix)
	if !found || rest == "" || (rest[0] < '0' || rest[0] > '9') && rest[0] != '.' {
		return err
	}
	return errors.Wrap(err, errors.CategoryInput, errors.CodeSizeInvalid, "negative size read as a flag").
		WithHint("put negative sizes after --, e.g. sysstatus size -- -1M")
}

// SizeResult is one converted size.
type SizeResult struct {
	Input string `json:"input"`
	Bytes int64  `json:"bytes"`
	Size  string `json:"size,omitempty"`
	Error string `json:"error,omitempty"`
}

func runSize(cmd *cobra.Command, args []string) error {
	results, firstErr := convertSizes(args)

	if sizeJSON {
		if err := ui.JSON(results); err != nil {
			return err
		}
		return firstErr
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Error != "" {
			rows = append(rows, []string{r.Input, "-", "invalid"})
			continue
		}
		rows = append(rows, []string{r.Input, strconv.FormatInt(r.Bytes, 10), r.Size})
	}
	if err := ui.RenderTable([]string{"Input", "Bytes", "Size"}, rows); err != nil {
		return err
	}
	return firstErr
}

// convertSizes parses every arg and returns the results with the first
// error encountered.
func convertSizes(args []string) ([]SizeResult, error) {
	results := make([]SizeResult, 0, len(args))
	var firstErr error
	for _, arg := range args {
		r := SizeResult{Input: arg}
		n, err := parse.ParseSize(strings.TrimSpace(arg))
		if err != nil {
			r.Error = err.Error()
			if firstErr == nil {
				firstErr = err
			}
		} else {
			r.Bytes = n
			r.Size = parse.FormatSize(n)
		}
		results = append(results, r)
	}
	return results, firstErr
}
