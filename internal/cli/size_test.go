package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/ui"
)

func TestRunSizeJSON(t *testing.T) {
	var out bytes.Buffer
	ui.Configure(ui.Config{NoColor: true, Writer: &out, ErrWriter: &bytes.Buffer{}})
	t.Cleanup(func() { ui.Configure(ui.Config{}) })

	sizeJSON = true
	t.Cleanup(func() { sizeJSON = false })

	require.NoError(t, runSize(sizeCmd, []string{"1.5K"}))

	var results []SizeResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, int64(1536), results[0].Bytes)
	assert.Equal(t, "1.5 KiB", results[0].Size)
}

func TestRunSizeTable(t *testing.T) {
	var out bytes.Buffer
	ui.Configure(ui.Config{NoColor: true, Writer: &out, ErrWriter: &bytes.Buffer{}})
	t.Cleanup(func() { ui.Configure(ui.Config{}) })

	err := runSize(sizeCmd, []string{"2G", "nope"})
	require.Error(t, err)
	assert.Contains(t, out.String(), "2147483648")
	assert.Contains(t, out.String(), "invalid")
}

func TestSizeFlagError(t *testing.T) {
	err := sizeFlagError(sizeCmd, fmt.Errorf("unknown shorthand flag: '1' in -1M"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeSizeInvalid))
	se, ok := errors.AsStatusError(err)
	require.True(t, ok)
	assert.Contains(t, se.Hint, "--")

	other := fmt.Errorf("unknown shorthand flag: 'x' in -x")
	assert.Equal(t, other, sizeFlagError(sizeCmd, other))
}

func TestSizeNegativeAfterDashes(t *testing.T) {
	var out bytes.Buffer
	ui.Configure(ui.Config{NoColor: true, Writer: &out, ErrWriter: &bytes.Buffer{}})
	useConfig(t, cfg)
	chdir(t, t.TempDir())
	t.Cleanup(func() {
		ui.Configure(ui.Config{})
		sizeJSON = false
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"size", "--json", "--", "-1", "-1M"})
	require.NoError(t, rootCmd.Execute())

	var results []SizeResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, int64(-1), results[0].Bytes)
	assert.Equal(t, int64(-1<<20), results[1].Bytes)

	sizeJSON = false
	rootCmd.SetArgs([]string{"size", "-1M"})
	err := rootCmd.Execute()
	assert.True(t, errors.Is(err, errors.CodeSizeInvalid), "got %v", err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
