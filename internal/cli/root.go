// Package cli implements the command-line interface for sysstatus.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/griffithind/sysstatus/internal/config"
	"github.com/griffithind/sysstatus/internal/ui"
	"github.com/griffithind/sysstatus/internal/util"
	"github.com/griffithind/sysstatus/internal/version"
)

// Global flags
var (
	configPath string
	noColor    bool
	quiet      bool
	verbose    bool
)

// cfg is loaded before any command runs.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sysstatus",
	Short: "Environment status reports",
	Long: `sysstatus collects facts about the running environment (runtime,
host, configured size limits, the requesting client and custom data) into
an ordered report and renders it as HTML, JSON, plain text, a table or a
debug dump.

The report can be printed once, rendered from a saved JSON or YAML file,
or served over HTTP for admin pages that fetch it asynchronously.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true, // errors are printed by Execute
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		util.SetVerbose(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		// Validate already accepted the format.
		format, _ := util.ParseLogFormat(cfg.LogFormat)
		util.SetLogFormat(format)
		if cfg.Debug {
			util.SetVerbose(true)
		}
		if cfg.Path != "" {
			util.Debug("loaded config from %s", cfg.Path)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Parse flags early so --no-color and --quiet also apply to usage errors.
	_ = rootCmd.ParseFlags(os.Args[1:])
	initUI()

	err := rootCmd.Execute()
	if err != nil {
		ui.PrintError(err)
	}
	return err
}

// initUI configures the UI system based on parsed flags.
func initUI() {
	verbosity := ui.VerbosityNormal
	if quiet {
		verbosity = ui.VerbosityQuiet
	} else if verbose {
		verbosity = ui.VerbosityVerbose
	}

	ui.Configure(ui.Config{
		Verbosity: verbosity,
		NoColor:   noColor,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	})
	util.SetLogOutput(ui.ErrWriter())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: "+config.DefaultPath+" if present)")

	// Output flags
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetOut(ui.NewCobraOutWriter())
	rootCmd.SetErr(ui.NewCobraErrWriter())

	rootCmd.AddGroup(&cobra.Group{ID: "report", Title: "Report Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "utilities", Title: "Utilities:"})

	reportCmd.GroupID = "report"
	renderCmd.GroupID = "report"
	serveCmd.GroupID = "report"
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)

	sizeCmd.GroupID = "utilities"
	checkCmd.GroupID = "utilities"
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(checkCmd)
}
