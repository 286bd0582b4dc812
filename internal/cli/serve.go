package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/griffithind/sysstatus/internal/server"
	"github.com/griffithind/sysstatus/internal/ui"
	"github.com/griffithind/sysstatus/internal/util"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve status reports over HTTP",
	Long: `Start an HTTP server answering POST /ajax.

The form field "action" must equal the configured action (default
"sysstatus.get"). "output=html" returns an escaped <table>; any other
value returns JSON. Replies are {"success": true, "data": "..."}.

The server stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default: config listen, $SYSSTATUS_LISTEN or 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := util.FirstNonEmpty(serveListen, cfg.Listen)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.Info("Serving status on http://%s%s (action %s)", addr, server.AjaxPath, ui.Code(cfg.Action))
	return server.New(cfg, nil, util.Component("server")).Run(ctx, addr)
}

