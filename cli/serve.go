// ABOUTME: Long-running CLI commands
// ABOUTME: Starts the HTTP API, the MCP stdio server, or the interactive TUI
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/outlab/handlers"
	"github.com/harperreed/outlab/tui"
	"github.com/harperreed/outlab/web"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			store, err := a.files()
			if err != nil {
				return err
			}
			im, err := a.importer()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return web.NewServer(database, store, im, logrus.StandardLogger()).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: http_addr from config)")
	return cmd
}

func (a *app) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := a.importer()
			if err != nil {
				return err
			}
			// stdout carries the protocol; logs stay on stderr
			logrus.SetOutput(os.Stderr)
			logrus.Info("Starting outlab MCP server...")

			server := handlers.NewServer(a.db, im, a.version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

func (a *app) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse campaigns, accounts, and the pipeline interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			return tui.Run(database)
		},
	}
}
