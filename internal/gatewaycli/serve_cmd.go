package gatewaycli

import (
	"os/signal"
	"syscall"

	"github.com/contenox/testrail-mcp/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool catalogue over MCP on stdin/stdout.",
		Long: `Serve the tool catalogue over the Model Context Protocol on stdin/stdout.
Logs go to stderr. The server stops when the client disconnects or on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, err := newGateway(ctx, cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer g.Close()

	srv, err := mcpserver.New(g.registry, Version, g.logger)
	if err != nil {
		return err
	}
	g.logger.Info("starting testrail-mcp", "version", Version, "url", g.cfg.URL, "user", g.cfg.Username)
	if err := srv.Serve(ctx); err != nil {
		g.logger.Error("server stopped", "error", err)
		return err
	}
	g.logger.Info("server stopped")
	return nil
}
