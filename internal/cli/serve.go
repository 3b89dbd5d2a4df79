package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-mcp/internal/server"
)

func newServeCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, info)
		},
	}
}

// runServe runs the MCP server until stdin closes. Logs go to stderr since
// stdout carries the protocol.
func runServe(cmd *cobra.Command, info BuildInfo) error {
	logger, err := loggerFor(cmd)
	if err != nil {
		return err
	}
	logger.Debug("starting server", "version", info.Version, "built", info.BuildTime, "commit", info.GitCommit)

	srv := server.New(server.WithLogger(logger), server.WithVersion(info.Version))
	if err := srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
