// Package cli provides the command-line interface for palette-mcp.
//
// Running the binary with no subcommand starts the MCP server on stdio, so
// MCP clients can launch it without extra arguments. The palette and
// dominant subcommands run the same quantizer directly against a file.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// logLevelEnv overrides the default log level when --log-level is not given.
const logLevelEnv = "PALETTE_MCP_LOG_LEVEL"

// BuildInfo is the version metadata injected into the binary at link time.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("palette-mcp %s\n  Build time: %s\n  Git commit: %s", b.Version, b.BuildTime, b.GitCommit)
}

// NewRootCmd builds the command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "palette-mcp",
		Short: "MCP server for octree color quantization",
		Long: `palette-mcp reduces images to small color palettes with octree quantization.

Without a subcommand it serves the Model Context Protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).

Environment variables:
  PALETTE_MCP_LOG_LEVEL=debug    Set the log level when --log-level is not given`,
		Version:      info.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, info)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	root.SetVersionTemplate(info.String() + "\n")

	root.AddCommand(
		newServeCmd(info),
		newPaletteCmd(),
		newDominantCmd(),
		newVersionCmd(info),
	)
	return root
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	}
}

// loggerFor builds the stderr logger for cmd from --log-level, falling back
// to the environment and then to warn.
func loggerFor(cmd *cobra.Command) (hclog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = os.Getenv(logLevelEnv)
	}
	return newLogger(level, cmd.ErrOrStderr())
}

func newLogger(level string, w io.Writer) (hclog.Logger, error) {
	lvl := hclog.Warn
	if level != "" {
		lvl = hclog.LevelFromString(level)
		if lvl == hclog.NoLevel {
			return nil, fmt.Errorf("invalid log level %q (valid: trace, debug, info, warn, error, off)", strings.ToLower(level))
		}
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "palette-mcp",
		Output: w,
		Level:  lvl,
	}), nil
}
