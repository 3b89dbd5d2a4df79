package main

import (
	"os"

	"github.com/ironsheep/palette-mcp/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
	if err := cli.NewRootCmd(info).Execute(); err != nil {
		os.Exit(1)
	}
}
