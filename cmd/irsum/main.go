package main

import (
	"fmt"
	"os"

	"github.com/yildizm/irsum/internal/cli"
)

// Build variables set by ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := cli.NewRootCommand(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", cli.GetEmoji("error"), err)
		os.Exit(cli.ExitCode(err))
	}
}
