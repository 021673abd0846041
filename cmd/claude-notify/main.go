// claude-notify - Smart notification routing for Claude Code hooks
// Source: https://github.com/ariel-frischer/claude-notify

package main

import (
	"os"

	"github.com/ariel-frischer/claude-notify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
