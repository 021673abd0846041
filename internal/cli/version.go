package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/claude-notify/internal/build"
	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display version, commit, build date, and Go version information for claude-notify",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "claude-notify %s\n", build.Version)
			fmt.Fprintf(out, "commit: %s\n", build.Commit)
			fmt.Fprintf(out, "built: %s\n", build.BuildDate)
			fmt.Fprintf(out, "go: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.GroupID = shared.GroupConfiguration
	return cmd
}
