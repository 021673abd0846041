package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/claude-notify/internal/claude"
	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	var (
		scope   string
		command string
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register claude-notify as a Claude Code hook",
		Long: `Add Notification and Stop hook entries running claude-notify to a Claude Code
settings file. Existing settings and other hooks are preserved, and running
install twice changes nothing.

Scopes:
  user     ~/.claude/settings.json (default)
  project  .claude/settings.json in the current directory
  local    .claude/settings.local.json in the current directory`,
		Example: `  # Install for every project
  claude-notify install

  # Install for this project only, using an explicit binary path
  claude-notify install --scope local --command /usr/local/bin/claude-notify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(scope)
			if err != nil {
				return err
			}

			if command == "" {
				command = defaultHookCommand()
			}
			if f := cmd.Flag(shared.ConfigFlag); f != nil && f.Value.String() != "" {
				command += " --config " + quoteArg(f.Value.String())
			}

			added := settings.InstallHooks(command)
			out := cmd.OutOrStdout()
			if len(added) == 0 {
				fmt.Fprintf(out, "claude-notify hooks already installed in %s\n", settings.FilePath())
				return nil
			}
			if err := settings.Save(); err != nil {
				return fmt.Errorf("saving claude settings: %w", err)
			}
			fmt.Fprintf(out, "Added %s hooks to %s\n", strings.Join(added, " and "), settings.FilePath())
			return nil
		},
	}

	cmd.GroupID = shared.GroupSetup
	cmd.Flags().StringVar(&scope, "scope", string(claude.ScopeUser), "Settings scope: user, project, or local")
	cmd.Flags().StringVar(&command, "command", "", "Hook command (default: claude-notify, or this binary's path if not on PATH)")
	return cmd
}

func newUninstallCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the claude-notify Claude Code hooks",
		Long: `Remove every hook entry running claude-notify from a Claude Code settings
file. Other hooks and settings are preserved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(scope)
			if err != nil {
				return err
			}

			removed := settings.RemoveHooks()
			out := cmd.OutOrStdout()
			if len(removed) == 0 {
				fmt.Fprintf(out, "No claude-notify hooks found in %s\n", settings.FilePath())
				return nil
			}
			if err := settings.Save(); err != nil {
				return fmt.Errorf("saving claude settings: %w", err)
			}
			fmt.Fprintf(out, "Removed %s hooks from %s\n", strings.Join(removed, " and "), settings.FilePath())
			return nil
		},
	}

	cmd.GroupID = shared.GroupSetup
	cmd.Flags().StringVar(&scope, "scope", string(claude.ScopeUser), "Settings scope: user, project, or local")
	return cmd
}

func loadSettings(scope string) (*claude.Settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	path, err := claude.SettingsPath(claude.Scope(scope), cwd)
	if err != nil {
		return nil, shared.WithExitCode(shared.ExitInvalidArguments, err)
	}
	return claude.Load(path)
}

// defaultHookCommand prefers the bare binary name when it resolves on PATH
// so the hook survives reinstalls to a different location.
func defaultHookCommand() string {
	if _, err := exec.LookPath(claude.BinaryName); err == nil {
		return claude.BinaryName
	}
	if exe, err := os.Executable(); err == nil {
		return quoteArg(exe)
	}
	return claude.BinaryName
}

func quoteArg(s string) string {
	if strings.ContainsAny(s, " \t'\"") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}
