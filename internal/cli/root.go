// Package cli provides the Cobra commands for claude-notify.
//
// Run without a subcommand, claude-notify acts as a Claude Code hook: it reads
// one event from stdin and routes a notification. The subcommands inspect
// and set up that behavior (state, test, install, uninstall, config, doctor,
// version).
package cli

import (
	"io"
	"net/http"

	clicfg "github.com/ariel-frischer/claude-notify/internal/cli/config"
	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	"github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/ariel-frischer/claude-notify/internal/state"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// deps are the side-effecting collaborators of the commands. Tests replace
// them to avoid spawning processes or sending real notifications.
type deps struct {
	newProbe    func(logger zerolog.Logger) *state.Probe
	newRegistry func(cfg *config.Config) notify.Registry
	isTerminal  func(r io.Reader) bool
}

func defaultDeps() deps {
	return deps{
		newProbe: func(logger zerolog.Logger) *state.Probe {
			return state.NewProbe(state.Options{Logger: logger})
		},
		newRegistry: func(cfg *config.Config) notify.Registry {
			return shared.BuildRegistry(cfg, &http.Client{Timeout: cfg.SendTimeout()})
		},
		isTerminal: stdinIsTerminal,
	}
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "claude-notify",
		Short: "Smart notification routing for Claude Code hooks",
		Long: `claude-notify routes Claude Code hook events to desktop and push notifications.

Claude Code runs it for Notification and Stop events with the event JSON on
stdin. It checks whether the screen is locked and whether the terminal that
launched Claude Code is in the foreground, then notifies through
terminal-notifier (local) and/or ntfy (push):

  - screen locked: ntfy only
  - terminal focused: nothing (skip_when_active)
  - otherwise: every configured channel`,
		Example: `  # Register the hooks in ~/.claude/settings.json
  claude-notify install

  # Send a test notification to every channel
  claude-notify test

  # Show what claude-notify currently detects
  claude-notify state

  # Run the hook by hand
  echo '{"hook_event_name":"Notification","notification_type":"idle_prompt","message":"waiting"}' | claude-notify`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, d)
		},
	}

	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupHook, Title: "Hook Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupSetup, Title: "Setup:"})
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetHelpCommandGroupID(shared.GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(shared.GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringP(shared.ConfigFlag, "c", "", "Path to config file (default ~/.config/claude-notify/config.json)")

	rootCmd.AddCommand(newStateCmd(d))
	rootCmd.AddCommand(newTestCmd(d))
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newVersionCmd())
	clicfg.Register(rootCmd)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
