package config

import (
	"fmt"

	"github.com/ariel-frischer/claude-notify/internal/claude"
	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	"github.com/ariel-frischer/claude-notify/internal/health"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"doc"},
		Short:   "Run health checks for claude-notify (doc)",
		Long: `Run health checks to verify that claude-notify can deliver notifications.

This command checks:
  - the config file loads and validates
  - the local notifier tool (terminal-notifier, notify-send, PowerShell) is on PATH
  - an ntfy topic is configured
  - the screen lock and foreground detection tools are on PATH (warnings only)
  - the Notification and Stop hooks are installed in ~/.claude/settings.json`,
		Example: `  # Check everything
  claude-notify doctor

  # Fix missing hooks, then re-check
  claude-notify install && claude-notify doctor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, cfgErr := shared.LoadConfig(cmd)

			settingsPath, err := claude.SettingsPath(claude.ScopeUser, "")
			if err != nil {
				return err
			}

			report := health.RunHealthChecks(health.Options{
				ConfigPath:   path,
				Config:       cfg,
				ConfigErr:    cfgErr,
				SettingsPath: settingsPath,
			})
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

			if !report.Passed {
				return shared.NewExitError(shared.ExitFailure)
			}
			return nil
		},
	}
	cmd.GroupID = shared.GroupConfiguration
	cmd.SilenceErrors = true
	return cmd
}
