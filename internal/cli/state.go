package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	"github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/ariel-frischer/claude-notify/internal/hook"
	"github.com/ariel-frischer/claude-notify/internal/policy"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// stateReport is the --json shape of the state command.
type stateReport struct {
	IsScreenLocked   bool     `json:"is_screen_locked"`
	IsTerminalActive bool     `json:"is_terminal_active"`
	Platform         string   `json:"platform"`
	CurrentTerminal  string   `json:"current_terminal,omitempty"`
	Foreground       string   `json:"foreground,omitempty"`
	WouldSkip        bool     `json:"would_skip"`
	Channels         []string `json:"channels"`
}

func newStateCmd(d deps) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the detected screen and terminal state",
		Long: `Probe the screen lock and foreground application the same way the hook does,
and show which channels an idle_prompt notification would go to right now.`,
		Example: `  # Human-readable output
  claude-notify state

  # Machine-readable output
  claude-notify state --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closer := shared.NewLogger(cfg)
			defer closer.Close()

			details := d.newProbe(logger).Detect(cmd.Context())
			tc := cfg.TypeConfig(hook.TypeIdlePrompt, config.DefaultNotificationType())
			decision := policy.Decide(details.State, tc.Channels, cfg.SkipWhenActive, cfg.ChannelMode)

			report := stateReport{
				IsScreenLocked:   details.State.IsScreenLocked,
				IsTerminalActive: details.State.IsTerminalActive,
				Platform:         details.Platform,
				CurrentTerminal:  details.CurrentTerminal,
				Foreground:       details.Foreground,
				WouldSkip:        decision.Skip,
				Channels:         make([]string, 0, len(decision.Channels)),
			}
			for _, ch := range decision.Channels {
				report.Channels = append(report.Channels, string(ch))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			bold := color.New(color.Bold).SprintFunc()
			fmt.Fprintf(out, "%s %s\n", bold("Platform:        "), report.Platform)
			fmt.Fprintf(out, "%s %t\n", bold("Screen locked:   "), report.IsScreenLocked)
			fmt.Fprintf(out, "%s %t\n", bold("Terminal active: "), report.IsTerminalActive)
			fmt.Fprintf(out, "%s %s\n", bold("Current terminal:"), orUnknown(report.CurrentTerminal))
			fmt.Fprintf(out, "%s %s\n", bold("Foreground app:  "), orUnknown(report.Foreground))
			if report.WouldSkip {
				fmt.Fprintf(out, "%s skip (terminal is focused)\n", bold("Would notify:    "))
			} else {
				fmt.Fprintf(out, "%s %v\n", bold("Would notify:    "), report.Channels)
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupHook
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
