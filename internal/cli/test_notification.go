package cli

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTestCmd(d deps) *cobra.Command {
	var (
		channels []string
		title    string
		message  string
		priority int
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send a test notification",
		Long: `Send a test notification directly to the given channels, bypassing the
screen and terminal checks. Exits non-zero if any channel fails.`,
		Example: `  # Every channel
  claude-notify test

  # Only ntfy, with a custom message
  claude-notify test --channel ntfy --message "hello from claude-notify"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := parseChannels(channels)
			if err != nil {
				return shared.WithExitCode(shared.ExitInvalidArguments, err)
			}

			cfg, _, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closer := shared.NewLogger(cfg)
			defer closer.Close()

			payload := notify.Payload{Title: title, Message: message, Priority: priority}
			dispatcher := notify.NewDispatcher(d.newRegistry(cfg), cfg.SendTimeout(), logger)
			stop := startSpinner(cmd.ErrOrStderr(), "Sending test notification...")
			results := dispatcher.Dispatch(cmd.Context(), selected, payload)
			stop()

			out := cmd.OutOrStdout()
			green := color.New(color.FgGreen).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			failed := 0
			for _, r := range results {
				if r.OK() {
					fmt.Fprintf(out, "%s %s (%s)\n", green("✓"), r.Channel, r.Duration.Round(time.Millisecond))
					continue
				}
				failed++
				fmt.Fprintf(out, "%s %s: %v\n", red("✗"), r.Channel, r.Err)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d channels failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.GroupID = shared.GroupHook
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "Channel to test (terminal-notifier, ntfy); repeatable, default all")
	cmd.Flags().StringVar(&title, "title", "Claude Code", "Notification title")
	cmd.Flags().StringVar(&message, "message", "Test notification from claude-notify", "Notification message")
	cmd.Flags().IntVar(&priority, "priority", notify.PriorityDefault, "ntfy priority (1-5)")
	return cmd
}

// parseChannels validates channel names. An empty list means every channel.
func parseChannels(names []string) ([]notify.Channel, error) {
	if len(names) == 0 {
		return append([]notify.Channel(nil), notify.AllChannels...), nil
	}
	out := make([]notify.Channel, 0, len(names))
	for _, name := range names {
		ch, err := notify.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}
