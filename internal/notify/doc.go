// Package notify delivers notifications to the channels selected for a hook event.
//
// Two channels exist, each behind the Sender interface:
//
//   - terminal-notifier: a local desktop notification. macOS uses the
//     terminal-notifier binary, Linux uses notify-send and Windows uses a
//     PowerShell toast.
//   - ntfy: a remote push sent with an HTTP POST to {server}/{topic}.
//
// The Dispatcher fans a Payload out to every selected channel concurrently.
// Each send has its own timeout and its own result; a failing channel never
// cancels or delays its siblings, and Dispatch itself never returns an error.
//
// # Usage
//
//	registry := notify.Registry{
//		notify.ChannelTerminalNotifier: notify.NewLocalSender(),
//		notify.ChannelNtfy:             notify.NewNtfySender(cfg),
//	}
//	d := notify.NewDispatcher(registry, 10*time.Second, logger)
//	results := d.Dispatch(ctx, channels, notify.Payload{Title: "Claude Code", Message: "waiting"})
package notify
