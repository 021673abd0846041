package config

import "github.com/ariel-frischer/claude-notify/internal/notify"

// StopTypeName is the notifications key for the Stop event.
const StopTypeName = "stop"

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"ntfy.server":               "https://ntfy.sh",
		"ntfy.topic":                "claude-notify",
		"ntfy.token":                "",
		"terminal_notifier.enabled": true,
		"log.enabled":               false,
		"log.level":                 "info",
		"log.path":                  "",
		"skip_when_active":          true,
		"channel_mode":              "all",
		"stop_policy":               StopPolicyPipeline,
		"timeout_seconds":           10,
	}
}

// DefaultNotificationType is used for any notification_type without its own
// entry in the notifications map.
func DefaultNotificationType() NotificationTypeConfig {
	return NotificationTypeConfig{
		Enabled:         true,
		Title:           "Claude Code",
		MessageTemplate: "{message}",
		Channels:        []notify.Channel{notify.ChannelTerminalNotifier, notify.ChannelNtfy},
	}
}

// DefaultStopType is used for the Stop event when notifications.stop is absent.
func DefaultStopType() NotificationTypeConfig {
	return NotificationTypeConfig{
		Enabled:         true,
		Title:           "Claude Code Session",
		MessageTemplate: "Session completed",
		Channels:        []notify.Channel{notify.ChannelTerminalNotifier, notify.ChannelNtfy},
	}
}

// defaultTypeFor returns the built-in defaults for a notifications entry.
func defaultTypeFor(name string) NotificationTypeConfig {
	if name == StopTypeName {
		return DefaultStopType()
	}
	return DefaultNotificationType()
}
