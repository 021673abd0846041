// Package policy decides whether and where a notification is delivered.
//
// Both functions are pure: they look only at the SystemState and the
// configuration they are given.
package policy

import (
	"fmt"

	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/ariel-frischer/claude-notify/internal/state"
)

// ChannelMode selects how an unlocked screen with an inactive terminal is routed.
type ChannelMode string

const (
	// ChannelModeAll keeps every configured channel when the user is away
	// from the terminal but the screen is unlocked.
	ChannelModeAll ChannelMode = "all"
	// ChannelModeLocalWhenAway keeps only the local channel in that case.
	ChannelModeLocalWhenAway ChannelMode = "local_when_away"
)

// ValidChannelMode checks if the given string is a valid channel mode
func ValidChannelMode(s string) bool {
	switch ChannelMode(s) {
	case ChannelModeAll, ChannelModeLocalWhenAway:
		return true
	default:
		return false
	}
}

// SelectChannels returns the channels to use for the given state, using
// ChannelModeAll.
//
//  1. Screen locked: only ntfy, if configured.
//  2. Otherwise: every configured channel.
//
// The result keeps the configured order, drops duplicates, and never
// contains a channel that was not configured.
func SelectChannels(s state.SystemState, configured []notify.Channel) []notify.Channel {
	return SelectChannelsWithMode(s, configured, ChannelModeAll)
}

// SelectChannelsWithMode is SelectChannels with an explicit mode for the
// unlocked, terminal-inactive case.
func SelectChannelsWithMode(s state.SystemState, configured []notify.Channel, mode ChannelMode) []notify.Channel {
	channels := dedupe(configured)

	if s.IsScreenLocked {
		return only(channels, notify.ChannelNtfy)
	}

	if !s.IsTerminalActive && mode == ChannelModeLocalWhenAway {
		return only(channels, notify.ChannelTerminalNotifier)
	}

	return channels
}

// ShouldSkip reports whether notification should be suppressed entirely.
// It is true only when the terminal is active, skipWhenActive is set, and
// the screen is not locked.
func ShouldSkip(s state.SystemState, skipWhenActive bool) bool {
	if s.IsScreenLocked {
		return false
	}
	return s.IsTerminalActive && skipWhenActive
}

// Decision records the outcome of applying both policies.
type Decision struct {
	Skip     bool
	Channels []notify.Channel
}

// String formats the decision for logs.
func (d Decision) String() string {
	if d.Skip {
		return "skip"
	}
	return fmt.Sprintf("channels=%v", d.Channels)
}

// Decide applies ShouldSkip then SelectChannelsWithMode.
func Decide(s state.SystemState, configured []notify.Channel, skipWhenActive bool, mode ChannelMode) Decision {
	if ShouldSkip(s, skipWhenActive) {
		return Decision{Skip: true}
	}
	return Decision{Channels: SelectChannelsWithMode(s, configured, mode)}
}

func only(channels []notify.Channel, want notify.Channel) []notify.Channel {
	for _, ch := range channels {
		if ch == want {
			return []notify.Channel{want}
		}
	}
	return []notify.Channel{}
}

func dedupe(channels []notify.Channel) []notify.Channel {
	seen := make(map[notify.Channel]bool, len(channels))
	out := make([]notify.Channel, 0, len(channels))
	for _, ch := range channels {
		if seen[ch] {
			continue
		}
		seen[ch] = true
		out = append(out, ch)
	}
	return out
}
