package notify

import (
	"errors"
	"fmt"
	"strings"
)

// Channel identifies a notification delivery mechanism.
type Channel string

const (
	// ChannelTerminalNotifier is the local desktop notification channel
	ChannelTerminalNotifier Channel = "terminal-notifier"
	// ChannelNtfy is the remote ntfy push channel
	ChannelNtfy Channel = "ntfy"
)

// AllChannels lists every known channel in canonical order.
var AllChannels = []Channel{ChannelTerminalNotifier, ChannelNtfy}

// ValidChannel checks if the given string names a known channel
func ValidChannel(s string) bool {
	switch Channel(s) {
	case ChannelTerminalNotifier, ChannelNtfy:
		return true
	default:
		return false
	}
}

// ParseChannel converts a string to a Channel, rejecting unknown names.
func ParseChannel(s string) (Channel, error) {
	s = strings.TrimSpace(s)
	if !ValidChannel(s) {
		return "", fmt.Errorf("unknown channel %q (valid: %s, %s)", s, ChannelTerminalNotifier, ChannelNtfy)
	}
	return Channel(s), nil
}

// Priority bounds for ntfy messages.
const (
	PriorityMin     = 1
	PriorityDefault = 3
	PriorityMax     = 5
)

var (
	// ErrTopicRequired is returned by the ntfy sender when no topic is configured.
	ErrTopicRequired = errors.New("ntfy topic is required")
	// ErrNoSender is reported when a selected channel has no registered sender.
	ErrNoSender = errors.New("no sender registered for channel")
	// ErrUnsupportedPlatform is returned by the local sender on platforms
	// without a native notifier.
	ErrUnsupportedPlatform = errors.New("local notifications are not supported on this platform")
	// ErrUnavailable is returned when the local notifier tool is missing.
	ErrUnavailable = errors.New("local notifier is unavailable")
)

// Payload is a single notification to deliver.
type Payload struct {
	// Title is the notification title (e.g., "Claude Code")
	Title string

	// Message is the notification body text
	Message string

	// Priority is the ntfy priority, 1-5. Zero means PriorityDefault.
	Priority int

	// ActivateTarget is an application identifier brought to the front when
	// the local notification is clicked. Ignored by ntfy.
	ActivateTarget string
}

// NewPayload creates a Payload with the default priority
func NewPayload(title, message string) Payload {
	return Payload{
		Title:    title,
		Message:  message,
		Priority: PriorityDefault,
	}
}

// EffectivePriority returns the priority clamped to 1-5, with zero mapped to
// the default.
func (p Payload) EffectivePriority() int {
	switch {
	case p.Priority == 0:
		return PriorityDefault
	case p.Priority < PriorityMin:
		return PriorityMin
	case p.Priority > PriorityMax:
		return PriorityMax
	default:
		return p.Priority
	}
}

// Sanitize strips ASCII control characters (0-31, 127) so titles and
// messages are safe to pass as command arguments.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
