//go:build linux

package notify

import (
	"fmt"
	"os"
)

// hasDisplay checks if a display environment is available
func hasDisplay() bool {
	// Check for X11 display
	if os.Getenv("DISPLAY") != "" {
		return true
	}
	// Check for Wayland display
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}
	return false
}

// localCommand builds a notify-send invocation. Click activation is not
// supported by notify-send, so ActivateTarget is ignored. Title and message
// follow "--" so text starting with a dash is never read as an option.
func localCommand(p Payload) (string, []string, error) {
	if !hasDisplay() {
		return "", nil, fmt.Errorf("%w: no DISPLAY or WAYLAND_DISPLAY", ErrUnavailable)
	}
	return "notify-send", []string{"-u", "normal", "-a", "Claude Code", "--", p.Title, p.Message}, nil
}
