package cli

import (
	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
)

// Exit codes for the claude-notify CLI (re-exported from shared)
const (
	// ExitSuccess covers every handled and every intentionally ignored event
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates unreadable or malformed hook input, or a failed command
	ExitFailure = shared.ExitFailure

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
