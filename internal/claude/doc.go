// Package claude manages the claude-notify hook entries in Claude Code
// settings files.
//
// The package supports:
//   - Loading settings.json while preserving every unknown field
//   - Checking whether the Notification and Stop hooks point at claude-notify
//   - Adding and removing the hook entries idempotently
//   - Atomic file writes to prevent corruption
package claude
