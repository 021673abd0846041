package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// terminalEnvVars are the environment markers consulted by terminal detection.
var terminalEnvVars = []string{
	"LC_TERMINAL",
	"ITERM_SESSION_ID",
	"GHOSTTY_RESOURCES_DIR",
	"WEZTERM_EXECUTABLE",
	"KITTY_WINDOW_ID",
	"ALACRITTY_SOCKET",
	"WARP_IS_LOCAL_SHELL_SESSION",
	"TERM_PROGRAM",
	"__CFBundleIdentifier",
}

// IsolateHome points HOME and XDG_CONFIG_HOME at a fresh temp directory and
// clears every CLAUDE_NOTIFY_*, NTFY_* and terminal marker variable so tests
// never read the developer's real configuration. Returns the temp home.
//
// Uses t.Setenv, so callers cannot run in parallel.
func IsolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "CLAUDE_NOTIFY_") || strings.HasPrefix(name, "NTFY_") {
			unsetEnv(t, name)
		}
	}
	for _, name := range terminalEnvVars {
		unsetEnv(t, name)
	}

	return home
}

// unsetEnv removes name for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, name string) {
	t.Helper()

	t.Setenv(name, "")
	if err := os.Unsetenv(name); err != nil {
		t.Fatalf("failed to unset %s: %v", name, err)
	}
}
