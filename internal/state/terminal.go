package state

import (
	"os"
	"strings"
)

// LookupEnv looks up an environment variable, like os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// OSEnv reads the process environment.
var OSEnv LookupEnv = os.LookupEnv

// MapEnv returns a LookupEnv backed by a map (for testing and dry runs).
func MapEnv(m map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// sessionMarker maps a terminal-specific environment variable to the
// terminal's application identifier.
type sessionMarker struct {
	envVar string
	id     string
}

// sessionMarkers are checked in order, before TERM_PROGRAM.
var sessionMarkers = []sessionMarker{
	{envVar: "ITERM_SESSION_ID", id: "com.googlecode.iterm2"},
	{envVar: "GHOSTTY_RESOURCES_DIR", id: "com.mitchellh.ghostty"},
	{envVar: "WEZTERM_EXECUTABLE", id: "com.github.wez.wezterm"},
	{envVar: "KITTY_WINDOW_ID", id: "net.kovidgoyal.kitty"},
	{envVar: "ALACRITTY_SOCKET", id: "io.alacritty"},
	{envVar: "WARP_IS_LOCAL_SHELL_SESSION", id: "dev.warp.Warp-Stable"},
}

// termProgramIDs maps TERM_PROGRAM values to application identifiers.
var termProgramIDs = map[string]string{
	"Apple_Terminal": "com.apple.Terminal",
	"iTerm.app":      "com.googlecode.iterm2",
	"WarpTerminal":   "dev.warp.Warp-Stable",
	"WezTerm":        "com.github.wez.wezterm",
	"Alacritty":      "io.alacritty",
	"kitty":          "net.kovidgoyal.kitty",
	"ghostty":        "com.mitchellh.ghostty",
	"vscode":         "com.microsoft.VSCode",
}

// knownTerminalIDs is the registry of terminal and IDE identifiers that count
// as "a terminal" when the launching terminal cannot be identified.
var knownTerminalIDs = map[string]bool{
	"com.apple.Terminal":            true,
	"com.googlecode.iterm2":         true,
	"dev.warp.Warp-Stable":          true,
	"com.github.wez.wezterm":        true,
	"io.alacritty":                  true,
	"net.kovidgoyal.kitty":          true,
	"com.mitchellh.ghostty":         true,
	"com.jetbrains.intellij":        true,
	"com.jetbrains.intellij.ce":     true,
	"com.jetbrains.AppCode":         true,
	"com.jetbrains.CLion":           true,
	"com.jetbrains.PhpStorm":        true,
	"com.jetbrains.WebStorm":        true,
	"com.jetbrains.PyCharm":         true,
	"com.microsoft.VSCode":          true,
	"com.microsoft.VSCodeInsiders":  true,
	"com.todesktop.230313mzl4w4u92": true, // Cursor
	"com.apple.dt.Xcode":            true,
	"com.sublimetext.4":             true,
	"com.sublimetext.3":             true,
}

// terminalKeywords match terminal-like identifiers case-insensitively.
var terminalKeywords = []string{"terminal", "console", "iterm", "shell", "prompt"}

// ResolveCurrentTerminal identifies the terminal that launched this process.
//
// Priority: terminal-specific session markers, then TERM_PROGRAM (ignored
// under tmux, which hides the real terminal), then __CFBundleIdentifier.
// Returns ok=false when nothing matches; it never guesses.
func ResolveCurrentTerminal(lookup LookupEnv) (id string, ok bool) {
	if lookup == nil {
		lookup = OSEnv
	}

	if v, _ := lookup("LC_TERMINAL"); v == "iTerm2" {
		return "com.googlecode.iterm2", true
	}
	for _, m := range sessionMarkers {
		if v, _ := lookup(m.envVar); v != "" {
			return m.id, true
		}
	}

	if program, _ := lookup("TERM_PROGRAM"); program != "" && program != "tmux" {
		if id, found := termProgramIDs[program]; found {
			return id, true
		}
	}

	if bundle, _ := lookup("__CFBundleIdentifier"); strings.TrimSpace(bundle) != "" {
		return strings.TrimSpace(bundle), true
	}

	return "", false
}

// IsKnownTerminal reports whether id looks like a terminal or IDE: either an
// exact registry match or a case-insensitive keyword match.
func IsKnownTerminal(id string) bool {
	if id == "" {
		return false
	}
	if knownTerminalIDs[id] {
		return true
	}

	lower := strings.ToLower(id)
	for _, kw := range terminalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// TerminalActive decides whether the launching terminal is in the foreground.
//
// With a resolved current terminal, only an exact match with the foreground
// identity counts. Without one, the foreground identity is classified alone.
// An empty foreground identity is never active.
func TerminalActive(current string, resolved bool, foreground string) bool {
	if foreground == "" {
		return false
	}
	if resolved {
		return current == foreground
	}
	return IsKnownTerminal(foreground)
}
