package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCurrentTerminal(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		env    map[string]string
		wantID string
		wantOK bool
	}{
		"iTerm2 via LC_TERMINAL": {
			env:    map[string]string{"LC_TERMINAL": "iTerm2"},
			wantID: "com.googlecode.iterm2", wantOK: true,
		},
		"iTerm2 via session id": {
			env:    map[string]string{"ITERM_SESSION_ID": "w0t0p0:12345678-1234-1234-1234-123456789012"},
			wantID: "com.googlecode.iterm2", wantOK: true,
		},
		"Ghostty": {
			env:    map[string]string{"GHOSTTY_RESOURCES_DIR": "/Applications/Ghostty.app/Contents/Resources/ghostty"},
			wantID: "com.mitchellh.ghostty", wantOK: true,
		},
		"WezTerm": {
			env:    map[string]string{"WEZTERM_EXECUTABLE": "/Applications/WezTerm.app/Contents/MacOS/wezterm-gui"},
			wantID: "com.github.wez.wezterm", wantOK: true,
		},
		"Kitty": {
			env:    map[string]string{"KITTY_WINDOW_ID": "1"},
			wantID: "net.kovidgoyal.kitty", wantOK: true,
		},
		"Alacritty": {
			env:    map[string]string{"ALACRITTY_SOCKET": "/tmp/alacritty.sock"},
			wantID: "io.alacritty", wantOK: true,
		},
		"Warp": {
			env:    map[string]string{"WARP_IS_LOCAL_SHELL_SESSION": "1"},
			wantID: "dev.warp.Warp-Stable", wantOK: true,
		},
		"TERM_PROGRAM Apple_Terminal": {
			env:    map[string]string{"TERM_PROGRAM": "Apple_Terminal"},
			wantID: "com.apple.Terminal", wantOK: true,
		},
		"TERM_PROGRAM vscode": {
			env:    map[string]string{"TERM_PROGRAM": "vscode"},
			wantID: "com.microsoft.VSCode", wantOK: true,
		},
		"session marker beats TERM_PROGRAM": {
			env:    map[string]string{"KITTY_WINDOW_ID": "3", "TERM_PROGRAM": "Apple_Terminal"},
			wantID: "net.kovidgoyal.kitty", wantOK: true,
		},
		"tmux TERM_PROGRAM falls through to bundle id": {
			env:    map[string]string{"TERM_PROGRAM": "tmux", "__CFBundleIdentifier": "com.jetbrains.WebStorm"},
			wantID: "com.jetbrains.WebStorm", wantOK: true,
		},
		"TERM_PROGRAM beats bundle id": {
			env:    map[string]string{"TERM_PROGRAM": "iTerm.app", "__CFBundleIdentifier": "com.apple.Terminal"},
			wantID: "com.googlecode.iterm2", wantOK: true,
		},
		"unknown TERM_PROGRAM falls through to bundle id": {
			env:    map[string]string{"TERM_PROGRAM": "Hyper", "__CFBundleIdentifier": "co.zeit.hyper"},
			wantID: "co.zeit.hyper", wantOK: true,
		},
		"tmux only": {
			env:    map[string]string{"TERM_PROGRAM": "tmux"},
			wantOK: false,
		},
		"LC_TERMINAL other value ignored": {
			env:    map[string]string{"LC_TERMINAL": "Other"},
			wantOK: false,
		},
		"empty markers ignored": {
			env:    map[string]string{"KITTY_WINDOW_ID": "", "__CFBundleIdentifier": "  "},
			wantOK: false,
		},
		"nothing set": {
			env:    map[string]string{},
			wantOK: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			id, ok := ResolveCurrentTerminal(MapEnv(tt.env))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestIsKnownTerminal(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id   string
		want bool
	}{
		"Apple Terminal":          {id: "com.apple.Terminal", want: true},
		"iTerm2":                  {id: "com.googlecode.iterm2", want: true},
		"WebStorm registry":       {id: "com.jetbrains.WebStorm", want: true},
		"Cursor registry":         {id: "com.todesktop.230313mzl4w4u92", want: true},
		"keyword terminal":        {id: "org.gnome.Terminal", want: true},
		"keyword console":         {id: "org.kde.konsole.Console", want: true},
		"keyword shell uppercase": {id: "com.example.SHELLAPP", want: true},
		"keyword prompt":          {id: "com.panic.Prompt3", want: true},
		"linux class keyword":     {id: "gnome-terminal-server", want: true},
		"Chrome":                  {id: "com.google.Chrome", want: false},
		"Slack":                   {id: "com.tinyspeck.slackmacgap", want: false},
		"registry is exact":       {id: "com.jetbrains.webstorm", want: false},
		"empty":                   {id: "", want: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsKnownTerminal(tt.id))
		})
	}
}

func TestTerminalActive(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		current    string
		resolved   bool
		foreground string
		want       bool
	}{
		"resolved and matching": {
			current: "com.googlecode.iterm2", resolved: true, foreground: "com.googlecode.iterm2", want: true,
		},
		"resolved but other terminal in front": {
			current: "com.googlecode.iterm2", resolved: true, foreground: "com.apple.Terminal", want: false,
		},
		"resolved but browser in front": {
			current: "com.jetbrains.WebStorm", resolved: true, foreground: "com.google.Chrome", want: false,
		},
		"unresolved with terminal in front": {
			resolved: false, foreground: "com.apple.Terminal", want: true,
		},
		"unresolved with browser in front": {
			resolved: false, foreground: "com.google.Chrome", want: false,
		},
		"foreground unknown": {
			current: "com.apple.Terminal", resolved: true, foreground: "", want: false,
		},
		"unresolved and foreground unknown": {
			resolved: false, foreground: "", want: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TerminalActive(tt.current, tt.resolved, tt.foreground))
		})
	}
}
