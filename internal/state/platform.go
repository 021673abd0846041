package state

import "strings"

// Platform describes how to query screen lock and foreground application on
// one operating system. A nil command means the signal is unsupported.
type Platform struct {
	Name string

	// LockCommand returns the command whose output reveals the lock state.
	LockCommand func(lookup LookupEnv) []string
	// ParseLock interprets LockCommand output.
	ParseLock func(output string) bool

	// ForegroundCommand returns the command printing the foreground application.
	ForegroundCommand func(lookup LookupEnv) []string
	// ParseForeground turns ForegroundCommand output into an application identifier.
	ParseForeground func(output string) string
}

// DarwinPlatform queries ioreg for IOConsoleLocked and osascript for the
// frontmost application's bundle identifier.
func DarwinPlatform() Platform {
	return Platform{
		Name: "darwin",
		LockCommand: func(LookupEnv) []string {
			return []string{"ioreg", "-n", "Root", "-d1"}
		},
		ParseLock: func(output string) bool {
			return strings.Contains(output, `"IOConsoleLocked" = Yes`)
		},
		ForegroundCommand: func(LookupEnv) []string {
			return []string{"osascript", "-e", "id of application (path to frontmost application as text)"}
		},
		ParseForeground: strings.TrimSpace,
	}
}

// linuxClassIDs maps X11 WM_CLASS names to the identifiers used by
// ResolveCurrentTerminal so both sides of the comparison agree.
var linuxClassIDs = map[string]string{
	"kitty":                  "net.kovidgoyal.kitty",
	"alacritty":              "io.alacritty",
	"org.wezfurlong.wezterm": "com.github.wez.wezterm",
	"wezterm":                "com.github.wez.wezterm",
	"com.mitchellh.ghostty":  "com.mitchellh.ghostty",
	"ghostty":                "com.mitchellh.ghostty",
	"code":                   "com.microsoft.VSCode",
	"warp":                   "dev.warp.Warp-Stable",
}

// LinuxPlatform queries logind's LockedHint and xdotool's active window class.
func LinuxPlatform() Platform {
	return Platform{
		Name: "linux",
		LockCommand: func(lookup LookupEnv) []string {
			session := "self"
			if lookup != nil {
				if id, _ := lookup("XDG_SESSION_ID"); strings.TrimSpace(id) != "" {
					session = strings.TrimSpace(id)
				}
			}
			return []string{"loginctl", "show-session", session, "-p", "LockedHint", "--value"}
		},
		ParseLock: func(output string) bool {
			return strings.EqualFold(strings.TrimSpace(output), "yes")
		},
		ForegroundCommand: func(LookupEnv) []string {
			return []string{"xdotool", "getactivewindow", "getwindowclassname"}
		},
		ParseForeground: parseLinuxClass,
	}
}

func parseLinuxClass(output string) string {
	class := strings.TrimSpace(output)
	if class == "" {
		return ""
	}
	if id, ok := linuxClassIDs[strings.ToLower(class)]; ok {
		return id
	}
	return class
}

// UnsupportedPlatform reports nothing; both signals stay false.
func UnsupportedPlatform(name string) Platform {
	return Platform{Name: name}
}
