package claude

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SettingsStatus represents the state of the hook configuration.
type SettingsStatus int

const (
	// StatusConfigured indicates every hook event runs claude-notify.
	StatusConfigured SettingsStatus = iota
	// StatusMissing indicates the settings file does not exist.
	StatusMissing
	// StatusPartial indicates some hook events are missing the claude-notify entry.
	StatusPartial
	// StatusNotInstalled indicates no hook event runs claude-notify.
	StatusNotInstalled
)

// String returns a human-readable representation of the status.
func (s SettingsStatus) String() string {
	switch s {
	case StatusConfigured:
		return "Configured"
	case StatusMissing:
		return "Missing"
	case StatusPartial:
		return "Partial"
	case StatusNotInstalled:
		return "NotInstalled"
	default:
		return "Unknown"
	}
}

// SettingsCheckResult contains the result of checking the hook configuration.
type SettingsCheckResult struct {
	Status   SettingsStatus
	Message  string
	FilePath string
	Missing  []string
}

// Scope selects which settings file is edited.
type Scope string

const (
	// ScopeUser is ~/.claude/settings.json.
	ScopeUser Scope = "user"
	// ScopeProject is .claude/settings.json in the project directory.
	ScopeProject Scope = "project"
	// ScopeLocal is .claude/settings.local.json in the project directory.
	ScopeLocal Scope = "local"
)

const (
	// SettingsDir is the directory containing Claude settings.
	SettingsDir = ".claude"
	// SettingsFileName is the shared settings file name.
	SettingsFileName = "settings.json"
	// LocalSettingsFileName is the uncommitted per-project settings file name.
	LocalSettingsFileName = "settings.local.json"
	// BinaryName identifies claude-notify hook commands regardless of path.
	BinaryName = "claude-notify"
)

// HookEvents are the Claude Code events claude-notify handles.
var HookEvents = []string{"Notification", "Stop"}

// SettingsPath returns the settings file path for scope. projectDir is
// ignored for ScopeUser.
func SettingsPath(scope Scope, projectDir string) (string, error) {
	switch scope {
	case ScopeUser, "":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, SettingsDir, SettingsFileName), nil
	case ScopeProject:
		return filepath.Join(projectDir, SettingsDir, SettingsFileName), nil
	case ScopeLocal:
		return filepath.Join(projectDir, SettingsDir, LocalSettingsFileName), nil
	default:
		return "", fmt.Errorf("unknown settings scope %q (valid: user, project, local)", scope)
	}
}

// Settings represents a Claude settings file with flexible JSON structure.
// Uses map[string]interface{} to preserve unknown fields during modification.
type Settings struct {
	data     map[string]interface{}
	filePath string
}

// Load reads and parses a Claude settings file.
// Returns a Settings instance even if the file doesn't exist (with empty data).
// Returns an error only for actual failures like permission errors or malformed JSON.
func Load(settingsPath string) (*Settings, error) {
	s := &Settings{
		data:     make(map[string]interface{}),
		filePath: settingsPath,
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.data); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", settingsPath, err)
	}

	return s, nil
}

// FilePath returns the path to the settings file.
func (s *Settings) FilePath() string {
	return s.filePath
}

// Exists returns true if the settings file exists on disk.
func (s *Settings) Exists() bool {
	_, err := os.Stat(s.filePath)
	return err == nil
}

// getHooks returns the hooks object, creating it if create is set.
func (s *Settings) getHooks(create bool) map[string]interface{} {
	hooks, ok := s.data["hooks"].(map[string]interface{})
	if !ok && create {
		hooks = make(map[string]interface{})
		s.data["hooks"] = hooks
	}
	return hooks
}

// eventGroups returns the matcher groups configured for event.
func (s *Settings) eventGroups(event string) []interface{} {
	hooks := s.getHooks(false)
	if hooks == nil {
		return nil
	}
	groups, _ := hooks[event].([]interface{})
	return groups
}

// groupCommands returns the hook entries of one matcher group.
func groupCommands(group interface{}) []interface{} {
	g, ok := group.(map[string]interface{})
	if !ok {
		return nil
	}
	cmds, _ := g["hooks"].([]interface{})
	return cmds
}

// isNotifyCommand reports whether a hook entry runs claude-notify.
func isNotifyCommand(entry interface{}) bool {
	e, ok := entry.(map[string]interface{})
	if !ok {
		return false
	}
	cmd, _ := e["command"].(string)
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return false
	}
	return filepath.Base(fields[0]) == BinaryName
}

// HasHook reports whether event has a claude-notify hook entry.
func (s *Settings) HasHook(event string) bool {
	for _, group := range s.eventGroups(event) {
		for _, entry := range groupCommands(group) {
			if isNotifyCommand(entry) {
				return true
			}
		}
	}
	return false
}

// Check reports which hook events run claude-notify.
func (s *Settings) Check() SettingsCheckResult {
	if !s.Exists() {
		return SettingsCheckResult{
			Status:  StatusMissing,
			Message: fmt.Sprintf("%s not found (run 'claude-notify install' to configure)", s.filePath),
			Missing: append([]string(nil), HookEvents...),
		}
	}

	var missing []string
	for _, event := range HookEvents {
		if !s.HasHook(event) {
			missing = append(missing, event)
		}
	}

	switch len(missing) {
	case 0:
		return SettingsCheckResult{
			Status:   StatusConfigured,
			Message:  fmt.Sprintf("%s hooks configured", strings.Join(HookEvents, " and ")),
			FilePath: s.filePath,
		}
	case len(HookEvents):
		return SettingsCheckResult{
			Status:   StatusNotInstalled,
			Message:  "claude-notify hooks not installed (run 'claude-notify install')",
			FilePath: s.filePath,
			Missing:  missing,
		}
	default:
		return SettingsCheckResult{
			Status:   StatusPartial,
			Message:  fmt.Sprintf("missing %s hook (run 'claude-notify install' to fix)", strings.Join(missing, ", ")),
			FilePath: s.filePath,
			Missing:  missing,
		}
	}
}

// InstallHooks adds a hook entry running command to every event in
// HookEvents that does not already have one.
// Returns the events that were actually added. Calling it again is a no-op.
func (s *Settings) InstallHooks(command string) []string {
	var added []string
	hooks := s.getHooks(true)

	for _, event := range HookEvents {
		if s.HasHook(event) {
			continue
		}
		group := map[string]interface{}{
			"matcher": "",
			"hooks": []interface{}{
				map[string]interface{}{
					"type":    "command",
					"command": command,
				},
			},
		}
		hooks[event] = append(s.eventGroups(event), group)
		added = append(added, event)
	}

	return added
}

// RemoveHooks deletes every claude-notify hook entry. Matcher groups and
// events left empty are removed; other hooks are untouched.
// Returns the events that had an entry removed.
func (s *Settings) RemoveHooks() []string {
	hooks := s.getHooks(false)
	if hooks == nil {
		return nil
	}

	var removed []string
	for _, event := range HookEvents {
		groups := s.eventGroups(event)
		if groups == nil {
			continue
		}

		changed := false
		kept := make([]interface{}, 0, len(groups))
		for _, group := range groups {
			entries := groupCommands(group)
			if entries == nil {
				kept = append(kept, group)
				continue
			}
			remaining := make([]interface{}, 0, len(entries))
			for _, entry := range entries {
				if isNotifyCommand(entry) {
					changed = true
					continue
				}
				remaining = append(remaining, entry)
			}
			if len(remaining) == 0 {
				continue
			}
			group.(map[string]interface{})["hooks"] = remaining
			kept = append(kept, group)
		}

		if !changed {
			continue
		}
		removed = append(removed, event)
		if len(kept) == 0 {
			delete(hooks, event)
		} else {
			hooks[event] = kept
		}
	}

	if len(hooks) == 0 {
		delete(s.data, "hooks")
	}
	return removed
}

// Save writes the settings to disk using atomic write (temp file + rename).
// Creates the .claude directory if it doesn't exist.
// Written JSON is pretty-printed with indentation for human readability.
func (s *Settings) Save() error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}

	// Add trailing newline for POSIX compliance
	data = append(data, '\n')

	return atomicWrite(s.filePath, data)
}

// CheckPath loads the settings at settingsPath and checks them.
func CheckPath(settingsPath string) (SettingsCheckResult, error) {
	settings, err := Load(settingsPath)
	if err != nil {
		return SettingsCheckResult{}, fmt.Errorf("loading claude settings: %w", err)
	}
	return settings.Check(), nil
}

// atomicWrite writes data to a file atomically using temp file + rename.
func atomicWrite(filePath string, data []byte) error {
	dir := filepath.Dir(filePath)
	tmpFile, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", filePath, err)
	}

	// Clear tmpPath so defer doesn't try to remove the final file
	tmpPath = ""
	return nil
}
