package health

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/ariel-frischer/claude-notify/internal/state"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// lookPathFor returns a LookPath that only finds the named tools.
func lookPathFor(found ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestCheckConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(existing, []byte(`{}`), 0o600))

	tests := map[string]struct {
		path       string
		err        error
		wantPassed bool
		wantMsg    string
	}{
		"load error": {
			path:    existing,
			err:     &config.ValidationError{FilePath: existing, Field: "channel_mode", Message: "bad"},
			wantMsg: "field 'channel_mode'",
		},
		"missing file": {
			path:       filepath.Join(dir, "missing.json"),
			wantPassed: true,
			wantMsg:    "using defaults",
		},
		"valid file": {
			path:       existing,
			wantPassed: true,
			wantMsg:    "is valid",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := CheckConfig(tt.path, tt.err)
			assert.Equal(t, "Config", result.Name)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Contains(t, result.Message, tt.wantMsg)
		})
	}
}

func TestCheckLocalNotifier(t *testing.T) {
	t.Parallel()

	enabled := config.Defaults()
	disabled := config.Defaults()
	disabled.TerminalNotifier.Enabled = false

	tests := map[string]struct {
		cfg        *config.Config
		tool       string
		found      []string
		wantPassed bool
		wantMsg    string
	}{
		"disabled":       {cfg: disabled, tool: "notify-send", wantPassed: true, wantMsg: "disabled"},
		"found":          {cfg: enabled, tool: "notify-send", found: []string{"notify-send"}, wantPassed: true, wantMsg: "notify-send found"},
		"missing":        {cfg: enabled, tool: "terminal-notifier", wantMsg: "terminal-notifier not found"},
		"unsupported os": {cfg: enabled, tool: "", wantMsg: "no local notifier"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := CheckLocalNotifier(tt.cfg, tt.tool, lookPathFor(tt.found...))
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Contains(t, result.Message, tt.wantMsg)
		})
	}
}

func TestCheckNtfy(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	result := CheckNtfy(cfg)
	assert.True(t, result.Passed)
	assert.Equal(t, "publishing to https://ntfy.sh/claude-notify", result.Message)

	cfg.Ntfy.Token = "tk"
	assert.Contains(t, CheckNtfy(cfg).Message, "token set")

	cfg.Ntfy.Topic = " "
	result = CheckNtfy(cfg)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "topic")
}

func TestCheckProbeTools(t *testing.T) {
	t.Parallel()

	t.Run("linux with loginctl only", func(t *testing.T) {
		t.Parallel()
		results := CheckProbeTools(state.LinuxPlatform(), lookPathFor("loginctl"))
		require.Len(t, results, 2)
		assert.True(t, results[0].Passed)
		assert.False(t, results[1].Passed)
		assert.True(t, results[1].Warning)
		assert.Contains(t, results[1].Message, "xdotool")
	})

	t.Run("unsupported platform", func(t *testing.T) {
		t.Parallel()
		results := CheckProbeTools(state.UnsupportedPlatform("plan9"), lookPathFor())
		require.Len(t, results, 2)
		for _, r := range results {
			assert.True(t, r.Warning)
			assert.Contains(t, r.Message, "not supported on plan9")
		}
	})
}

func TestCheckHooks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := CheckHooks(filepath.Join(dir, "settings.json"))
	assert.False(t, missing.Passed)

	path := filepath.Join(dir, "configured.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hooks": {
		"Notification": [{"hooks": [{"type": "command", "command": "claude-notify"}]}],
		"Stop":         [{"hooks": [{"type": "command", "command": "claude-notify"}]}]
	}}`), 0o600))
	assert.True(t, CheckHooks(path).Passed)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	result := CheckHooks(bad)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "parsing settings file")
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	linux := state.LinuxPlatform()
	report := RunHealthChecks(Options{
		ConfigPath:   filepath.Join(t.TempDir(), "config.json"),
		Config:       config.Defaults(),
		SettingsPath: filepath.Join(t.TempDir(), "settings.json"),
		Platform:     &linux,
		LookPath:     lookPathFor("notify-send", "terminal-notifier", "powershell"),
	})

	names := make([]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Config",
		"Local notifier",
		"ntfy",
		"Screen lock detection",
		"Foreground detection",
		"Claude hooks",
	}, names)
	assert.False(t, report.Passed, "missing hooks fail the report")
}

func TestRunHealthChecks_WarningsDoNotFail(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.TerminalNotifier.Enabled = false
	unsupported := state.UnsupportedPlatform("plan9")

	report := RunHealthChecks(Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.json"),
		Config:     cfg,
		Platform:   &unsupported,
		LookPath:   lookPathFor(),
	})

	assert.True(t, report.Passed)
	assert.Len(t, report.Checks, 5)
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &HealthReport{
		Checks: []CheckResult{
			{Name: "Config", Passed: true, Message: "ok"},
			{Name: "Foreground detection", Warning: true, Message: "xdotool not found in PATH"},
			{Name: "ntfy", Passed: false, Message: "ntfy topic is required"},
		},
	}

	lines := strings.Split(strings.TrimSpace(FormatReport(report)), "\n")
	assert.Equal(t, []string{
		"✓ Config: ok",
		"! Foreground detection: xdotool not found in PATH",
		"✗ ntfy: ntfy topic is required",
	}, lines)
}
