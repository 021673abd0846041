// Package health implements the checks behind `claude-notify doctor`.
package health

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/claude-notify/internal/claude"
	"github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/ariel-frischer/claude-notify/internal/state"
	"github.com/fatih/color"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Warning bool // failed, but does not fail the report
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// add appends a check and updates the overall status.
func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed && !c.Warning {
		r.Passed = false
	}
}

// Options configures RunHealthChecks.
type Options struct {
	// ConfigPath is the config file that was loaded.
	ConfigPath string
	// Config is the loaded configuration; nil when loading failed.
	Config *config.Config
	// ConfigErr is the error from config.Load, if any.
	ConfigErr error
	// SettingsPath is the Claude settings file expected to hold the hooks.
	SettingsPath string
	// Platform supplies the state probe commands. Zero value means the current platform.
	Platform *state.Platform
	// LookPath resolves executables. Nil means exec.LookPath.
	LookPath func(string) (string, error)
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(opts Options) *HealthReport {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	platform := state.CurrentPlatform()
	if opts.Platform != nil {
		platform = *opts.Platform
	}

	report := &HealthReport{
		Checks: make([]CheckResult, 0),
		Passed: true,
	}

	report.add(CheckConfig(opts.ConfigPath, opts.ConfigErr))

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	report.add(CheckLocalNotifier(cfg, notify.LocalTool(), opts.LookPath))
	report.add(CheckNtfy(cfg))
	for _, c := range CheckProbeTools(platform, opts.LookPath) {
		report.add(c)
	}
	if opts.SettingsPath != "" {
		report.add(CheckHooks(opts.SettingsPath))
	}

	return report
}

// CheckConfig reports whether the config file loaded cleanly.
func CheckConfig(path string, loadErr error) CheckResult {
	if loadErr != nil {
		return CheckResult{
			Name:    "Config",
			Passed:  false,
			Message: loadErr.Error(),
		}
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return CheckResult{
			Name:    "Config",
			Passed:  true,
			Message: fmt.Sprintf("%s not found, using defaults", path),
		}
	}
	return CheckResult{
		Name:    "Config",
		Passed:  true,
		Message: fmt.Sprintf("%s is valid", path),
	}
}

// CheckLocalNotifier checks that the platform notifier tool is installed
// when the local channel is enabled.
func CheckLocalNotifier(cfg *config.Config, tool string, lookPath func(string) (string, error)) CheckResult {
	const name = "Local notifier"
	if !cfg.TerminalNotifier.Enabled {
		return CheckResult{Name: name, Passed: true, Message: "disabled in config"}
	}
	if tool == "" {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("no local notifier on %s (set terminal_notifier.enabled to false)", notify.Platform()),
		}
	}
	if _, err := lookPath(tool); err != nil {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%s not found in PATH", tool),
		}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s found", tool)}
}

// CheckNtfy checks that the ntfy destination is usable.
func CheckNtfy(cfg *config.Config) CheckResult {
	const name = "ntfy"
	if strings.TrimSpace(cfg.Ntfy.Topic) == "" {
		return CheckResult{Name: name, Passed: false, Message: notify.ErrTopicRequired.Error()}
	}
	sender := notify.NewNtfySender(cfg.NtfyOptions(), nil)
	msg := fmt.Sprintf("publishing to %s", sender.Endpoint())
	if cfg.Ntfy.Token != "" {
		msg += " (token set)"
	}
	return CheckResult{Name: name, Passed: true, Message: msg}
}

// CheckProbeTools checks the commands used to detect screen lock and the
// foreground application. Missing tools only degrade detection, so they
// are reported as warnings.
func CheckProbeTools(p state.Platform, lookPath func(string) (string, error)) []CheckResult {
	probes := []struct {
		name string
		cmd  func(state.LookupEnv) []string
	}{
		{"Screen lock detection", p.LockCommand},
		{"Foreground detection", p.ForegroundCommand},
	}

	results := make([]CheckResult, 0, len(probes))
	for _, probe := range probes {
		if probe.cmd == nil {
			results = append(results, CheckResult{
				Name:    probe.name,
				Warning: true,
				Message: fmt.Sprintf("not supported on %s", p.Name),
			})
			continue
		}
		argv := probe.cmd(state.OSEnv)
		if _, err := lookPath(argv[0]); err != nil {
			results = append(results, CheckResult{
				Name:    probe.name,
				Warning: true,
				Message: fmt.Sprintf("%s not found in PATH", argv[0]),
			})
			continue
		}
		results = append(results, CheckResult{
			Name:    probe.name,
			Passed:  true,
			Message: fmt.Sprintf("%s found", argv[0]),
		})
	}
	return results
}

// CheckHooks checks that Claude Code runs claude-notify for its events.
func CheckHooks(settingsPath string) CheckResult {
	const name = "Claude hooks"
	result, err := claude.CheckPath(settingsPath)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	}
	return CheckResult{
		Name:    name,
		Passed:  result.Status == claude.StatusConfigured,
		Message: result.Message,
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	var b strings.Builder
	for _, check := range report.Checks {
		switch {
		case check.Passed:
			fmt.Fprintf(&b, "%s %s: %s\n", green("✓"), check.Name, check.Message)
		case check.Warning:
			fmt.Fprintf(&b, "%s %s: %s\n", yellow("!"), check.Name, check.Message)
		default:
			fmt.Fprintf(&b, "%s %s: %s\n", red("✗"), check.Name, check.Message)
		}
	}

	return b.String()
}
