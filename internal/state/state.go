package state

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultCommandTimeout bounds each OS query.
const DefaultCommandTimeout = 2 * time.Second

// errUnsupported marks a signal the platform cannot query.
var errUnsupported = errors.New("not supported on this platform")

// SystemState is the desktop state observed for one hook invocation.
type SystemState struct {
	IsScreenLocked   bool `json:"is_screen_locked"`
	IsTerminalActive bool `json:"is_terminal_active"`
}

// String formats the state for logs and CLI output.
func (s SystemState) String() string {
	return fmt.Sprintf("screen_locked=%t terminal_active=%t", s.IsScreenLocked, s.IsTerminalActive)
}

// Details is a SystemState plus the identities it was derived from.
type Details struct {
	State SystemState `json:"state"`
	// CurrentTerminal is the launching terminal's identifier, empty if unresolved.
	CurrentTerminal string `json:"current_terminal,omitempty"`
	// Foreground is the foreground application's identifier, empty on failure.
	Foreground string `json:"foreground,omitempty"`
	// Platform is the probed platform name.
	Platform string `json:"platform"`
}

// Prober produces a SystemState. Implementations never fail.
type Prober interface {
	Probe(ctx context.Context) SystemState
}

// Runner runs a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// Options configures a Probe. Zero fields use defaults.
type Options struct {
	Platform *Platform
	Runner   Runner
	Env      LookupEnv
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// Probe queries the OS for screen lock and terminal foreground state.
type Probe struct {
	platform Platform
	run      Runner
	env      LookupEnv
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewProbe creates a Probe for the current platform.
func NewProbe(opts Options) *Probe {
	p := &Probe{
		platform: CurrentPlatform(),
		run:      execRunner,
		env:      OSEnv,
		timeout:  DefaultCommandTimeout,
		logger:   opts.Logger,
	}
	if opts.Platform != nil {
		p.platform = *opts.Platform
	}
	if opts.Runner != nil {
		p.run = opts.Runner
	}
	if opts.Env != nil {
		p.env = opts.Env
	}
	if opts.Timeout > 0 {
		p.timeout = opts.Timeout
	}
	return p
}

// Probe returns the current SystemState.
func (p *Probe) Probe(ctx context.Context) SystemState {
	return p.Detect(ctx).State
}

// Detect runs the screen-lock and foreground queries concurrently and
// combines them. A failure in one query never affects the other.
func (p *Probe) Detect(ctx context.Context) Details {
	var (
		locked     bool
		foreground string
		g          errgroup.Group
	)

	g.Go(func() error {
		locked = p.screenLocked(ctx)
		return nil
	})
	g.Go(func() error {
		foreground = p.foreground(ctx)
		return nil
	})
	_ = g.Wait()

	current, resolved := ResolveCurrentTerminal(p.env)
	details := Details{
		State: SystemState{
			IsScreenLocked:   locked,
			IsTerminalActive: TerminalActive(current, resolved, foreground),
		},
		CurrentTerminal: current,
		Foreground:      foreground,
		Platform:        p.platform.Name,
	}

	p.logger.Debug().
		Str("platform", details.Platform).
		Str("current_terminal", current).
		Str("foreground", foreground).
		Bool("screen_locked", details.State.IsScreenLocked).
		Bool("terminal_active", details.State.IsTerminalActive).
		Msg("system state detected")

	return details
}

func (p *Probe) screenLocked(ctx context.Context) bool {
	if p.platform.LockCommand == nil || p.platform.ParseLock == nil {
		p.logger.Debug().Err(errUnsupported).Msg("screen lock detection skipped")
		return false
	}
	out, err := p.query(ctx, p.platform.LockCommand(p.env))
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to detect screen lock status")
		return false
	}
	return p.platform.ParseLock(out)
}

func (p *Probe) foreground(ctx context.Context) string {
	if p.platform.ForegroundCommand == nil || p.platform.ParseForeground == nil {
		p.logger.Debug().Err(errUnsupported).Msg("foreground detection skipped")
		return ""
	}
	out, err := p.query(ctx, p.platform.ForegroundCommand(p.env))
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to detect foreground application")
		return ""
	}
	return p.platform.ParseForeground(out)
}

func (p *Probe) query(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", errUnsupported
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.run(ctx, argv[0], argv[1:]...)
}

// execRunner runs the command and returns its trimmed stdout.
func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("running %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}
