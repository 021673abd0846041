package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReply struct {
	out   string
	err   error
	delay time.Duration
}

// fakeRunner answers commands by program name.
type fakeRunner struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   []string
}

func (f *fakeRunner) run(ctx context.Context, name string, _ ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	reply, ok := f.replies[name]
	f.mu.Unlock()

	if !ok {
		return "", errors.New("command not found")
	}
	if reply.delay > 0 {
		select {
		case <-time.After(reply.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return reply.out, reply.err
}

func newTestProbe(replies map[string]fakeReply, env map[string]string) (*Probe, *fakeRunner) {
	runner := &fakeRunner{replies: replies}
	platform := DarwinPlatform()
	probe := NewProbe(Options{
		Platform: &platform,
		Runner:   runner.run,
		Env:      MapEnv(env),
		Timeout:  100 * time.Millisecond,
	})
	return probe, runner
}

func TestProbe_States(t *testing.T) {
	t.Parallel()

	const locked = `"IOConsoleLocked" = Yes`
	const unlocked = `"IOConsoleLocked" = No`

	tests := map[string]struct {
		replies map[string]fakeReply
		env     map[string]string
		want    SystemState
	}{
		"unlocked and current terminal in front": {
			replies: map[string]fakeReply{
				"ioreg":     {out: unlocked},
				"osascript": {out: "com.googlecode.iterm2"},
			},
			env:  map[string]string{"ITERM_SESSION_ID": "w0t0p0"},
			want: SystemState{IsScreenLocked: false, IsTerminalActive: true},
		},
		"unlocked and browser in front": {
			replies: map[string]fakeReply{
				"ioreg":     {out: unlocked},
				"osascript": {out: "com.google.Chrome"},
			},
			env:  map[string]string{"ITERM_SESSION_ID": "w0t0p0"},
			want: SystemState{},
		},
		"locked": {
			replies: map[string]fakeReply{
				"ioreg":     {out: locked},
				"osascript": {out: "com.google.Chrome"},
			},
			want: SystemState{IsScreenLocked: true},
		},
		"unresolved terminal falls back to keyword match": {
			replies: map[string]fakeReply{
				"ioreg":     {out: unlocked},
				"osascript": {out: "com.apple.Terminal"},
			},
			env:  map[string]string{"TERM_PROGRAM": "tmux"},
			want: SystemState{IsTerminalActive: true},
		},
		"lock query fails but foreground still detected": {
			replies: map[string]fakeReply{
				"ioreg":     {err: errors.New("exit status 1")},
				"osascript": {out: "net.kovidgoyal.kitty"},
			},
			env:  map[string]string{"KITTY_WINDOW_ID": "1"},
			want: SystemState{IsScreenLocked: false, IsTerminalActive: true},
		},
		"foreground query fails but lock still detected": {
			replies: map[string]fakeReply{
				"ioreg":     {out: locked},
				"osascript": {err: errors.New("exit status 1")},
			},
			env:  map[string]string{"KITTY_WINDOW_ID": "1"},
			want: SystemState{IsScreenLocked: true, IsTerminalActive: false},
		},
		"everything fails": {
			replies: map[string]fakeReply{},
			want:    SystemState{},
		},
		"hung command times out to safe default": {
			replies: map[string]fakeReply{
				"ioreg":     {out: locked, delay: time.Minute},
				"osascript": {out: "com.apple.Terminal", delay: time.Minute},
			},
			want: SystemState{},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			probe, _ := newTestProbe(tt.replies, tt.env)
			assert.Equal(t, tt.want, probe.Probe(context.Background()))
		})
	}
}

func TestProbe_Idempotent(t *testing.T) {
	t.Parallel()

	probe, runner := newTestProbe(map[string]fakeReply{
		"ioreg":     {out: `"IOConsoleLocked" = No`},
		"osascript": {out: "com.apple.Terminal"},
	}, map[string]string{"TERM_PROGRAM": "Apple_Terminal"})

	first := probe.Probe(context.Background())
	second := probe.Probe(context.Background())

	assert.Equal(t, first, second)
	assert.Len(t, runner.calls, 4, "each probe must query the OS afresh")
}

func TestProbe_SubProbesRunConcurrently(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	runner := func(ctx context.Context, name string, _ ...string) (string, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		inFlight.Add(-1)
		return "", nil
	}

	platform := DarwinPlatform()
	probe := NewProbe(Options{Platform: &platform, Runner: runner, Env: MapEnv(nil), Timeout: time.Second})
	probe.Probe(context.Background())

	assert.Equal(t, int32(2), peak.Load())
}

func TestProbe_UnsupportedPlatform(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{replies: map[string]fakeReply{}}
	platform := UnsupportedPlatform("plan9")
	probe := NewProbe(Options{Platform: &platform, Runner: runner.run, Env: MapEnv(map[string]string{"TERM_PROGRAM": "Apple_Terminal"})})

	assert.Equal(t, SystemState{}, probe.Probe(context.Background()))
	assert.Empty(t, runner.calls)
}

func TestProbe_Detect(t *testing.T) {
	t.Parallel()

	probe, _ := newTestProbe(map[string]fakeReply{
		"ioreg":     {out: `"IOConsoleLocked" = No`},
		"osascript": {out: "com.google.Chrome"},
	}, map[string]string{"TERM_PROGRAM": "WezTerm"})

	details := probe.Detect(context.Background())
	require.Equal(t, "darwin", details.Platform)
	assert.Equal(t, "com.github.wez.wezterm", details.CurrentTerminal)
	assert.Equal(t, "com.google.Chrome", details.Foreground)
	assert.False(t, details.State.IsTerminalActive)
}

func TestSystemState_String(t *testing.T) {
	t.Parallel()
	s := SystemState{IsScreenLocked: true}
	assert.Equal(t, "screen_locked=true terminal_active=false", s.String())
}

func TestNewProbe_Defaults(t *testing.T) {
	t.Parallel()

	probe := NewProbe(Options{})
	assert.Equal(t, DefaultCommandTimeout, probe.timeout)
	assert.Equal(t, CurrentPlatform().Name, probe.platform.Name)
	assert.NotNil(t, probe.run)
	assert.NotNil(t, probe.env)
}
