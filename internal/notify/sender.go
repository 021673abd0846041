package notify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Sender delivers a payload over a single channel.
type Sender interface {
	// Send delivers the payload. Implementations must honor ctx cancellation.
	Send(ctx context.Context, p Payload) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, p Payload) error

// Send calls f(ctx, p).
func (f SenderFunc) Send(ctx context.Context, p Payload) error {
	return f(ctx, p)
}

// Registry maps each channel to its sender.
type Registry map[Channel]Sender

// CommandRunner runs an external command and returns an error on a non-zero exit.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Platform returns the current operating system name
func Platform() string {
	return runtime.GOOS
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// execRunner runs the command and folds stderr into the returned error.
func execRunner(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// LocalSender sends desktop notifications through the platform's native tool.
type LocalSender struct {
	run       CommandRunner
	available func(string) bool
}

// NewLocalSender creates a LocalSender that runs the real platform command.
func NewLocalSender() *LocalSender {
	return &LocalSender{run: execRunner, available: toolAvailable}
}

// NewLocalSenderWithRunner creates a LocalSender with a custom runner (for testing).
// The tool is always treated as available.
func NewLocalSenderWithRunner(run CommandRunner) *LocalSender {
	return &LocalSender{run: run, available: func(string) bool { return true }}
}

// Send builds the platform command for p and runs it.
func (s *LocalSender) Send(ctx context.Context, p Payload) error {
	p.Title = Sanitize(p.Title)
	p.Message = Sanitize(p.Message)
	p.ActivateTarget = Sanitize(p.ActivateTarget)

	name, args, err := localCommand(p)
	if err != nil {
		return err
	}
	if !s.available(name) {
		return fmt.Errorf("%w: %s not found in PATH", ErrUnavailable, name)
	}
	return s.run(ctx, name, args...)
}

// Available reports whether the platform notifier tool can be found.
func (s *LocalSender) Available() bool {
	name, _, err := localCommand(Payload{})
	if err != nil {
		return false
	}
	return s.available(name)
}

// LocalTool returns the name of the platform notifier tool, or an empty
// string on unsupported platforms.
func LocalTool() string {
	name, _, err := localCommand(Payload{})
	if err != nil {
		return ""
	}
	return name
}
