//go:build linux

package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSender_NotifySendArgs(t *testing.T) {
	t.Setenv("DISPLAY", ":0")

	var calls []recordedCommand
	sender := NewLocalSenderWithRunner(recordingRunner(&calls, nil))

	err := sender.Send(context.Background(), Payload{
		Title:          "Claude Code",
		Message:        "needs\tpermission",
		ActivateTarget: "ignored",
	})
	require.NoError(t, err)
	require.Len(t, calls, 1)

	assert.Equal(t, "notify-send", calls[0].name)
	assert.Equal(t, []string{"-u", "normal", "-a", "Claude Code", "--", "Claude Code", "needspermission"}, calls[0].args)
}

func TestLocalSender_DashLeadingText(t *testing.T) {
	t.Setenv("DISPLAY", ":0")

	tests := map[string]struct {
		title   string
		message string
	}{
		"message looks like flags": {title: "Claude Code", message: "-u critical --help"},
		"negative count":           {title: "Claude Code", message: "-1 tests failed"},
		"title looks like a flag":  {title: "--version", message: "done"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var calls []recordedCommand
			sender := NewLocalSenderWithRunner(recordingRunner(&calls, nil))

			require.NoError(t, sender.Send(context.Background(), Payload{Title: tt.title, Message: tt.message}))
			require.Len(t, calls, 1)

			args := calls[0].args
			require.GreaterOrEqual(t, len(args), 3)
			assert.Equal(t, []string{"--", tt.title, tt.message}, args[len(args)-3:])
		})
	}
}

func TestLocalSender_NoDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	var calls []recordedCommand
	sender := NewLocalSenderWithRunner(recordingRunner(&calls, nil))

	err := sender.Send(context.Background(), NewPayload("t", "m"))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, calls)
}

func TestLocalSender_NonZeroExit(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")

	var calls []recordedCommand
	sender := NewLocalSenderWithRunner(recordingRunner(&calls, errors.New("exit status 1")))

	err := sender.Send(context.Background(), NewPayload("t", "m"))
	assert.EqualError(t, err, "exit status 1")
}

func TestHasDisplay(t *testing.T) {
	tests := map[string]struct {
		display string
		wayland string
		want    bool
	}{
		"x11":     {display: ":0", want: true},
		"wayland": {wayland: "wayland-0", want: true},
		"none":    {want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("DISPLAY", tt.display)
			t.Setenv("WAYLAND_DISPLAY", tt.wayland)
			assert.Equal(t, tt.want, hasDisplay())
		})
	}
}
