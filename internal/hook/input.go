// Package hook decodes the JSON document Claude Code writes to a hook's stdin.
package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// EventName is the hook_event_name discriminator.
type EventName string

const (
	// EventNotification is sent when Claude Code needs the user's attention.
	EventNotification EventName = "Notification"
	// EventStop is sent when a session's turn finishes.
	EventStop EventName = "Stop"
)

// Known notification_type values. Other values are accepted and routed to
// the default notification config.
const (
	TypePermissionPrompt  = "permission_prompt"
	TypeIdlePrompt        = "idle_prompt"
	TypeAuthSuccess       = "auth_success"
	TypeElicitationDialog = "elicitation_dialog"
)

// MaxInputSize bounds the hook document read from stdin.
const MaxInputSize = 1 << 20

// ErrEmptyInput is returned when stdin holds only whitespace.
var ErrEmptyInput = errors.New("empty hook input")

// ErrInvalidInput is wrapped by every shape validation failure.
var ErrInvalidInput = errors.New("invalid hook input")

// NotificationInput is the payload of a Notification event.
type NotificationInput struct {
	NotificationType string `json:"notification_type"`
	Message          string `json:"message"`
	SessionID        string `json:"session_id,omitempty"`
	Timestamp        string `json:"timestamp,omitempty"`
}

// StopInput is the payload of a Stop event.
type StopInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	Cwd            string `json:"cwd,omitempty"`
	PermissionMode string `json:"permission_mode,omitempty"`
	StopHookActive bool   `json:"stop_hook_active,omitempty"`
}

// Input is a decoded hook event. Exactly one of Notification and Stop is set
// for recognized events; both are nil for any other event name.
type Input struct {
	Event        EventName
	Notification *NotificationInput
	Stop         *StopInput
}

// Recognized reports whether the event is handled.
func (in Input) Recognized() bool {
	return in.Notification != nil || in.Stop != nil
}

type envelope struct {
	HookEventName *string `json:"hook_event_name"`
}

// Read reads at most MaxInputSize bytes of r and decodes them with Parse.
// Larger input is rejected with ErrInvalidInput.
func Read(r io.Reader) (Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return Input{}, fmt.Errorf("reading hook input: %w", err)
	}
	if len(data) > MaxInputSize {
		return Input{}, fmt.Errorf("%w: larger than %d bytes", ErrInvalidInput, MaxInputSize)
	}
	return Parse(data)
}

// Parse decodes a hook event.
//
// Whitespace-only input returns ErrEmptyInput. Non-JSON input, a non-object
// document, or a missing or non-string hook_event_name returns an error
// wrapping ErrInvalidInput. A string event name other than Notification or
// Stop decodes successfully into an unrecognized Input.
func Parse(data []byte) (Input, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Input{}, ErrEmptyInput
	}
	if data[0] != '{' {
		return Input{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidInput)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if env.HookEventName == nil {
		return Input{}, fmt.Errorf("%w: missing hook_event_name", ErrInvalidInput)
	}

	in := Input{Event: EventName(*env.HookEventName)}
	switch in.Event {
	case EventNotification:
		var n NotificationInput
		if err := json.Unmarshal(data, &n); err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.Notification = &n
	case EventStop:
		var s StopInput
		if err := json.Unmarshal(data, &s); err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.Stop = &s
	}
	return in, nil
}
