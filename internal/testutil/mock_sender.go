// Package testutil provides test utilities and helpers for claude-notify tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ariel-frischer/claude-notify/internal/notify"
)

// ErrMockSend is the default error returned by a failing MockSender.
var ErrMockSend = errors.New("mock send error")

// MockSender is a mock implementation of notify.Sender for testing.
// It records every call and can be configured to fail, delay, or block.
type MockSender struct {
	mu sync.Mutex

	// Configuration
	SendError error
	Delay     time.Duration
	SendFunc  func(context.Context, notify.Payload) error

	// Call tracking
	Calls       []notify.Payload
	LastPayload notify.Payload
	CompletedAt time.Time
}

// NewMockSender creates a new mock sender that always succeeds.
func NewMockSender() *MockSender {
	return &MockSender{Calls: make([]notify.Payload, 0)}
}

// WithError configures the mock to return err from Send.
func (m *MockSender) WithError(err error) *MockSender {
	m.SendError = err
	return m
}

// WithDelay configures the mock to wait d (or until ctx is done) before returning.
func (m *MockSender) WithDelay(d time.Duration) *MockSender {
	m.Delay = d
	return m
}

// WithSendFunc configures a custom send function.
func (m *MockSender) WithSendFunc(fn func(context.Context, notify.Payload) error) *MockSender {
	m.SendFunc = fn
	return m
}

// Send records the call and returns the configured error.
func (m *MockSender) Send(ctx context.Context, p notify.Payload) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, p)
	m.LastPayload = p
	delay := m.Delay
	fn := m.SendFunc
	sendErr := m.SendError
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if fn != nil {
		sendErr = fn(ctx, p)
	}

	m.mu.Lock()
	m.CompletedAt = time.Now()
	m.mu.Unlock()

	return sendErr
}

// CallCount returns the number of Send calls.
func (m *MockSender) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Last returns the most recent payload.
func (m *MockSender) Last() notify.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastPayload
}

// Reset clears all recorded calls
func (m *MockSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = make([]notify.Payload, 0)
	m.LastPayload = notify.Payload{}
	m.CompletedAt = time.Time{}
}
