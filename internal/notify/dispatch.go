package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultSendTimeout bounds a single channel send when no timeout is configured.
const DefaultSendTimeout = 10 * time.Second

// Result is the outcome of one channel send.
type Result struct {
	Channel  Channel
	Err      error
	Duration time.Duration
}

// OK reports whether the send succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Dispatcher fans a payload out to the senders of the selected channels.
type Dispatcher struct {
	registry Registry
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher. A non-positive timeout uses DefaultSendTimeout.
func NewDispatcher(registry Registry, timeout time.Duration, logger zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	if registry == nil {
		registry = Registry{}
	}
	return &Dispatcher{registry: registry, timeout: timeout, logger: logger}
}

// Dispatch sends p to every channel concurrently and waits for all of them.
// Results are returned in channel order. Failures are logged and recorded,
// never returned, and never stop sibling sends.
func (d *Dispatcher) Dispatch(ctx context.Context, channels []Channel, p Payload) []Result {
	results := make([]Result, len(channels))

	var g errgroup.Group
	for i, ch := range channels {
		i, ch := i, ch
		g.Go(func() error {
			results[i] = d.send(ctx, ch, p)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (d *Dispatcher) send(ctx context.Context, ch Channel, p Payload) (res Result) {
	res.Channel = ch
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%s sender panicked: %v", ch, r)
		}
		res.Duration = time.Since(start)
		d.log(res)
	}()

	sender, ok := d.registry[ch]
	if !ok || sender == nil {
		res.Err = fmt.Errorf("%w: %s", ErrNoSender, ch)
		return res
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := sender.Send(sendCtx, p); err != nil {
		res.Err = fmt.Errorf("send via %s: %w", ch, err)
	}
	return res
}

func (d *Dispatcher) log(res Result) {
	if res.Err != nil {
		d.logger.Warn().
			Str("channel", string(res.Channel)).
			Dur("duration", res.Duration).
			Err(res.Err).
			Msg("notification failed")
		return
	}
	d.logger.Info().
		Str("channel", string(res.Channel)).
		Dur("duration", res.Duration).
		Msg("notification sent")
}
