// Package handler orchestrates a single hook event: probe state, apply the
// type config and policies, and dispatch to the selected channels.
package handler

import (
	"context"
	"strings"

	"github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/ariel-frischer/claude-notify/internal/hook"
	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/ariel-frischer/claude-notify/internal/policy"
	"github.com/ariel-frischer/claude-notify/internal/state"
	"github.com/rs/zerolog"
)

// messagePlaceholder is replaced in message templates.
const messagePlaceholder = "{message}"

// stopMessage fills the placeholder of a Stop template.
const stopMessage = "Session completed"

// Outcome describes how an event was handled.
type Outcome string

const (
	// OutcomeDispatched means at least one channel was attempted.
	OutcomeDispatched Outcome = "dispatched"
	// OutcomeDisabled means the event type is turned off in config.
	OutcomeDisabled Outcome = "disabled"
	// OutcomeSkipped means the user is looking at the terminal.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNoChannels means channel selection left nothing to send to.
	OutcomeNoChannels Outcome = "no_channels"
	// OutcomeIgnored means the hook event is not one claude-notify handles.
	OutcomeIgnored Outcome = "ignored"
)

// Dispatcher sends a payload to a set of channels.
type Dispatcher interface {
	Dispatch(ctx context.Context, channels []notify.Channel, p notify.Payload) []notify.Result
}

// Result is the record of one handled event.
type Result struct {
	Outcome    Outcome
	State      state.SystemState
	Channels   []notify.Channel
	Payload    notify.Payload
	Deliveries []notify.Result
}

// Failed returns the deliveries that did not succeed.
func (r Result) Failed() []notify.Result {
	var failed []notify.Result
	for _, d := range r.Deliveries {
		if !d.OK() {
			failed = append(failed, d)
		}
	}
	return failed
}

// Options configures a Handler.
type Options struct {
	Config     *config.Config
	Prober     state.Prober
	Dispatcher Dispatcher
	// Env resolves the launching terminal for the Stop activate target.
	// Nil means the process environment.
	Env    state.LookupEnv
	Logger zerolog.Logger
}

// Handler handles hook events. It holds no per-event state and may be
// reused.
type Handler struct {
	cfg        *config.Config
	prober     state.Prober
	dispatcher Dispatcher
	env        state.LookupEnv
	logger     zerolog.Logger
}

// New creates a Handler. A nil Config uses config.Defaults().
func New(opts Options) *Handler {
	h := &Handler{
		cfg:        opts.Config,
		prober:     opts.Prober,
		dispatcher: opts.Dispatcher,
		env:        opts.Env,
		logger:     opts.Logger,
	}
	if h.cfg == nil {
		h.cfg = config.Defaults()
	}
	if h.env == nil {
		h.env = state.OSEnv
	}
	return h
}

// Handle routes a decoded hook input to its event handler. Unrecognized
// events are ignored.
func (h *Handler) Handle(ctx context.Context, in hook.Input) Result {
	switch {
	case in.Notification != nil:
		return h.HandleNotification(ctx, *in.Notification)
	case in.Stop != nil:
		return h.HandleStop(ctx, *in.Stop)
	default:
		h.logger.Debug().Str("event", string(in.Event)).Msg("ignoring unhandled hook event")
		return Result{Outcome: OutcomeIgnored}
	}
}

// HandleNotification handles a Notification event.
func (h *Handler) HandleNotification(ctx context.Context, n hook.NotificationInput) Result {
	tc := h.cfg.TypeConfig(n.NotificationType, config.DefaultNotificationType())
	payload := notify.Payload{
		Title:    tc.Title,
		Message:  render(tc.MessageTemplate, n.Message),
		Priority: tc.Priority,
	}

	logger := h.logger.With().
		Str("event", string(hook.EventNotification)).
		Str("notification_type", n.NotificationType).
		Str("session_id", n.SessionID).
		Logger()

	return h.run(ctx, logger, tc, payload, false)
}

// HandleStop handles a Stop event.
func (h *Handler) HandleStop(ctx context.Context, s hook.StopInput) Result {
	tc := h.cfg.TypeConfig(config.StopTypeName, config.DefaultStopType())
	payload := notify.Payload{
		Title:    tc.Title,
		Message:  render(tc.MessageTemplate, stopMessage),
		Priority: tc.Priority,
	}
	if id, ok := state.ResolveCurrentTerminal(h.env); ok {
		payload.ActivateTarget = id
	}

	logger := h.logger.With().
		Str("event", string(hook.EventStop)).
		Str("session_id", s.SessionID).
		Logger()

	return h.run(ctx, logger, tc, payload, h.cfg.StopPolicy == config.StopPolicyForceNtfy)
}

func (h *Handler) run(ctx context.Context, logger zerolog.Logger, tc config.NotificationTypeConfig, payload notify.Payload, forceNtfy bool) Result {
	res := Result{Payload: payload}
	if h.prober != nil {
		res.State = h.prober.Probe(ctx)
	}

	if !tc.Enabled {
		logger.Info().Str("state", res.State.String()).Msg("notification type disabled")
		res.Outcome = OutcomeDisabled
		return res
	}

	if forceNtfy {
		res.Channels = []notify.Channel{notify.ChannelNtfy}
	} else {
		decision := policy.Decide(res.State, tc.Channels, h.cfg.SkipWhenActive, h.cfg.ChannelMode)
		if decision.Skip {
			logger.Info().Str("state", res.State.String()).Msg("terminal active, skipping notification")
			res.Outcome = OutcomeSkipped
			return res
		}
		res.Channels = decision.Channels
	}

	if len(res.Channels) == 0 {
		logger.Info().Str("state", res.State.String()).Msg("no channels selected")
		res.Outcome = OutcomeNoChannels
		return res
	}

	if h.dispatcher != nil {
		res.Deliveries = h.dispatcher.Dispatch(ctx, res.Channels, payload)
	}
	res.Outcome = OutcomeDispatched

	logger.Info().
		Str("state", res.State.String()).
		Interface("channels", res.Channels).
		Int("failed", len(res.Failed())).
		Msg("notification dispatched")

	return res
}

// render substitutes the first {message} placeholder in template.
func render(template, message string) string {
	return strings.Replace(template, messagePlaceholder, message, 1)
}
