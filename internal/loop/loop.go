package loop

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dshills/quill/internal/renderer/backend"
)

// Source supplies input events. PollEvent must never block.
type Source interface {
	PollEvent() (backend.Event, bool, error)
	WaitEvent(timeout time.Duration) error
}

// Handler receives every dispatched event.
type Handler interface {
	HandleEvent(ev Event) (Command, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev Event) (Command, error)

// HandleEvent calls f(ev).
func (f HandlerFunc) HandleEvent(ev Event) (Command, error) {
	return f(ev)
}

// State is the position of the loop in its shutdown handshake.
type State int

const (
	StateIdle State = iota
	StateRequested
	StateCancelled
	StateConfirmed
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequested:
		return "requested"
	case StateCancelled:
		return "cancelled"
	case StateConfirmed:
		return "confirmed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the clock used for frame deadlines.
func WithClock(clock clockwork.Clock) Option {
	return func(l *Loop) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLogger sets the loop's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithErrorFilter installs a function applied to every handler error. A
// nil result swallows the error.
func WithErrorFilter(filter func(error) error) Option {
	return func(l *Loop) {
		if filter != nil {
			l.filter = filter
		}
	}
}

// Loop is the event-scheduling loop.
type Loop struct {
	source   Source
	handler  Handler
	settings Settings

	clock  clockwork.Clock
	logger *slog.Logger
	filter func(error) error

	req    requests
	update *FrameTimer
	render *FrameTimer
	state  State
}

// New creates a loop reading from source and dispatching to handler.
func New(source Source, handler Handler, settings Settings, opts ...Option) *Loop {
	l := &Loop{
		source:   source,
		handler:  handler,
		settings: settings,
		clock:    clockwork.NewRealClock(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		filter:   func(err error) error { return err },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current shutdown state.
func (l *Loop) State() State {
	return l.state
}

// Settings returns the settings in effect, including changes made by the
// handler during Begin.
func (l *Loop) Settings() Settings {
	return l.settings
}

// Run executes the loop until an exit is confirmed, the context is
// cancelled or an error occurs. On error the outcome is Failure(1).
//
// An idle wait is not interrupted by cancellation; it returns within
// Settings.IdleWait.
func (l *Loop) Run(ctx context.Context) (Outcome, error) {
	if l.state == StateTerminated {
		return Failure(1), ErrTerminated
	}

	settings := l.settings
	if _, err := l.dispatch(Event{Kind: Begin, Settings: &settings}); err != nil {
		return Failure(1), err
	}
	l.settings = settings

	now := l.clock.Now()
	l.update = NewFrameTimer(settings.UpdateRate, now)
	l.render = NewFrameTimer(settings.RenderRate, now)
	l.logger.Debug("loop started",
		"update", settings.UpdateRate.String(),
		"render", settings.RenderRate.String(),
		"idle_wait", settings.IdleWait)

	for {
		if ctx.Err() != nil {
			l.logger.Info("loop interrupted", "cause", context.Cause(ctx))
			l.state = StateConfirmed
			return l.finish(Interrupted)
		}

		dispatched, err := l.drain()
		if err != nil {
			return Failure(1), err
		}

		now = l.clock.Now()

		// Both conditions are always evaluated so a due timer also
		// consumes a pending request.
		due := l.update.Ready(now)
		if requested := l.req.takeUpdate(); due || requested {
			dispatched = true
			if _, err := l.dispatch(Event{Kind: Update}); err != nil {
				return Failure(1), err
			}
		}

		due = l.render.Ready(now)
		if requested := l.req.takeRedraw(); due || requested {
			dispatched = true
			if _, err := l.dispatch(Event{Kind: Render}); err != nil {
				return Failure(1), err
			}
		}

		if outcome, ok := l.req.takeExit(); ok {
			dispatched = true
			confirmed, err := l.offerExit(outcome)
			if err != nil {
				return Failure(1), err
			}
			if confirmed {
				return l.finish(outcome)
			}
		}

		if !dispatched {
			if err := l.idle(now); err != nil {
				return Failure(1), err
			}
		}
	}
}

// drain dispatches every pending input event.
func (l *Loop) drain() (bool, error) {
	dispatched := false
	for {
		ev, ok, err := l.source.PollEvent()
		if err != nil {
			return dispatched, &InputError{Op: "poll", Err: err}
		}
		if !ok {
			return dispatched, nil
		}
		dispatched = true
		if _, err := l.dispatch(Event{Kind: Input, Input: ev}); err != nil {
			return dispatched, err
		}
	}
}

// offerExit runs one cycle of the shutdown handshake and reports whether
// the exit was confirmed. A cancelled request is dropped, not retried.
func (l *Loop) offerExit(outcome Outcome) (bool, error) {
	l.state = StateRequested
	cmd, err := l.dispatch(Event{Kind: ExitRequested, Outcome: outcome})
	if err != nil {
		return false, err
	}
	if cmd.Cancel {
		l.state = StateCancelled
		l.logger.Debug("exit cancelled", "outcome", outcome.String())
		l.state = StateIdle
		return false, nil
	}
	l.state = StateConfirmed
	return true, nil
}

// finish dispatches Exiting and terminates the loop.
func (l *Loop) finish(outcome Outcome) (Outcome, error) {
	if _, err := l.dispatch(Event{Kind: Exiting, Outcome: outcome}); err != nil {
		return Failure(1), err
	}
	l.state = StateTerminated
	l.logger.Debug("loop terminated", "outcome", outcome.String())
	return outcome, nil
}

// idle waits for input for at most IdleWait, cut short by the nearest
// periodic deadline.
func (l *Loop) idle(now time.Time) error {
	wait := l.settings.IdleWait
	if wait <= 0 {
		return nil
	}
	for _, t := range []*FrameTimer{l.update, l.render} {
		if d, ok := t.Until(now); ok && d < wait {
			wait = d
		}
	}
	if wait <= 0 {
		return nil
	}
	if err := l.source.WaitEvent(wait); err != nil {
		return &InputError{Op: "wait", Err: err}
	}
	return nil
}

// dispatch hands ev to the handler, filters any error and merges the
// returned command into the pending requests.
func (l *Loop) dispatch(ev Event) (Command, error) {
	cmd, err := l.handler.HandleEvent(ev)
	if err != nil {
		if err = l.filter(err); err != nil {
			l.logger.Error("handler failed", "event", ev.Kind.String(), "error", err)
			return cmd, err
		}
	}
	l.req.merge(cmd)
	return cmd, nil
}
