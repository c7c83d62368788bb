// dispatch.go maps a completion mode to a transport hand-off and
// classifies delivery failures.

package vigil

import (
	"context"
	"errors"
	"fmt"
)

func dispatch(ctx context.Context, cfg *Config, ev *Event) Result {
	switch cfg.Mode {
	case ModeBlocking:
		return dispatchBlocking(ctx, cfg, ev)
	case ModeFireAndForget:
		return dispatchFireAndForget(cfg, ev)
	case ModeAsync:
		panic(&ConfigurationError{
			Reason: "the async completion mode has been retired: " +
				"spawn your own goroutine and use ModeBlocking instead",
		})
	default:
		panic(&ConfigurationError{
			Reason: fmt.Sprintf("unknown completion mode %d", int(cfg.Mode)),
		})
	}
}

// dispatchBlocking renders, posts, and waits for the transport outcome.
func dispatchBlocking(ctx context.Context, cfg *Config, ev *Event) Result {
	payload := Render(ev, cfg.Codec)
	id, err := cfg.Transport.Post(ctx, []Payload{payload}, cfg.Retries)
	if err != nil {
		logDeliveryFailure(cfg, ev, err)
		return Result{Status: StatusFailed, Err: err}
	}
	cfg.LastEvent.Record(id, ev.Source)
	return Result{Status: StatusAccepted, EventID: id}
}

// dispatchFireAndForget hands off without waiting. No confirmation is
// available, so the result carries a placeholder (empty) identifier; the
// event's own identifier is recorded as last-seen immediately.
func dispatchFireAndForget(cfg *Config, ev *Event) Result {
	payload := Render(ev, cfg.Codec)
	cfg.Transport.SendAsync(payload)
	cfg.LastEvent.Record(ev.EventID, ev.Source)
	return Result{Status: StatusAccepted, EventID: ""}
}

// logDeliveryFailure emits one diagnostic line per failure class.
// Events originating from the logging integration are never logged:
// reporting the reporter would feed back into itself.
func logDeliveryFailure(cfg *Config, ev *Event, err error) {
	if ev.Source == SourceLogger {
		return
	}

	var (
		encErr   *EncodingError
		panicErr *PanicError
	)
	switch {
	case errors.Is(err, ErrInvalidDestination):
		cfg.Logger.Write(cfg.DiagnosticLevel,
			"event {EventID} not sent: destination configuration is invalid", ev.EventID)
	case errors.As(err, &encErr):
		cfg.Logger.Write(cfg.DiagnosticLevel,
			"event {EventID} not sent: payload could not be encoded: {Reason}",
			ev.EventID, encErr.Err)
	case errors.As(err, &panicErr):
		cfg.Logger.Write(cfg.DiagnosticLevel,
			"event {EventID} not sent: transport fault: {Value}\n{Stack}",
			ev.EventID, panicErr.Value, string(panicErr.Stack))
	default:
		cfg.Logger.Write(cfg.DiagnosticLevel,
			"event {EventID} not sent: {Reason}", ev.EventID, err)
	}
}
