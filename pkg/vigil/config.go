// config.go holds the submission configuration and its functional options.

package vigil

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
)

// CompletionMode chooses how dispatch hands a rendered event to the
// transport.
type CompletionMode int

const (
	// ModeBlocking waits for the transport's outcome.
	ModeBlocking CompletionMode = iota

	// ModeFireAndForget hands the payload to the transport's async sender
	// and returns immediately with a placeholder (empty) identifier.
	ModeFireAndForget

	// ModeAsync is retired. Using it panics with a *ConfigurationError:
	// callers must spawn their own goroutine and use ModeBlocking.
	ModeAsync
)

// String returns the configuration name of the mode.
func (m CompletionMode) String() string {
	switch m {
	case ModeBlocking:
		return "blocking"
	case ModeFireAndForget:
		return "fire_and_forget"
	case ModeAsync:
		return "async"
	default:
		return fmt.Sprintf("CompletionMode(%d)", int(m))
	}
}

// Config is the resolved submission configuration. It is read per
// submission; Send applies per-call overrides to a copy.
type Config struct {
	// SampleRate is the acceptance probability in [0, 1].
	SampleRate float64

	// Mode is the completion mode used by dispatch.
	Mode CompletionMode

	// Retries is passed opaquely to the transport; no retry happens in
	// the pipeline itself.
	Retries int

	// Transport delivers rendered payloads. Defaults to a discard
	// transport.
	Transport Transport

	// Codec is the serialization helper used for sanitization. Defaults
	// to JSONCodec.
	Codec Codec

	// BeforeSend may suppress or transform the event before dispatch.
	BeforeSend Callable

	// AfterSend observes the event and its final Result after dispatch.
	AfterSend Callable

	// Logger receives delivery-failure diagnostics.
	Logger core.Logger

	// DiagnosticLevel is the severity diagnostics are emitted at.
	DiagnosticLevel core.LogEventLevel

	// LastEvent records the most recently dispatched event identifier.
	LastEvent *LastEventCell

	// randFloat draws one uniform value in [0, 1) per submission.
	randFloat func() float64
}

// Option configures a Client, or overrides configuration for a single
// submission.
type Option func(*Config)

// WithSampleRate sets the acceptance probability in [0, 1].
func WithSampleRate(rate float64) Option {
	return func(c *Config) { c.SampleRate = rate }
}

// WithCompletionMode sets the dispatch completion mode.
func WithCompletionMode(mode CompletionMode) Option {
	return func(c *Config) { c.Mode = mode }
}

// WithRetries sets the retry count handed to the transport.
func WithRetries(n int) Option {
	return func(c *Config) { c.Retries = n }
}

// WithTransport sets the delivery transport.
func WithTransport(t Transport) Option {
	return func(c *Config) { c.Transport = t }
}

// WithCodec sets the serialization helper.
func WithCodec(codec Codec) Option {
	return func(c *Config) { c.Codec = codec }
}

// WithBeforeSend sets the pre-send hook. The callable must accept exactly
// one argument (the *Event) and may return *Event, Event, bool, or nil;
// nil and false suppress the event.
func WithBeforeSend(cb Callable) Option {
	return func(c *Config) { c.BeforeSend = cb }
}

// WithAfterSend sets the post-send hook. The callable must accept exactly
// two arguments (the *Event and the Result); its return value is ignored.
func WithAfterSend(cb Callable) Option {
	return func(c *Config) { c.AfterSend = cb }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger core.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithDiagnosticLevel sets the severity delivery-failure diagnostics are
// emitted at.
func WithDiagnosticLevel(level core.LogEventLevel) Option {
	return func(c *Config) { c.DiagnosticLevel = level }
}

// WithLastEventCell replaces the process-wide last-event cell, e.g. for
// tests that must not share state.
func WithLastEventCell(cell *LastEventCell) Option {
	return func(c *Config) { c.LastEvent = cell }
}

// WithRandSource injects the sampling draw, for deterministic tests. fn
// must return uniform values in [0, 1).
func WithRandSource(fn func() float64) Option {
	return func(c *Config) { c.randFloat = fn }
}

func defaultConfig() Config {
	return Config{
		SampleRate:      1,
		Mode:            ModeBlocking,
		Retries:         1,
		Transport:       discardTransport{},
		Codec:           JSONCodec{},
		Logger:          mtlog.New(mtlog.WithConsole(), mtlog.WithMinimumLevel(core.WarningLevel)),
		DiagnosticLevel: core.ErrorLevel,
		LastEvent:       defaultLastEvent,
		randFloat:       rand.Float64,
	}
}

// validate rejects statically detectable misconfiguration. Hook shapes
// are checked here, once, rather than per invocation.
func (c *Config) validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample rate %v outside [0, 1]", c.SampleRate)
	}
	if c.Mode < ModeBlocking || c.Mode > ModeAsync {
		return fmt.Errorf("unknown completion mode %d", int(c.Mode))
	}
	if err := c.BeforeSend.validate(1); err != nil {
		return fmt.Errorf("before-send hook: %w", err)
	}
	if err := c.AfterSend.validate(2); err != nil {
		return fmt.Errorf("after-send hook: %w", err)
	}
	return nil
}

// OptionsFromEnv builds options from VIGIL_SAMPLE_RATE,
// VIGIL_COMPLETION_MODE ("blocking", "fire_and_forget"), and
// VIGIL_RETRIES. Unset variables contribute nothing.
func OptionsFromEnv() ([]Option, error) {
	var opts []Option

	if v := os.Getenv("VIGIL_SAMPLE_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("VIGIL_SAMPLE_RATE: %w", err)
		}
		opts = append(opts, WithSampleRate(rate))
	}

	if v := os.Getenv("VIGIL_COMPLETION_MODE"); v != "" {
		switch strings.ToLower(v) {
		case "blocking":
			opts = append(opts, WithCompletionMode(ModeBlocking))
		case "fire_and_forget":
			opts = append(opts, WithCompletionMode(ModeFireAndForget))
		default:
			return nil, fmt.Errorf("VIGIL_COMPLETION_MODE: unknown mode %q", v)
		}
	}

	if v := os.Getenv("VIGIL_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("VIGIL_RETRIES: %w", err)
		}
		opts = append(opts, WithRetries(n))
	}

	return opts, nil
}
