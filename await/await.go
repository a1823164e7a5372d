package await

import (
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout and DefaultInterval are the values used by the test suites when waiting for
// the pet store to reflect a write.
const (
	DefaultTimeout  = 120 * time.Second
	DefaultInterval = 3 * time.Second
)

// DefaultConfig polls every DefaultInterval for up to DefaultTimeout, ignoring probe errors.
var DefaultConfig = Config{
	Timeout:      DefaultTimeout,
	Interval:     DefaultInterval,
	IgnoreErrors: true,
}

// ErrInvalidConfig is returned (wrapped) by Until when the Config cannot be used.
var ErrInvalidConfig = errors.New("invalid poll configuration")

// Config describes a single poll.
type Config struct {
	// Timeout is how long to keep polling, measured from the first attempt.
	Timeout time.Duration

	// Interval is the pause between two attempts. The loop never probes more often than this.
	Interval time.Duration

	// IgnoreErrors makes a probe error count as "not ready yet". When it is false, the first
	// probe error ends the poll and is returned to the caller.
	IgnoreErrors bool
}

// Validate checks that both durations are positive. An Interval longer than the Timeout is
// allowed; the poll then makes one immediate attempt and one final attempt.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfig, c.Interval)
	}
	return nil
}

// WithTimeout returns a copy of the Config with a different timeout.
func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}

// WithInterval returns a copy of the Config with a different interval.
func (c Config) WithInterval(d time.Duration) Config {
	c.Interval = d
	return c
}

// Logger receives a line for every attempt that was not accepted.
type Logger interface {
	Printf(format string, args ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

// Option customizes a single call to Until.
type Option func(*options)

type options struct {
	clock       Clock
	logger      Logger
	description string
}

// WithClock replaces the wall clock, typically with a fake one in tests.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger logs each rejected attempt to l.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDescription names what is being waited for, for log lines and timeout errors.
func WithDescription(description string) Option {
	return func(o *options) {
		if description != "" {
			o.description = description
		}
	}
}

// Probe observes the state being waited for.
type Probe[T any] func() (T, error)

// Predicate decides whether a probed value is ready.
type Predicate[T any] func(T) bool

// Until calls probe repeatedly until accept returns true for its result, or until cfg.Timeout
// has elapsed.
//
// The first attempt is made immediately. After every rejected attempt, Until returns a TimedOut
// outcome if the deadline has passed, and otherwise sleeps for cfg.Interval before trying again;
// so the attempt following the last sleep is always made, even when the interval is long
// compared to the timeout.
//
// A nil accept means that any result returned without an error is ready. A probe error is
// treated as "not ready" if cfg.IgnoreErrors is set, and is otherwise returned immediately. If
// the poll times out, the error of the final attempt (if any) is kept in Outcome.LastErr.
//
// The returned error is non-nil only if cfg is invalid or a probe error was not ignored. A
// timeout is not an error at this level: callers that consider it fatal should check
// Outcome.Err.
func Until[T any](probe Probe[T], accept Predicate[T], cfg Config, opts ...Option) (Outcome[T], error) {
	if err := cfg.Validate(); err != nil {
		return Outcome[T]{}, err
	}
	o := options{clock: realClock{}, logger: nullLogger{}, description: "condition"}
	for _, opt := range opts {
		opt(&o)
	}

	start := o.clock.Now()
	deadline := start.Add(cfg.Timeout)
	for attempt := 1; ; attempt++ {
		value, err := probe()
		now := o.clock.Now()
		out := Outcome[T]{
			Value:       value,
			Attempts:    attempt,
			Elapsed:     now.Sub(start),
			description: o.description,
			timeout:     cfg.Timeout,
		}

		if err != nil && !cfg.IgnoreErrors {
			return out, fmt.Errorf("%s: attempt %d: %w", o.description, attempt, err)
		}
		if err == nil && (accept == nil || accept(value)) {
			out.Kind = Success
			return out, nil
		}

		if err != nil {
			o.logger.Printf("Waiting for %s: attempt %d failed after %s: %s", o.description, attempt, out.Elapsed, err)
		} else {
			o.logger.Printf("Waiting for %s: attempt %d not ready after %s", o.description, attempt, out.Elapsed)
		}

		if !now.Before(deadline) {
			out.Kind = TimedOut
			out.LastErr = err
			return out, nil
		}
		o.clock.Sleep(cfg.Interval)
	}
}

// UntilTrue is Until for probes that report readiness as a boolean.
func UntilTrue(cond func() (bool, error), cfg Config, opts ...Option) (Outcome[bool], error) {
	return Until[bool](cond, func(ready bool) bool { return ready }, cfg, opts...)
}
