package await

import (
	"fmt"
	"time"
)

// Kind says how a poll ended.
type Kind int

const (
	// Success means that the predicate accepted a probed value.
	Success Kind = iota + 1

	// TimedOut means that the timeout elapsed without an accepted value.
	TimedOut
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case TimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Outcome is the result of Until.
type Outcome[T any] struct {
	Kind Kind

	// Value is the accepted value for Success. For TimedOut it is the value returned by the
	// final attempt, which is the zero value if that attempt failed.
	Value T

	// Attempts is the number of times the probe was called.
	Attempts int

	// Elapsed is the time from the first attempt until the end of the last one.
	Elapsed time.Duration

	// LastErr is the error returned by the final attempt of a poll that timed out.
	LastErr error

	description string
	timeout     time.Duration
}

// OK returns true if the poll succeeded.
func (o Outcome[T]) OK() bool {
	return o.Kind == Success
}

// Err returns nil for a successful poll and a *TimeoutError otherwise.
func (o Outcome[T]) Err() error {
	if o.Kind == Success {
		return nil
	}
	return &TimeoutError{
		Description: o.description,
		Timeout:     o.timeout,
		Attempts:    o.Attempts,
		Elapsed:     o.Elapsed,
		Last:        o.LastErr,
	}
}

// TimeoutError describes a poll that never saw a ready value. It unwraps to the error of the
// final attempt, if there was one.
type TimeoutError struct {
	Description string
	Timeout     time.Duration
	Attempts    int
	Elapsed     time.Duration
	Last        error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s (%d attempts in %s)",
		e.Timeout, e.Description, e.Attempts, e.Elapsed.Round(time.Millisecond))
	if e.Last != nil {
		msg += ": last error: " + e.Last.Error()
	}
	return msg
}

func (e *TimeoutError) Unwrap() error {
	return e.Last
}
