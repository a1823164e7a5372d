package await

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/require"
)

// Assertions collects the failures reported by assert/require calls made during one attempt
// of UntilAsserted. It implements require.TestingT.
type Assertions struct {
	failures []string
}

func (a *Assertions) Errorf(format string, args ...interface{}) {
	a.failures = append(a.failures, fmt.Sprintf(format, args...))
}

// FailNow abandons the current attempt. The poll itself goes on.
func (a *Assertions) FailNow() {
	panic(a)
}

// AssertionError carries the assertion failures of the last attempt of a poll.
type AssertionError struct {
	Failures []string
}

func (e *AssertionError) Error() string {
	return "assertions not satisfied:\n" + strings.Join(e.Failures, "\n")
}

// UntilAsserted runs check until it completes without any failed assertion.
//
// Failed assertions always mean "not ready", whatever cfg.IgnoreErrors says. A panic inside
// check that does not come from FailNow is turned into an error and handled according to
// cfg.IgnoreErrors. When the poll times out after a failed assertion, Outcome.LastErr is an
// *AssertionError holding the failures of the final attempt.
func UntilAsserted(check func(t require.TestingT), cfg Config, opts ...Option) (Outcome[[]string], error) {
	probe := func() (failures []string, err error) {
		a := &Assertions{}
		defer func() {
			if r := recover(); r != nil && r != a {
				err = fmt.Errorf("panic during assertions: %v", r)
			}
			failures = a.failures
		}()
		check(a)
		return nil, nil
	}
	out, err := Until[[]string](probe, func(failures []string) bool { return len(failures) == 0 }, cfg, opts...)
	if err == nil && out.Kind == TimedOut && out.LastErr == nil {
		out.LastErr = &AssertionError{Failures: out.Value}
	}
	return out, err
}
