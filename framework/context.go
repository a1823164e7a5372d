package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the scope of a single test or group of tests. It behaves like a minimal
// *testing.T: it implements require.TestingT, so assertions from the testify assert and
// require packages can be used with it directly.
type Context struct {
	env         *environment
	parent      *Context
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
	onFailure   []func(TestID)
}

// Run executes a top-level action and returns the results of every test it ran.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil && !c.skipped {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if c.failed {
			c.runFailureHooks()
		}
		c.runCleanups()
		result := TestResult{
			TestID:   c.id,
			Errors:   c.errors,
			Skipped:  c.skipped,
			Duration: time.Since(started),
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) runCleanups() {
	for len(c.cleanups) > 0 {
		f := c.cleanups[len(c.cleanups)-1]
		c.cleanups = c.cleanups[:len(c.cleanups)-1]
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.Debug("Cleanup panicked: %+v", r)
				}
			}()
			f()
		}()
	}
}

func (c *Context) runFailureHooks() {
	for p := c; p != nil; p = p.parent {
		for _, hook := range p.onFailure {
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.Debug("Failure hook panicked: %+v", r)
					}
				}()
				hook(c.id)
			}()
		}
	}
}

// ID returns the identifier of the current test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest, which gets its own Context. A subtest failure does not fail its parent.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:     id,
		env:    c.env,
		parent: c,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow stops the test immediately. It is called by the methods of the require package.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Failed returns true if a failure has been recorded for this test.
func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules a function to run when the test ends, whether it passed or not. Deferred
// functions run in last-in-first-out order, after any failure hooks. A panic in one of them
// is logged as debug output and does not affect the test result.
func (c *Context) Defer(f func()) {
	c.cleanups = append(c.cleanups, f)
}

// OnFailure registers a hook that is called with the ID of any failed test in this scope,
// including the current test and all of its subtests. Hooks run before the deferred functions of
// the failed test, so they can still use the resources those functions release.
func (c *Context) OnFailure(hook func(TestID)) {
	c.onFailure = append(c.onFailure, hook)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
