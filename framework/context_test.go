package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	errors   []string
	finished map[string]bool
	skipped  map[string]string
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{finished: map[string]bool{}, skipped: map[string]string{}}
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.started = append(r.started, id.String()) }

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.errors = append(r.errors, id.String()+": "+err.Error())
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, _ CapturedOutput) {
	r.finished[id.String()] = failed
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped[id.String()] = reason
}

func TestRequireFailureStopsOnlyTheCurrentTest(t *testing.T) {
	logger := newRecordingTestLogger()
	reached := false

	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			require.Equal(c, 1, 2)
			reached = true
		})
		c.Run("b", func(c *Context) {
			assert.True(c, true)
		})
	})

	assert.False(t, reached)
	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "a", results.Failures[0].TestID.String())
	assert.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, map[string]bool{"a": true, "b": false}, logger.finished)
	assert.Equal(t, []string{"a", "b"}, logger.started)
}

func TestAssertFailureLetsTheTestContinue(t *testing.T) {
	reached := false

	results := Run(nil, nil, func(c *Context) {
		c.Run("soft", func(c *Context) {
			assert.Equal(c, "sold", "available")
			assert.Equal(c, 200, 404)
			reached = true
			assert.True(c, c.Failed())
		})
	})

	assert.True(t, reached)
	require.Len(t, results.Failures, 1)
	assert.Len(t, results.Failures[0].Errors, 2)
}

func TestPanicIsReportedAsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			var m map[string]int
			m["x"] = 1
		})
	})

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test")
}

func TestSkipIsNotAFailure(t *testing.T) {
	logger := newRecordingTestLogger()

	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("no browser")
		})
	})

	assert.True(t, results.OK())
	assert.Equal(t, "no browser", logger.skipped["skipped"])
	passed, failed, skipped := results.Counts()
	assert.Equal(t, []int{0, 0, 1}, []int{passed, failed, skipped})
}

func TestFilterExcludesTests(t *testing.T) {
	logger := newRecordingTestLogger()
	var ran []string

	Run(func(id TestID) bool { return id.String() != "b" }, logger, func(c *Context) {
		for _, name := range []string{"a", "b"} {
			c.Run(name, func(c *Context) { ran = append(ran, c.ID().String()) })
		}
	})

	assert.Equal(t, []string{"a"}, ran)
	assert.Equal(t, "excluded by filter parameters", logger.skipped["b"])
}

func TestNestedIDs(t *testing.T) {
	var ids []string

	Run(nil, nil, func(c *Context) {
		c.Run("update", func(c *Context) {
			c.Run("first", func(c *Context) { ids = append(ids, c.ID().String()) })
			c.Run("second", func(c *Context) { ids = append(ids, c.ID().String()) })
		})
	})

	assert.Equal(t, []string{"update/first", "update/second"}, ids)
}

func TestDeferRunsInReverseOrderAfterFailure(t *testing.T) {
	var order []string

	results := Run(nil, nil, func(c *Context) {
		c.Run("cleanup", func(c *Context) {
			c.Defer(func() { order = append(order, "first") })
			c.Defer(func() { panic("ignored") })
			c.Defer(func() { order = append(order, "last") })
			require.Fail(c, "boom")
		})
	})

	assert.Equal(t, []string{"last", "first"}, order)
	require.Len(t, results.Failures, 1)
	assert.Len(t, results.Failures[0].Errors, 1, "a panicking cleanup does not add a failure")
}

func TestOnFailureHooksRunForFailedSubtestsOnly(t *testing.T) {
	var failedIDs []string
	var events []string

	Run(nil, nil, func(c *Context) {
		c.OnFailure(func(id TestID) { failedIDs = append(failedIDs, id.String()) })
		c.Run("passes", func(c *Context) {})
		c.Run("fails", func(c *Context) {
			c.Defer(func() { events = append(events, "cleanup") })
			c.OnFailure(func(TestID) { events = append(events, "hook") })
			c.Errorf("%s", errors.New("not found"))
		})
	})

	assert.Equal(t, []string{"fails"}, failedIDs)
	assert.Equal(t, []string{"hook", "cleanup"}, events)
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	var output CapturedOutput
	logger := &captureFinished{onFinished: func(o CapturedOutput) { output = o }}

	Run(nil, logger, func(c *Context) {
		c.Run("debug", func(c *Context) {
			c.Debug("pet %d", 42)
			c.DebugLogger().Printf("status %s", "sold")
		})
	})

	require.Len(t, output, 2)
	assert.Equal(t, "pet 42", output[0].Message)
	assert.Equal(t, "status sold", output[1].Message)
}

type captureFinished struct {
	nullTestLogger
	onFinished func(CapturedOutput)
}

func (c *captureFinished) TestFinished(_ TestID, _ bool, output CapturedOutput) {
	c.onFinished(output)
}
