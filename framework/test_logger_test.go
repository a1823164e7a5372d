package framework

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleTestLoggerPrintsFailureAndRerunCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := ConsoleTestLogger{
		DebugOutputOnFailure: true,
		RerunCommand:         []string{"e2e-harness", "api"},
		Out:                  &buf,
	}

	logger.TestStarted(id("delete", "returns 404"))
	logger.TestError(id("delete", "returns 404"), errors.New("expected 404\ngot 200"))
	logger.TestFinished(id("delete", "returns 404"), true, CapturedOutput{
		{Time: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), Message: "DELETE /pet/1"},
	})

	out := buf.String()
	assert.Contains(t, out, "[delete/returns 404]")
	assert.Contains(t, out, "  expected 404\n  got 200\n")
	assert.Contains(t, out, "FAILED: delete/returns 404")
	assert.Contains(t, out, "e2e-harness api --run '^delete$/^returns 404$'")
	assert.Contains(t, out, "    DEBUG [2024-01-01 12:00:00.000] DELETE /pet/1")
}

func TestConsoleTestLoggerHidesDebugOutputOnSuccessByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := ConsoleTestLogger{DebugOutputOnFailure: true, Out: &buf}

	logger.TestFinished(id("create"), false, CapturedOutput{{Message: "POST /pet"}})
	logger.TestSkipped(id("ui"), "")
	logger.TestSkipped(id("api"), "filtered")

	assert.NotContains(t, buf.String(), "POST /pet")
	assert.Contains(t, buf.String(), "SKIPPED: ui\n")
	assert.Contains(t, buf.String(), "SKIPPED: api (filtered)")
}

func TestReformatErrorStripsTestifyLayout(t *testing.T) {
	raw := errors.New("\n\tError Trace:\t/src/apitests/create.go:31\n" +
		"\t            \t/src/framework/context.go:84\n" +
		"\tError:      \tNot equal: \n" +
		"\t            \texpected: 200\n" +
		"\t            \tactual  : 404\n" +
		"\tMessages:   \tcreate pet")

	got := reformatError(raw).Error()

	assert.NotContains(t, got, "Error Trace")
	assert.NotContains(t, got, "context.go")
	assert.Contains(t, got, "Error:       Not equal:")
	assert.Contains(t, got, "\n  expected: 200")
	assert.Contains(t, got, "Messages:    create pet")
}

func TestReformatErrorLeavesOtherErrorsAlone(t *testing.T) {
	err := errors.New("plain")
	assert.Same(t, err, reformatError(err))
}

func TestPrintResults(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("ok", func(c *Context) {})
			c.Run("bad", func(c *Context) { c.Errorf("status was %d", 500) })
		})
	})

	var buf bytes.Buffer
	PrintResults(&buf, results)

	out := buf.String()
	assert.Contains(t, out, "FAILED TESTS (1):")
	assert.Contains(t, out, "(1 passed, 1 failed, 0 skipped)")
	assert.Contains(t, out, "  * group/bad\n      status was 500\n")
}

func TestTestIDPlusDoesNotShareBackingArray(t *testing.T) {
	parent := TestID{Path: make([]string, 1, 4)}
	parent.Path[0] = "group"

	a := parent.Plus("a")
	b := parent.Plus("b")

	require.Equal(t, "group/a", a.String())
	assert.Equal(t, "group/b", b.String())
	assert.True(t, parent.IsPrefixOf(a))
	assert.False(t, a.IsPrefixOf(parent))
}
