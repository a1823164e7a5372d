package framework

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"
)

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	skippedColor = color.New(color.FgYellow)
	startedColor = color.New(color.FgCyan)
)

// ConsoleTestLogger writes test progress to the console.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	// RerunCommand, if set, is printed after each failure with a --run pattern selecting the
	// failed test, e.g. []string{"e2e-harness", "api"}.
	RerunCommand []string

	// Out defaults to os.Stdout.
	Out io.Writer
}

func (c ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c ConsoleTestLogger) TestStarted(id TestID) {
	startedColor.Fprintf(c.out(), "[%s]\n", id)
}

func (c ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		failedColor.Fprintf(c.out(), "  FAILED: %s\n", id)
		if len(c.RerunCommand) > 0 {
			fmt.Fprintf(c.out(), "  to run this test alone: %s\n", RerunCommand(c.RerunCommand, id))
		}
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s\n", id)
	} else {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// RerunCommand returns a shell command line that runs only the given test.
func RerunCommand(command []string, id TestID) string {
	args := append(append([]string(nil), command...), "--run", RerunPattern(id))
	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}

// reformatError strips the "Error Trace" block that testify puts in front of assertion failures,
// and the tab layout of the remaining lines. Other errors are returned unchanged.
func reformatError(err error) error {
	s := err.Error()
	if !strings.Contains(s, "Error Trace:") {
		return err
	}
	var lines []string
	inTrace := false
	for _, line := range strings.Split(strings.TrimLeft(s, "\n"), "\n") {
		line = strings.TrimPrefix(line, "\t")
		continuation := strings.HasPrefix(line, " ")
		if strings.HasPrefix(line, "Error Trace:") {
			inTrace = true
			continue
		}
		if !continuation {
			inTrace = false
		}
		if inTrace {
			continue
		}
		if continuation {
			line = "  " + strings.TrimLeft(line, " \t")
		} else {
			line = strings.Replace(line, "\t", " ", 1)
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return errors.New(strings.Join(lines, "\n"))
}
