package framework

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID   TestID
	Errors   []error
	Skipped  bool
	Duration time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests that passed, failed, and were skipped. Only leaf tests and
// tests that recorded their own errors are counted, so that a group containing ten tests does
// not add an eleventh.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		if len(t.TestID.Path) == 0 || (r.hasChildren(t.TestID) && len(t.Errors) == 0) {
			continue
		}
		switch {
		case t.Skipped:
			skipped++
		case len(t.Errors) > 0:
			failed++
		default:
			passed++
		}
	}
	return
}

func (r Results) hasChildren(id TestID) bool {
	for _, t := range r.Tests {
		if len(t.TestID.Path) > len(id.Path) && id.IsPrefixOf(t.TestID) {
			return true
		}
	}
	return false
}

type TestID struct {
	Path []string
}

// Plus returns the ID of a subtest. The receiver is not modified.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) IsPrefixOf(other TestID) bool {
	if len(t.Path) > len(other.Path) {
		return false
	}
	for i, p := range t.Path {
		if other.Path[i] != p {
			return false
		}
	}
	return true
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the run, listing each failed test with its errors.
func PrintResults(out io.Writer, results Results) {
	passed, failed, skipped := results.Counts()
	if results.OK() {
		color.New(color.FgGreen).Fprintf(out, "All tests passed")
	} else {
		color.New(color.FgRed).Fprintf(out, "FAILED TESTS (%d):", len(results.Failures))
	}
	fmt.Fprintf(out, " (%d passed, %d failed, %d skipped)\n", passed, failed, skipped)
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(reformatError(err).Error(), "\n") {
				fmt.Fprintf(out, "      %s\n", line)
			}
		}
	}
}
