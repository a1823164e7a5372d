package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by name. Patterns are matched the way "go test -run" does: a pattern
// is split on "/" and each part must match the corresponding element of the test ID, so "^update"
// selects the update group together with all of its subtests.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	if r.MustMatch.IsDefined() && !r.MustMatch.mayMatch(id) {
		return false
	}
	return !r.MustNotMatch.Matches(id)
}

// IsDefined returns true if any patterns were given.
func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

// RegexList is a list of test name patterns. It implements pflag.Value, so it can be used as a
// repeatable command-line flag.
type RegexList struct {
	patterns []pathPattern
}

type pathPattern struct {
	source   string
	elements []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := pathPattern{source: value}
	for _, part := range strings.Split(value, "/") {
		rx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.elements = append(p.elements, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

// Type is called by the command line parser
func (r *RegexList) Type() string {
	return "regex"
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// Matches returns true if every part of some pattern matches the test ID. Subtests of a matching
// test also match.
func (r RegexList) Matches(id TestID) bool {
	for _, p := range r.patterns {
		if matched, _ := p.match(id); matched {
			return true
		}
	}
	return false
}

// mayMatch is like Matches, but also accepts a test whose own ID is too short to be matched by a
// pattern as long as its subtests could be.
func (r RegexList) mayMatch(id TestID) bool {
	for _, p := range r.patterns {
		if matched, partial := p.match(id); matched || partial {
			return true
		}
	}
	return false
}

func (p pathPattern) match(id TestID) (matched, partial bool) {
	for i, rx := range p.elements {
		if i >= len(id.Path) {
			return false, true
		}
		if !rx.MatchString(id.Path[i]) {
			return false, false
		}
	}
	return true, false
}

// PrintFilterDescription tells the user which tests will be skipped because of the filters.
func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(out)
}

// RerunPattern returns a --run pattern that selects exactly the given test.
func RerunPattern(id TestID) string {
	parts := make([]string, 0, len(id.Path))
	for _, p := range id.Path {
		parts = append(parts, "^"+regexp.QuoteMeta(p)+"$")
	}
	return strings.Join(parts, "/")
}
