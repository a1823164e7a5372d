package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFiltersMustMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^update$/sold"))

	assert.True(t, f.AsFilter(id("update")), "parent of a possible match")
	assert.True(t, f.AsFilter(id("update", "status becomes sold")))
	assert.True(t, f.AsFilter(id("update", "status becomes sold", "step")))
	assert.False(t, f.AsFilter(id("update", "name changes")))
	assert.False(t, f.AsFilter(id("create")))
}

func TestRegexFiltersMustNotMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("negative"))

	assert.True(t, f.AsFilter(id("create")))
	assert.False(t, f.AsFilter(id("negative")))
	assert.False(t, f.AsFilter(id("negative", "get non-existing pet")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("update/("))
	assert.False(t, r.IsDefined())
}

func TestRegexListString(t *testing.T) {
	var r RegexList
	require.NoError(t, r.Set("a"))
	require.NoError(t, r.Set("b/c"))

	assert.Equal(t, `"a" or "b/c"`, r.String())
	assert.Equal(t, "regex", r.Type())
}

func TestRerunPatternSelectsOnlyThatTest(t *testing.T) {
	target := id("negative", "get pet (invalid id)")
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set(RerunPattern(target)))

	assert.True(t, f.AsFilter(id("negative")))
	assert.True(t, f.AsFilter(target))
	assert.False(t, f.AsFilter(id("negative", "get pet")))
	assert.False(t, f.AsFilter(id("negatives")))
}
