package apitests

import (
	"strconv"

	"github.com/qa-harness/e2e-harness/await"
	"github.com/qa-harness/e2e-harness/framework"
	"github.com/qa-harness/e2e-harness/petstore"

	"github.com/stretchr/testify/require"
)

// Options are the dependencies shared by all tests of the suite.
type Options struct {
	Client    *petstore.Client
	Generator *petstore.Generator
	Await     await.Config

	// Clock is used by every poll; the wall clock if nil.
	Clock await.Clock
}

// T represents a test or group of tests in the suite. It implements require.TestingT.
type T struct {
	context *framework.Context
	options *Options
	client  *petstore.Client
}

func newTestScope(context *framework.Context, options *Options) *T {
	return &T{
		context: context,
		options: options,
		client:  options.Client.WithLogger(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow causes the test to immediately exit. It is called by "require" assertions.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.options))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules a cleanup action for the end of the test.
func (t *T) Defer(f func()) {
	t.context.Defer(f)
}

// Client returns an API client whose requests are logged in this test's debug output.
func (t *T) Client() *petstore.Client {
	return t.client
}

func (t *T) Gen() *petstore.Generator {
	return t.options.Generator
}

func (t *T) awaitOptions(description string) []await.Option {
	return []await.Option{
		await.WithClock(t.options.Clock),
		await.WithLogger(t.context.DebugLogger()),
		await.WithDescription(description),
	}
}

// RequireStatus fails the test unless the call got an answer with the expected status code.
func (t *T) RequireStatus(resp *petstore.Response, err error, expected int, what string) *petstore.Response {
	require.NoError(t, err, what)
	require.Equal(t, expected, resp.StatusCode, "%s: unexpected status, body: %s", what, resp)
	return resp
}

// AwaitStatus repeats call until it answers with the expected status code, and returns that
// answer. Network errors and other status codes count as "not yet".
func (t *T) AwaitStatus(description string, expected int, call func() (*petstore.Response, error)) *petstore.Response {
	out, err := await.Until[*petstore.Response](call, func(resp *petstore.Response) bool {
		return resp.StatusCode == expected
	}, t.options.Await, t.awaitOptions(description)...)
	require.NoError(t, err)
	require.NoError(t, out.Err())
	return out.Value
}

// AwaitPetStatus polls GET /pet/{id} until it answers with the expected status code.
func (t *T) AwaitPetStatus(id int64, expected int) *petstore.Response {
	return t.AwaitStatus(
		"GET /pet/"+formatID(id)+" to return "+petstore.StatusText(expected),
		expected,
		func() (*petstore.Response, error) { return t.client.GetPet(id) },
	)
}

// AwaitAsserted repeats check until none of its assertions fail.
func (t *T) AwaitAsserted(description string, check func(t require.TestingT)) {
	out, err := await.UntilAsserted(check, t.options.Await, t.awaitOptions(description)...)
	require.NoError(t, err)
	require.NoError(t, out.Err())
}

// CreatePet creates a pet and waits until it can be read back. The pet is deleted at the end of
// the test.
func (t *T) CreatePet(p petstore.Pet) petstore.Pet {
	resp, err := t.client.CreatePet(p)
	t.RequireStatus(resp, err, 200, "create pet")
	created, err := resp.DecodePet()
	require.NoError(t, err)
	t.DeleteAtEnd(created.ID)
	t.AwaitPetStatus(created.ID, 200)
	t.Debug("Created pet %d (%s)", created.ID, created.Name)
	return created
}

// DeleteAtEnd deletes a pet when the test ends. Errors are ignored: the test itself may have
// deleted it already.
func (t *T) DeleteAtEnd(id int64) {
	t.Defer(func() {
		resp, err := t.client.DeletePet(id)
		if err != nil {
			t.Debug("Cleanup of pet %d failed (may already be deleted): %s", id, err)
			return
		}
		t.Debug("Cleanup of pet %d: %s", id, petstore.StatusText(resp.StatusCode))
	})
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
