package apitests

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/qa-harness/e2e-harness/await"
	"github.com/qa-harness/e2e-harness/framework"
	"github.com/qa-harness/e2e-harness/petstore"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.lock.Lock()
	c.now = c.now.Add(d)
	c.lock.Unlock()
}

func testOptions(server *httptest.Server) Options {
	return Options{
		Client:    petstore.NewClient(petstore.ClientOptions{BaseURL: server.URL, APIKey: "special-key"}),
		Generator: petstore.NewGenerator(11),
		Await:     await.DefaultConfig,
		Clock:     &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func failureNames(results framework.Results) []string {
	var names []string
	for _, f := range results.Failures {
		names = append(names, f.TestID.String())
	}
	return names
}

func TestSuitePassesAgainstEventuallyConsistentStore(t *testing.T) {
	httphelpers.WithServer(newFakeStore(2), func(server *httptest.Server) {
		results := RunTestSuite(testOptions(server), nil, nil)

		assert.Empty(t, failureNames(results))
		passed, failed, skipped := results.Counts()
		assert.Equal(t, 0, failed)
		assert.Equal(t, 0, skipped)
		assert.Equal(t, 19, passed)
	})
}

func TestSuiteFailsWhenWritesNeverBecomeVisible(t *testing.T) {
	store := newFakeStore(1_000_000)
	httphelpers.WithServer(store, func(server *httptest.Server) {
		var filters framework.RegexFilters
		require.NoError(t, filters.MustMatch.Set("^(create|get)$"))

		results := RunTestSuite(testOptions(server), filters.AsFilter, nil)

		assert.Equal(t, []string{"create/create pet with valid data", "get/get pet by id"}, failureNames(results))
		for _, f := range results.Failures {
			require.NotEmpty(t, f.Errors)
			assert.Contains(t, f.Errors[0].Error(), "timed out after 2m0s")
		}
		for _, e := range store.pets {
			assert.Nil(t, e.current, "created pets are deleted at the end of each test")
		}
	})
}

func TestSuiteReportsUnexpectedStatusCodes(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(500), func(server *httptest.Server) {
		var filters framework.RegexFilters
		require.NoError(t, filters.MustMatch.Set("^negative$/^get$"))

		results := RunTestSuite(testOptions(server), filters.AsFilter, nil)

		names := failureNames(results)
		assert.Len(t, names, 3)
		for _, n := range names {
			assert.True(t, strings.HasPrefix(n, "negative/get/"), n)
		}
		assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected status")
	})
}

func TestRequestsAreLoggedInDebugOutput(t *testing.T) {
	httphelpers.WithServer(newFakeStore(0), func(server *httptest.Server) {
		var filters framework.RegexFilters
		require.NoError(t, filters.MustMatch.Set("^negative$/^find by status$"))
		logger := &outputRecorder{outputs: map[string]framework.CapturedOutput{}}

		RunTestSuite(testOptions(server), filters.AsFilter, logger)

		output := logger.outputs["negative/find by status/invalid status value"]
		require.NotEmpty(t, output)
		assert.Contains(t, output[0].Message, "GET")
		assert.Contains(t, output[0].Message, "/pet/findByStatus?status=invalid_")
	})
}

type outputRecorder struct {
	outputs map[string]framework.CapturedOutput
}

func (r *outputRecorder) TestStarted(framework.TestID)         {}
func (r *outputRecorder) TestError(framework.TestID, error)    {}
func (r *outputRecorder) TestSkipped(framework.TestID, string) {}

func (r *outputRecorder) TestFinished(id framework.TestID, _ bool, output framework.CapturedOutput) {
	r.outputs[id.String()] = output
}
