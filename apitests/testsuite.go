package apitests

import (
	"github.com/qa-harness/e2e-harness/framework"
)

func RunTestSuite(
	options Options,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, &options)

		t.Run("create", DoCreateTests)
		t.Run("get", DoGetTests)
		t.Run("update", DoUpdateTests)
		t.Run("delete", DoDeleteTests)
		t.Run("find by status", DoFindByStatusTests)
		t.Run("negative", DoNegativeTests)
	})
}
