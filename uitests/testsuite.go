package uitests

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

		t.Run("home page loads", DoHomePageTest)
		t.Run("careers navigation", DoCareersNavigationTest)
		t.Run("QA jobs filtering", DoQAJobsFilteringTest)
		t.Run("full careers scenario", DoFullCareersScenario)
	})
}
