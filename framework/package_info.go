// Package framework contains the test run infrastructure shared by the API and UI suites.
//
// There is a general notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate success/failure
// results. A Context implements require.TestingT, so the testify assert and require packages
// work with it directly; a failed require call stops the current test only.
//
// Tests are nested: Context.Run starts a subtest with its own result. The domain-specific suites
// build their test API on top of Context, register cleanups with Defer, and attach failure hooks
// such as screenshot capture with OnFailure.
package framework
