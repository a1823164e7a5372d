package uitests

import (
	"log/slog"

	"github.com/qa-harness/e2e-harness/await"
	"github.com/qa-harness/e2e-harness/browser"
	"github.com/qa-harness/e2e-harness/config"
	"github.com/qa-harness/e2e-harness/framework"
	"github.com/qa-harness/e2e-harness/pages"

	"github.com/stretchr/testify/require"
)

// Options are the dependencies shared by all tests of the suite.
type Options struct {
	Factory browser.Factory
	Config  config.Config

	// Screenshots saves the failure screenshots. No screenshots are taken if it is nil or if
	// Config.ScreenshotOnFailure is false.
	Screenshots *browser.Screenshots

	// Clock is used by every wait; the wall clock if nil.
	Clock await.Clock

	Logger *slog.Logger
}

// T represents a test or group of tests in the suite. It implements require.TestingT.
type T struct {
	context *framework.Context
	options *Options
	driver  browser.Driver
}

func newTestScope(context *framework.Context, options *Options) *T {
	return &T{context: context, options: options}
}

func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

func (t *T) FailNow() {
	t.context.FailNow()
}

func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.options))
	})
}

func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Driver returns the browser session of this test, starting it on first use. The session is
// quit when the test ends.
func (t *T) Driver() browser.Driver {
	if t.driver != nil {
		return t.driver
	}
	d, err := t.options.Factory()
	require.NoError(t, err, "starting browser")
	t.driver = d
	t.context.Defer(func() {
		browser.Quit(d, t.logger())
		t.Debug("Browser session ended")
	})
	if t.options.Screenshots != nil && t.options.Config.ScreenshotOnFailure {
		t.context.OnFailure(func(id framework.TestID) {
			if path := t.options.Screenshots.Capture(d, id.String()); path != "" {
				t.Debug("Screenshot saved to %s", path)
			}
		})
	}
	return d
}

// Waiter returns a Waiter for this test's browser with the configured explicit wait.
func (t *T) Waiter() *browser.Waiter {
	return browser.NewWaiter(t.Driver(), t.options.Config.ExplicitWait,
		await.WithClock(t.options.Clock),
		await.WithLogger(t.context.DebugLogger()),
	)
}

// Home opens the home page in this test's browser.
func (t *T) Home() *pages.HomePage {
	base := pages.NewBasePage(t.Driver(), t.Waiter(), t.options.Config.BaseURL, t.context.DebugLogger())
	home := pages.NewHomePage(base)
	require.NoError(t, home.Open(), "opening home page")
	return home
}

// Screenshot saves a screenshot under a fixed name, for diagnosing a soft failure.
func (t *T) Screenshot(name string) {
	if t.options.Screenshots == nil {
		return
	}
	if path := t.options.Screenshots.CaptureNamed(t.Driver(), name); path != "" {
		t.Debug("Screenshot saved to %s", path)
	}
}

func (t *T) logger() *slog.Logger {
	if t.options.Logger == nil {
		return slog.Default()
	}
	return t.options.Logger
}
