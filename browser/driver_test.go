package browser_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/qa-harness/e2e-harness/browser"
	"github.com/qa-harness/e2e-harness/browser/browsertest"
	"github.com/qa-harness/e2e-harness/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestChromeCapabilities(t *testing.T) {
	logger, _ := bufferLogger()
	caps := browser.Capabilities(config.Config{Browser: "chrome", Headless: true}, logger)

	assert.Equal(t, "chrome", caps["browserName"])
	opts, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	require.True(t, ok)
	assert.Contains(t, opts.Args, "--headless")
	assert.Contains(t, opts.Args, "--window-size=1920,1080")
	assert.Contains(t, opts.Args, "--no-sandbox")
}

func TestFirefoxCapabilities(t *testing.T) {
	logger, _ := bufferLogger()
	caps := browser.Capabilities(config.Config{Browser: "firefox"}, logger)

	assert.Equal(t, "firefox", caps["browserName"])
	opts, ok := caps[firefox.CapabilitiesKey].(firefox.Capabilities)
	require.True(t, ok)
	assert.NotContains(t, opts.Args, "--headless")
	assert.Equal(t, []string{"--width=1920", "--height=1080"}, opts.Args)
}

func TestUnsupportedBrowserFallsBackToChrome(t *testing.T) {
	logger, buf := bufferLogger()
	caps := browser.Capabilities(config.Config{Browser: "netscape"}, logger)

	assert.Equal(t, "chrome", caps["browserName"])
	assert.Contains(t, buf.String(), "Browser not supported")
	assert.Contains(t, buf.String(), "netscape")
}

func TestLocatorString(t *testing.T) {
	assert.Equal(t, "id=filter-by-location", browser.ID("filter-by-location").String())
	assert.Equal(t, "css selector=.job-item", browser.CSS(".job-item").String())
}

func TestQuit(t *testing.T) {
	logger, _ := bufferLogger()
	d := browsertest.NewDriver()

	browser.Quit(d, logger)

	assert.True(t, d.QuitCalled())
}

func TestActions(t *testing.T) {
	d := browsertest.NewDriver()
	menu := browsertest.NewElement("company", "Company")

	require.NoError(t, browser.ScrollIntoView(d, menu))
	require.NoError(t, browser.Hover(menu))
	require.NoError(t, browser.JSClick(d, menu))

	assert.Equal(t, 1, menu.Hovers)
	assert.Equal(t, 1, menu.Clicks)
	assert.Len(t, d.Scripts(), 2)
}
