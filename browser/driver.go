// Package browser creates WebDriver sessions and provides the waits and actions shared by the
// page objects.
package browser

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/qa-harness/e2e-harness/config"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// Driver is the part of selenium.WebDriver used by the harness.
type Driver interface {
	Get(url string) error
	CurrentURL() (string, error)
	Title() (string, error)
	FindElement(by, value string) (selenium.WebElement, error)
	FindElements(by, value string) ([]selenium.WebElement, error)
	ExecuteScript(script string, args []interface{}) (interface{}, error)
	Screenshot() ([]byte, error)
	WindowHandles() ([]string, error)
	CurrentWindowHandle() (string, error)
	SwitchWindow(name string) error
	Quit() error
}

// Factory starts a new browser session. Each UI test gets its own session.
type Factory func() (Driver, error)

// Locator identifies elements on a page.
type Locator struct {
	By    string
	Value string
}

func CSS(selector string) Locator {
	return Locator{By: selenium.ByCSSSelector, Value: selector}
}

func XPath(expression string) Locator {
	return Locator{By: selenium.ByXPATH, Value: expression}
}

func ID(id string) Locator {
	return Locator{By: selenium.ByID, Value: id}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}

const (
	windowWidth  = 1920
	windowHeight = 1080
)

// Capabilities returns the WebDriver capabilities for the configured browser. An unsupported
// browser name falls back to chrome, with a warning.
func Capabilities(cfg config.Config, logger *slog.Logger) selenium.Capabilities {
	name := cfg.Browser
	if name != "chrome" && name != "firefox" {
		logger.Warn("Browser not supported, defaulting to chrome", "browser", name)
		name = "chrome"
	}
	caps := selenium.Capabilities{"browserName": name}
	switch name {
	case "firefox":
		var args []string
		if cfg.Headless {
			args = append(args, "--headless")
		}
		args = append(args, fmt.Sprintf("--width=%d", windowWidth), fmt.Sprintf("--height=%d", windowHeight))
		caps.AddFirefox(firefox.Capabilities{Args: args})
	default:
		var args []string
		if cfg.Headless {
			args = append(args, "--headless")
		}
		args = append(args,
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-gpu",
			fmt.Sprintf("--window-size=%d,%d", windowWidth, windowHeight),
			"--disable-extensions",
			"--disable-web-security",
			"--allow-running-insecure-content",
		)
		caps.AddChrome(chrome.Capabilities{Args: args})
	}
	return caps
}

// NewSession connects to the WebDriver server and prepares a browser window.
func NewSession(cfg config.Config, logger *slog.Logger) (selenium.WebDriver, error) {
	wd, err := selenium.NewRemote(Capabilities(cfg, logger), cfg.WebDriverURL)
	if err != nil {
		return nil, fmt.Errorf("starting %s session at %s: %w", cfg.Browser, cfg.WebDriverURL, err)
	}
	if err := wd.SetImplicitWaitTimeout(cfg.ImplicitWait); err != nil {
		_ = wd.Quit()
		return nil, fmt.Errorf("setting implicit wait: %w", err)
	}
	if !cfg.Headless {
		if err := wd.MaximizeWindow(""); err != nil {
			logger.Warn("Could not maximize window", "error", err)
		}
	}
	logger.Info("Driver initialized", "browser", cfg.Browser, "headless", cfg.Headless)
	return wd, nil
}

// NewFactory returns a Factory that calls NewSession.
func NewFactory(cfg config.Config, logger *slog.Logger) Factory {
	return func() (Driver, error) {
		return NewSession(cfg, logger)
	}
}

// Quit ends a session, logging rather than returning any error.
func Quit(d Driver, logger *slog.Logger) {
	started := time.Now()
	if err := d.Quit(); err != nil {
		logger.Error("Error while quitting driver", "error", err)
		return
	}
	logger.Debug("Driver quit", "duration", time.Since(started))
}
