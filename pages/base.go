package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/qa-harness/e2e-harness/browser"
	"github.com/qa-harness/e2e-harness/framework"

	"github.com/tebeka/selenium"
)

// OptionalElementTimeout bounds the waits for elements that may never show up, such as the
// cookie banner going away.
const OptionalElementTimeout = 5 * time.Second

var (
	CookieBanner        = browser.ID("cookie-law-info-bar")
	CookieAcceptButtons = []browser.Locator{
		browser.ID("wt-cli-accept-all-btn"),
		browser.CSS(".cli-accept-all-btn"),
		browser.CSS("a.wt-cli-accept-all-btn, [data-cli_action='accept_all']"),
		browser.CSS(".accept-cookies"),
		browser.ID("cookie-accept"),
		browser.XPath("//a[contains(text(), 'Accept') or contains(@class, 'accept') or @id='accept-all-cookies']"),
	}

	Popup             = browser.XPath("//div[contains(@class, 'ins-notification-content')]")
	PopupCloseButtons = []browser.Locator{
		browser.XPath("//span[contains(@class, 'ins-close-button')]"),
		browser.XPath("//button[contains(@class, 'ins-close-button')]"),
		browser.XPath("//span[text()='×']"),
		browser.XPath("//button[text()='×']"),
		browser.XPath("//span[contains(@class, 'close')]"),
		browser.XPath("//button[contains(@class, 'close')]"),
	}
)

// BasePage holds what every page object needs: the browser, the waits and the site address.
type BasePage struct {
	Driver  browser.Driver
	Wait    *browser.Waiter
	BaseURL string
	Logger  framework.Logger
}

// NewBasePage returns a BasePage. A nil logger discards the page log.
func NewBasePage(d browser.Driver, wait *browser.Waiter, baseURL string, logger framework.Logger) *BasePage {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &BasePage{Driver: d, Wait: wait, BaseURL: baseURL, Logger: logger}
}

// URL resolves a path against the site address.
func (p *BasePage) URL(path string) string {
	return strings.TrimSuffix(p.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

func (p *BasePage) Title() (string, error) {
	return p.Driver.Title()
}

func (p *BasePage) CurrentURL() (string, error) {
	return p.Driver.CurrentURL()
}

// Navigate opens url and waits for the document to finish loading.
func (p *BasePage) Navigate(url string) error {
	p.Logger.Printf("Navigating to %s", url)
	if err := p.Driver.Get(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return p.Wait.UntilPageLoaded()
}

// Click waits for the element at l to be clickable and clicks it. If the element is replaced
// while this happens, it is looked up again.
func (p *BasePage) Click(l browser.Locator, name string) error {
	return p.Wait.Until("click on "+name, func(d browser.Driver) (bool, error) {
		e, err := d.FindElement(l.By, l.Value)
		if err != nil {
			return false, err
		}
		if ready, err := isClickable(e); !ready || err != nil {
			return false, err
		}
		return true, p.ClickElement(e, name)
	})
}

// ClickElement scrolls e into view and clicks it. When the browser refuses the click, because
// another element covers e for instance, it clicks from JavaScript instead.
func (p *BasePage) ClickElement(e selenium.WebElement, name string) error {
	if err := browser.ScrollIntoView(p.Driver, e); err != nil {
		if browser.IsStaleElement(err) {
			return err
		}
		p.Logger.Printf("Could not scroll to %s: %s", name, err)
	}
	if err := e.Click(); err != nil {
		if browser.IsStaleElement(err) {
			return err
		}
		p.Logger.Printf("Click on %s failed, using JavaScript: %s", name, err)
		if err := browser.JSClick(p.Driver, e); err != nil {
			return fmt.Errorf("clicking %s: %w", name, err)
		}
	}
	p.Logger.Printf("Clicked on: %s", name)
	return nil
}

// IsDisplayed checks right away, without waiting, whether an element at l is displayed.
func (p *BasePage) IsDisplayed(l browser.Locator) bool {
	e, err := p.Driver.FindElement(l.By, l.Value)
	if err != nil {
		return false
	}
	return isDisplayed(e)
}

// AnyDisplayed returns true if at least one element at l is displayed.
func (p *BasePage) AnyDisplayed(l browser.Locator) bool {
	es, err := p.Driver.FindElements(l.By, l.Value)
	if err != nil {
		return false
	}
	for _, e := range es {
		if isDisplayed(e) {
			return true
		}
	}
	return false
}

// AcceptCookies dismisses the cookie banner if it is shown, and returns true if it did.
func (p *BasePage) AcceptCookies() bool {
	if !p.IsDisplayed(CookieBanner) {
		return false
	}
	if !p.clickFirstAvailable(CookieAcceptButtons, "cookie accept button") {
		p.Logger.Printf("Cookie banner is shown but no accept button was found")
		return false
	}
	if err := p.Wait.WithTimeout(OptionalElementTimeout).UntilInvisible(CookieBanner); err != nil {
		p.Logger.Printf("Cookie banner still shown after accepting: %s", err)
	}
	p.Logger.Printf("Accepted cookies")
	return true
}

// ClosePopup closes the marketing pop-up if it is shown, and returns true if it did.
func (p *BasePage) ClosePopup() bool {
	if !p.IsDisplayed(Popup) {
		return false
	}
	if !p.clickFirstAvailable(PopupCloseButtons, "pop-up close button") {
		p.Logger.Printf("Pop-up is shown but no close button was found")
		return false
	}
	if err := p.Wait.WithTimeout(OptionalElementTimeout).UntilInvisible(Popup); err != nil {
		p.Logger.Printf("Pop-up still shown after closing: %s", err)
	}
	p.Logger.Printf("Closed pop-up")
	return true
}

func (p *BasePage) clickFirstAvailable(candidates []browser.Locator, name string) bool {
	for _, l := range candidates {
		e, err := p.Driver.FindElement(l.By, l.Value)
		if err != nil {
			continue
		}
		if ready, _ := isClickable(e); !ready {
			continue
		}
		if err := e.Click(); err != nil {
			p.Logger.Printf("Could not click %s %s: %s", name, l, err)
			continue
		}
		p.Logger.Printf("Clicked %s %s", name, l)
		return true
	}
	return false
}

func isDisplayed(e selenium.WebElement) bool {
	shown, err := e.IsDisplayed()
	return err == nil && shown
}

func isClickable(e selenium.WebElement) (bool, error) {
	shown, err := e.IsDisplayed()
	if err != nil || !shown {
		return false, err
	}
	return e.IsEnabled()
}
