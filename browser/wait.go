package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/qa-harness/e2e-harness/await"

	"github.com/tebeka/selenium"
)

// DefaultPollInterval is how often waits check the page.
const DefaultPollInterval = 500 * time.Millisecond

// Waiter waits for conditions on the page. Stale element and missing element errors never end a
// wait early, since the page may re-render between two checks; any other WebDriver error does.
type Waiter struct {
	driver  Driver
	config  await.Config
	options []await.Option
}

// NewWaiter creates a Waiter that gives up after timeout. The options are passed to every poll.
func NewWaiter(driver Driver, timeout time.Duration, opts ...await.Option) *Waiter {
	return &Waiter{
		driver:  driver,
		config:  await.Config{Timeout: timeout, Interval: DefaultPollInterval},
		options: opts,
	}
}

// WithTimeout returns a Waiter with the same driver and options and a different timeout.
func (w *Waiter) WithTimeout(timeout time.Duration) *Waiter {
	w1 := *w
	w1.config = w.config.WithTimeout(timeout)
	return &w1
}

type check[T any] struct {
	value     T
	ready     bool
	transient error
}

func waitFor[T any](w *Waiter, description string, probe func() (T, bool, error)) (T, error) {
	opts := append(append([]await.Option(nil), w.options...), await.WithDescription(description))
	out, err := await.Until[check[T]](func() (check[T], error) {
		value, ready, err := probe()
		if err != nil && isTransient(err) {
			return check[T]{transient: err}, nil
		}
		return check[T]{value: value, ready: ready}, err
	}, func(c check[T]) bool { return c.ready }, w.config, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	if out.Kind == await.TimedOut {
		if out.Value.transient != nil {
			return out.Value.value, fmt.Errorf("%w: last error: %s", out.Err(), out.Value.transient)
		}
		return out.Value.value, out.Err()
	}
	return out.Value.value, nil
}

// Until waits for an arbitrary condition.
func (w *Waiter) Until(description string, cond func(Driver) (bool, error)) error {
	_, err := waitFor(w, description, func() (struct{}, bool, error) {
		ok, err := cond(w.driver)
		return struct{}{}, ok, err
	})
	return err
}

// UntilPresent waits until an element matching l is in the page.
func (w *Waiter) UntilPresent(l Locator) (selenium.WebElement, error) {
	return waitFor(w, "element "+l.String()+" to be present", func() (selenium.WebElement, bool, error) {
		e, err := w.driver.FindElement(l.By, l.Value)
		return e, err == nil, err
	})
}

// UntilAllPresent waits until at least one element matches l, and returns all of them.
func (w *Waiter) UntilAllPresent(l Locator) ([]selenium.WebElement, error) {
	return waitFor(w, "elements "+l.String()+" to be present", func() ([]selenium.WebElement, bool, error) {
		es, err := w.driver.FindElements(l.By, l.Value)
		return es, err == nil && len(es) > 0, err
	})
}

// UntilVisible waits until an element matching l is displayed.
func (w *Waiter) UntilVisible(l Locator) (selenium.WebElement, error) {
	return waitFor(w, "element "+l.String()+" to be visible", func() (selenium.WebElement, bool, error) {
		e, err := w.driver.FindElement(l.By, l.Value)
		if err != nil {
			return nil, false, err
		}
		shown, err := e.IsDisplayed()
		return e, shown, err
	})
}

// UntilClickable waits until an element matching l is displayed and enabled.
func (w *Waiter) UntilClickable(l Locator) (selenium.WebElement, error) {
	return waitFor(w, "element "+l.String()+" to be clickable", func() (selenium.WebElement, bool, error) {
		e, err := w.driver.FindElement(l.By, l.Value)
		if err != nil {
			return nil, false, err
		}
		shown, err := e.IsDisplayed()
		if err != nil || !shown {
			return e, false, err
		}
		enabled, err := e.IsEnabled()
		return e, enabled, err
	})
}

// UntilInvisible waits until no displayed element matches l.
func (w *Waiter) UntilInvisible(l Locator) error {
	_, err := waitFor(w, "element "+l.String()+" to be invisible", func() (bool, bool, error) {
		e, err := w.driver.FindElement(l.By, l.Value)
		if err != nil {
			if isTransient(err) {
				return true, true, nil
			}
			return false, false, err
		}
		shown, err := e.IsDisplayed()
		if err != nil && IsStaleElement(err) {
			return true, true, nil
		}
		return !shown, !shown, err
	})
	return err
}

// UntilTextPresent waits until the text of an element matching l contains text.
func (w *Waiter) UntilTextPresent(l Locator, text string) (selenium.WebElement, error) {
	description := fmt.Sprintf("element %s to contain %q", l, text)
	return waitFor(w, description, func() (selenium.WebElement, bool, error) {
		e, err := w.driver.FindElement(l.By, l.Value)
		if err != nil {
			return nil, false, err
		}
		actual, err := e.Text()
		return e, strings.Contains(actual, text), err
	})
}

// UntilAttributeContains waits until an attribute of an element matching l contains fragment,
// and returns the attribute value.
func (w *Waiter) UntilAttributeContains(l Locator, attribute, fragment string) (string, error) {
	description := fmt.Sprintf("attribute %s of %s to contain %q", attribute, l, fragment)
	return waitFor(w, description, func() (string, bool, error) {
		e, err := w.driver.FindElement(l.By, l.Value)
		if err != nil {
			return "", false, err
		}
		value, err := e.GetAttribute(attribute)
		return value, strings.Contains(value, fragment), err
	})
}

// UntilURLContains waits until the current URL contains fragment, and returns the URL.
func (w *Waiter) UntilURLContains(fragment string) (string, error) {
	return waitFor(w, fmt.Sprintf("URL to contain %q", fragment), func() (string, bool, error) {
		u, err := w.driver.CurrentURL()
		return u, strings.Contains(u, fragment), err
	})
}

// UntilTitleContains waits until the page title contains fragment, and returns the title.
func (w *Waiter) UntilTitleContains(fragment string) (string, error) {
	return waitFor(w, fmt.Sprintf("title to contain %q", fragment), func() (string, bool, error) {
		title, err := w.driver.Title()
		return title, strings.Contains(title, fragment), err
	})
}

// UntilPageLoaded waits until the document ready state is "complete".
func (w *Waiter) UntilPageLoaded() error {
	return w.Until("page to load", func(d Driver) (bool, error) {
		state, err := d.ExecuteScript("return document.readyState", nil)
		return state == "complete", err
	})
}

// UntilWindowCount waits until at least count windows are open, and returns their handles.
func (w *Waiter) UntilWindowCount(count int) ([]string, error) {
	return waitFor(w, fmt.Sprintf("%d windows to be open", count), func() ([]string, bool, error) {
		handles, err := w.driver.WindowHandles()
		return handles, len(handles) >= count, err
	})
}
