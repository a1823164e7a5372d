package browser

import (
	"errors"
	"strings"

	"github.com/tebeka/selenium"
)

// WebDriver error codes, as defined by the W3C protocol.
const (
	errStaleElement  = "stale element reference"
	errNoSuchElement = "no such element"
)

// IsStaleElement returns true if err means that an element found earlier is no longer attached to
// the page, typically because the page re-rendered.
func IsStaleElement(err error) bool {
	return hasCode(err, errStaleElement)
}

// IsNoSuchElement returns true if err means that no element matched a locator.
func IsNoSuchElement(err error) bool {
	return hasCode(err, errNoSuchElement)
}

func hasCode(err error, code string) bool {
	var se *selenium.Error
	if errors.As(err, &se) {
		return se.Err == code
	}
	return err != nil && strings.Contains(err.Error(), code)
}

// isTransient returns true for the errors that waits treat as "not ready yet".
func isTransient(err error) bool {
	return IsStaleElement(err) || IsNoSuchElement(err)
}
