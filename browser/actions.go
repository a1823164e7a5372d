package browser

import (
	"github.com/tebeka/selenium"
)

// ScrollIntoView scrolls the page so that e is in the middle of the window.
func ScrollIntoView(d Driver, e selenium.WebElement) error {
	_, err := d.ExecuteScript("arguments[0].scrollIntoView({behavior: 'instant', block: 'center'});", []interface{}{e})
	return err
}

// Hover moves the mouse over e, which opens hover menus.
func Hover(e selenium.WebElement) error {
	return e.MoveTo(0, 0)
}

// JSClick clicks e from JavaScript. It works when the element is covered by another one, such
// as a cookie banner, which makes a normal click fail.
func JSClick(d Driver, e selenium.WebElement) error {
	_, err := d.ExecuteScript("arguments[0].click();", []interface{}{e})
	return err
}
