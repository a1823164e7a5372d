// Package browsertest provides an in-memory browser.Driver for testing page objects and UI
// suites without a WebDriver server.
package browsertest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/qa-harness/e2e-harness/browser"

	"github.com/tebeka/selenium"
)

// StaleError and NoSuchElementError are the errors a real WebDriver returns for a detached
// element and for a locator that matches nothing.
var (
	StaleError         = &selenium.Error{Err: "stale element reference", Message: "element is not attached to the page document"}
	NoSuchElementError = &selenium.Error{Err: "no such element", Message: "Unable to locate element"}
)

// Element is a fake selenium.WebElement. Only the methods the harness calls are implemented;
// calling any other method panics on the nil embedded interface.
type Element struct {
	selenium.WebElement

	Name       string
	Content    string
	Hidden     bool
	Disabled   bool
	Attributes map[string]string
	Children   map[browser.Locator][]*Element

	// StaleFor makes the next StaleFor calls on the element fail with StaleError.
	StaleFor int

	// ClickErr is returned by Click without clicking. A JavaScript click still works.
	ClickErr error

	// OnClick is called by Click and by a JavaScript click. An error from it is returned by Click.
	OnClick func() error

	// OnHover is called by MoveTo.
	OnHover func()

	Clicks int
	Hovers int
}

// NewElement returns a displayed, enabled element with the given text.
func NewElement(name, text string) *Element {
	return &Element{Name: name, Content: text}
}

func (e *Element) stale() error {
	if e.StaleFor > 0 {
		e.StaleFor--
		return StaleError
	}
	return nil
}

func (e *Element) Click() error {
	if err := e.stale(); err != nil {
		return err
	}
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.Clicks++
	if e.OnClick != nil {
		return e.OnClick()
	}
	return nil
}

func (e *Element) Text() (string, error) {
	if err := e.stale(); err != nil {
		return "", err
	}
	return e.Content, nil
}

func (e *Element) IsDisplayed() (bool, error) {
	if err := e.stale(); err != nil {
		return false, err
	}
	return !e.Hidden, nil
}

func (e *Element) IsEnabled() (bool, error) {
	if err := e.stale(); err != nil {
		return false, err
	}
	return !e.Disabled, nil
}

func (e *Element) GetAttribute(name string) (string, error) {
	if err := e.stale(); err != nil {
		return "", err
	}
	return e.Attributes[name], nil
}

func (e *Element) MoveTo(int, int) error {
	if err := e.stale(); err != nil {
		return err
	}
	e.Hovers++
	if e.OnHover != nil {
		e.OnHover()
	}
	return nil
}

func (e *Element) FindElement(by, value string) (selenium.WebElement, error) {
	es := e.Children[browser.Locator{By: by, Value: value}]
	if len(es) == 0 {
		return nil, NoSuchElementError
	}
	return es[0], nil
}

func (e *Element) FindElements(by, value string) ([]selenium.WebElement, error) {
	return toWebElements(e.Children[browser.Locator{By: by, Value: value}]), nil
}

// Add sets the children of e that match l.
func (e *Element) Add(l browser.Locator, children ...*Element) *Element {
	if e.Children == nil {
		e.Children = make(map[browser.Locator][]*Element)
	}
	e.Children[l] = children
	return e
}

func (e *Element) String() string {
	return "element " + e.Name
}

// Driver is a fake browser.Driver holding a single page whose elements are registered by
// locator. Behavior such as navigation on click is scripted with Element.OnClick.
type Driver struct {
	lock sync.Mutex

	URL        string
	PageTitle  string
	ReadyState string
	Windows    []string
	Current    string
	PNG        []byte

	// ScreenshotErr, when set, is returned by Screenshot.
	ScreenshotErr error

	// OnGet is called by Get after the URL is set, to lay out the page.
	OnGet func(d *Driver, url string)

	elements map[browser.Locator][]*Element
	pending  map[browser.Locator]int
	scripts  []string
	visited  []string
	quit     bool
}

// NewDriver returns a driver with one window and an empty, fully loaded page.
func NewDriver() *Driver {
	return &Driver{
		ReadyState: "complete",
		Windows:    []string{"main"},
		Current:    "main",
		PNG:        []byte("\x89PNG fake"),
		elements:   make(map[browser.Locator][]*Element),
		pending:    make(map[browser.Locator]int),
	}
}

// Add registers the elements matching l, replacing any previous ones.
func (d *Driver) Add(l browser.Locator, es ...*Element) *Driver {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.elements[l] = es
	return d
}

// Remove makes l match nothing.
func (d *Driver) Remove(l browser.Locator) {
	d.lock.Lock()
	defer d.lock.Unlock()
	delete(d.elements, l)
}

// AppearAfter makes lookups of l fail with NoSuchElementError for the next n calls.
func (d *Driver) AppearAfter(l browser.Locator, n int) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.pending[l] = n
}

// Navigate changes the URL and title as a click on a link would.
func (d *Driver) Navigate(url, title string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.URL = url
	d.PageTitle = title
}

// OpenWindow adds a window handle, as a link with target=_blank would.
func (d *Driver) OpenWindow(handle string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.Windows = append(d.Windows, handle)
}

// Scripts returns the JavaScript executed so far.
func (d *Driver) Scripts() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.scripts...)
}

// Visited returns the URLs passed to Get.
func (d *Driver) Visited() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.visited...)
}

// QuitCalled returns true once Quit has been called.
func (d *Driver) QuitCalled() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.quit
}

func (d *Driver) Get(url string) error {
	d.lock.Lock()
	d.URL = url
	d.visited = append(d.visited, url)
	onGet := d.OnGet
	d.lock.Unlock()
	if onGet != nil {
		onGet(d, url)
	}
	return nil
}

func (d *Driver) CurrentURL() (string, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.URL, nil
}

func (d *Driver) Title() (string, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.PageTitle, nil
}

func (d *Driver) lookup(by, value string) []*Element {
	d.lock.Lock()
	defer d.lock.Unlock()
	l := browser.Locator{By: by, Value: value}
	if d.pending[l] > 0 {
		d.pending[l]--
		return nil
	}
	return d.elements[l]
}

func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	es := d.lookup(by, value)
	if len(es) == 0 {
		return nil, NoSuchElementError
	}
	return es[0], nil
}

func (d *Driver) FindElements(by, value string) ([]selenium.WebElement, error) {
	return toWebElements(d.lookup(by, value)), nil
}

// ExecuteScript understands the scripts used by the browser package: document.readyState,
// scrollIntoView and click. Any other script returns nil.
func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.lock.Lock()
	d.scripts = append(d.scripts, script)
	state := d.ReadyState
	d.lock.Unlock()

	switch {
	case strings.Contains(script, "document.readyState"):
		return state, nil
	case strings.Contains(script, ".click()"):
		e, err := argElement(args)
		if err != nil {
			return nil, err
		}
		if err := e.stale(); err != nil {
			return nil, err
		}
		e.Clicks++
		if e.OnClick != nil {
			return nil, e.OnClick()
		}
	case strings.Contains(script, "scrollIntoView"):
		e, err := argElement(args)
		if err != nil {
			return nil, err
		}
		return nil, e.stale()
	}
	return nil, nil
}

func argElement(args []interface{}) (*Element, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("script needs an element argument")
	}
	e, ok := args[0].(*Element)
	if !ok {
		return nil, fmt.Errorf("unexpected script argument %T", args[0])
	}
	return e, nil
}

func (d *Driver) Screenshot() ([]byte, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.ScreenshotErr != nil {
		return nil, d.ScreenshotErr
	}
	return d.PNG, nil
}

func (d *Driver) WindowHandles() ([]string, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.Windows...), nil
}

func (d *Driver) CurrentWindowHandle() (string, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.Current, nil
}

func (d *Driver) SwitchWindow(name string) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	for _, w := range d.Windows {
		if w == name {
			d.Current = name
			return nil
		}
	}
	return &selenium.Error{Err: "no such window", Message: name}
}

func (d *Driver) Quit() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.quit = true
	return nil
}

func toWebElements(es []*Element) []selenium.WebElement {
	ret := make([]selenium.WebElement, 0, len(es))
	for _, e := range es {
		ret = append(ret, e)
	}
	return ret
}
