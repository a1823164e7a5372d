package pages

import (
	"fmt"
	"strings"

	"github.com/qa-harness/e2e-harness/browser"
)

var (
	Logo        = browser.CSS("a.navbar-brand img, a[class*='navbar-brand'] img, img[class*='logo']")
	CompanyMenu = browser.XPath("//nav//a[contains(normalize-space(text()), 'Company') or contains(@href, 'company')]")
	CareersLink = browser.XPath("//nav//a[contains(@href, '/careers') or contains(normalize-space(text()), 'Careers')]")
	Hero        = browser.CSS("#desktop_hero_24, .hp_hero_with_animation, [class*='HeroContentContainer']")
)

type HomePage struct {
	*BasePage
}

func NewHomePage(base *BasePage) *HomePage {
	return &HomePage{BasePage: base}
}

// Open loads the home page.
func (p *HomePage) Open() error {
	return p.Navigate(p.URL(""))
}

// IsLoaded dismisses the cookie banner and pop-up, then checks that the logo and the Company
// menu are shown.
func (p *HomePage) IsLoaded() bool {
	p.AcceptCookies()
	p.ClosePopup()
	_, logoErr := p.Wait.UntilVisible(Logo)
	_, menuErr := p.Wait.UntilVisible(CompanyMenu)
	p.Logger.Printf("Home page - logo shown: %t, Company menu shown: %t", logoErr == nil, menuErr == nil)
	return logoErr == nil && menuErr == nil
}

func (p *HomePage) IsHeroVisible() bool {
	return p.IsDisplayed(Hero)
}

// VerifyTitle checks that the page title contains fragment.
func (p *HomePage) VerifyTitle(fragment string) bool {
	title, err := p.Wait.UntilTitleContains(fragment)
	if err != nil {
		p.Logger.Printf("Title check failed: %s", err)
		return false
	}
	p.Logger.Printf("Page title: %s", title)
	return true
}

// VerifyURL checks, ignoring case, that the current URL contains fragment.
func (p *HomePage) VerifyURL(fragment string) bool {
	u, err := p.CurrentURL()
	if err != nil {
		p.Logger.Printf("Could not read URL: %s", err)
		return false
	}
	return strings.Contains(strings.ToLower(u), strings.ToLower(fragment))
}

// NavigateToCareers opens the Company menu and follows its Careers link.
func (p *HomePage) NavigateToCareers() (*CareersPage, error) {
	p.AcceptCookies()
	p.ClosePopup()

	menu, err := p.Wait.UntilVisible(CompanyMenu)
	if err != nil {
		return nil, fmt.Errorf("company menu: %w", err)
	}
	if err := browser.Hover(menu); err != nil {
		return nil, fmt.Errorf("hovering over company menu: %w", err)
	}
	if _, err := p.Wait.UntilVisible(CareersLink); err != nil {
		return nil, fmt.Errorf("careers link: %w", err)
	}
	if err := p.Click(CareersLink, "Careers link"); err != nil {
		return nil, err
	}
	if _, err := p.Wait.UntilURLContains("careers"); err != nil {
		return nil, err
	}
	p.Logger.Printf("Navigated to careers page")
	return NewCareersPage(p.BasePage), nil
}
