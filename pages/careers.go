package pages

import (
	"fmt"
	"strings"

	"github.com/qa-harness/e2e-harness/browser"
)

var (
	CareersTitle = browser.XPath("//h1[contains(text(), 'Career')] | //h2[contains(text(), 'Career')] | //*[contains(@class, 'career-page')]")

	LocationsSection = browser.XPath("//h2[contains(text(), 'Locations')] | //h3[contains(text(), 'Our Locations')] | //*[@id='career-our-location']")
	LocationElements = browser.CSS("#career-our-location .category-title-media, [class*='location-info'], [class*='office-location']")
	TeamsSection     = browser.XPath("//h2[contains(text(), 'Teams')] | //h3[contains(text(), 'Find your calling')] | //*[@id='career-find-our-calling']")
	TeamElements     = browser.CSS("#career-find-our-calling .job-item, [class*='team'], [class*='department-card']")
	LifeAtSection    = browser.XPath("//h2[contains(text(), 'Life at Insider')] | //*[contains(@class, 'life')] | //*[@data-section='life']")
	LifeAtElements   = browser.CSS("[class*='life'], [class*='culture'], .elementor-heading-title")
)

// QualityAssurancePath is the path of the Quality Assurance careers page.
const QualityAssurancePath = "careers/quality-assurance/"

type CareersPage struct {
	*BasePage
}

func NewCareersPage(base *BasePage) *CareersPage {
	return &CareersPage{BasePage: base}
}

// IsLoaded waits for the careers heading or a careers URL, then checks the URL.
func (p *CareersPage) IsLoaded() bool {
	err := p.Wait.Until("careers page", func(d browser.Driver) (bool, error) {
		if p.IsDisplayed(CareersTitle) {
			return true, nil
		}
		u, err := d.CurrentURL()
		return strings.Contains(strings.ToLower(u), "careers"), err
	})
	if err != nil {
		p.Logger.Printf("Careers page did not load: %s", err)
		return false
	}
	p.ClosePopup()
	u, err := p.CurrentURL()
	return err == nil && strings.Contains(strings.ToLower(u), "careers")
}

func (p *CareersPage) IsLocationsSectionVisible() bool {
	return p.sectionVisible("Locations", LocationsSection, LocationElements)
}

func (p *CareersPage) IsTeamsSectionVisible() bool {
	return p.sectionVisible("Teams", TeamsSection, TeamElements)
}

func (p *CareersPage) IsLifeAtSectionVisible() bool {
	return p.sectionVisible("Life at Insider", LifeAtSection, LifeAtElements)
}

// AreAllSectionsVisible checks the Locations, Teams and Life at Insider sections.
func (p *CareersPage) AreAllSectionsVisible() bool {
	locations := p.IsLocationsSectionVisible()
	teams := p.IsTeamsSectionVisible()
	lifeAt := p.IsLifeAtSectionVisible()
	p.Logger.Printf("Sections shown - Locations: %t, Teams: %t, Life at Insider: %t", locations, teams, lifeAt)
	return locations && teams && lifeAt
}

func (p *CareersPage) sectionVisible(name string, heading, elements browser.Locator) bool {
	if p.IsDisplayed(heading) {
		return true
	}
	if p.AnyDisplayed(elements) {
		p.Logger.Printf("Found %s section from its content", name)
		return true
	}
	p.Logger.Printf("%s section not found", name)
	return false
}

// NavigateToQualityAssurance opens the Quality Assurance careers page.
func (p *CareersPage) NavigateToQualityAssurance() (*QualityAssurancePage, error) {
	if err := p.Navigate(p.URL(QualityAssurancePath)); err != nil {
		return nil, err
	}
	if _, err := p.Wait.UntilURLContains("quality-assurance"); err != nil {
		return nil, fmt.Errorf("quality assurance page: %w", err)
	}
	return NewQualityAssurancePage(p.BasePage), nil
}
