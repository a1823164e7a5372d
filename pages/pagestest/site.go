// Package pagestest lays out a fake careers website on a browsertest.Driver, for testing the page
// objects and the UI suite without a browser.
package pagestest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qa-harness/e2e-harness/browser"
	"github.com/qa-harness/e2e-harness/browser/browsertest"
	"github.com/qa-harness/e2e-harness/pages"
)

const BaseURL = "https://useinsider.test/"

const (
	HomeTitle     = "#1 Leader in Individualized, Cross-Channel CX | Insider"
	CareersTitle  = "Ready to disrupt? | Insider Careers"
	QATitle       = "Insider quality assurance job opportunities"
	ListingTitle  = "Insider Open Positions | Insider"
	DetailsWindow = "job-details"
)

// DefaultJobs are the QA jobs listed before any location filter is applied.
var DefaultJobs = []pages.Job{
	{Title: "Senior Software Quality Assurance Engineer", Department: "Quality Assurance", Location: "Istanbul, Turkiye"},
	{Title: "Software QA Tester - Insider Testinium Tech Hub", Department: "Quality Assurance", Location: "Istanbul, Turkiye"},
	{Title: "Quality Assurance Engineer", Department: "Quality Assurance", Location: "Berlin, Germany"},
}

// Site is a fake careers website. Its fields change how the site behaves and must be set before
// the first page is opened.
type Site struct {
	Driver *browsertest.Driver

	Jobs []pages.Job

	// ShowCookieBanner shows the cookie banner on the home page until it is accepted.
	ShowCookieBanner bool

	// DepartmentDelay is the number of lookups before the listing page selects the department
	// given in its URL.
	DepartmentDelay int

	// AutoSelectDepartment makes the listing page select the department given in its URL.
	AutoSelectDepartment bool

	// ViewRoleOpensWindow makes the "View Role" button open the job details in a new window.
	ViewRoleOpensWindow bool

	// HideCareersLink removes the Careers link from the Company menu.
	HideCareersLink bool

	// WrongResultCounter makes the listing show a total that does not match the listed jobs.
	WrongResultCounter bool
}

// NewSite returns a site that behaves like the real one, with DefaultJobs listed.
func NewSite() *Site {
	s := &Site{
		Driver:               browsertest.NewDriver(),
		Jobs:                 DefaultJobs,
		ShowCookieBanner:     true,
		DepartmentDelay:      2,
		AutoSelectDepartment: true,
		ViewRoleOpensWindow:  true,
	}
	s.Driver.OnGet = func(d *browsertest.Driver, url string) { s.open(url) }
	return s
}

func (s *Site) open(url string) {
	path := strings.TrimPrefix(url, strings.TrimSuffix(BaseURL, "/"))
	switch {
	case path == "" || path == "/":
		s.home()
	case strings.HasPrefix(path, "/careers/quality-assurance"):
		s.qualityAssurance()
	case strings.HasPrefix(path, "/careers/open-positions"):
		s.listing()
	case strings.HasPrefix(path, "/careers"):
		s.careers()
	default:
		s.clear(url, "404 Not Found")
	}
}

func (s *Site) clear(url, title string) {
	for _, l := range allLocators() {
		s.Driver.Remove(l)
	}
	s.Driver.Navigate(url, title)
}

func (s *Site) home() {
	s.clear(BaseURL, HomeTitle)
	d := s.Driver
	d.Add(pages.Logo, browsertest.NewElement("logo", ""))
	d.Add(pages.Hero, browsertest.NewElement("hero", "Insider"))

	careers := &browsertest.Element{Name: "careers link", Content: "Careers", Hidden: true}
	careers.OnClick = func() error {
		s.open(BaseURL + "careers/")
		return nil
	}
	menu := browsertest.NewElement("company menu", "Company")
	menu.OnHover = func() { careers.Hidden = false }
	d.Add(pages.CompanyMenu, menu)
	if !s.HideCareersLink {
		d.Add(pages.CareersLink, careers)
	}

	if s.ShowCookieBanner {
		banner := browsertest.NewElement("cookie banner", "We use cookies")
		accept := browsertest.NewElement("accept all", "Accept All")
		accept.OnClick = func() error {
			banner.Hidden = true
			s.ShowCookieBanner = false
			return nil
		}
		d.Add(pages.CookieBanner, banner)
		d.Add(pages.CookieAcceptButtons[0], accept)
	}
}

func (s *Site) careers() {
	s.clear(BaseURL+"careers/", CareersTitle)
	d := s.Driver
	d.Add(pages.CareersTitle, browsertest.NewElement("title", "Ready to disrupt?"))
	d.Add(pages.LocationsSection, browsertest.NewElement("locations", "Our Locations"))
	d.Add(pages.TeamElements, browsertest.NewElement("sales", "Sales"), browsertest.NewElement("qa", "Quality Assurance"))
	d.Add(pages.LifeAtSection, browsertest.NewElement("life", "Life at Insider"))
}

func (s *Site) qualityAssurance() {
	s.clear(BaseURL+pages.QualityAssurancePath, QATitle)
	seeAll := browsertest.NewElement("see all", "See all QA jobs")
	seeAll.OnClick = func() error {
		s.open(BaseURL + "careers/open-positions/?department=qualityassurance")
		return nil
	}
	s.Driver.Add(pages.SeeAllQAJobs, seeAll)
}

func (s *Site) listing() {
	s.clear(BaseURL+"careers/open-positions/?department=qualityassurance", ListingTitle)
	d := s.Driver

	d.Add(pages.LocationFilter, browsertest.NewElement("location filter", ""))
	d.Add(pages.DepartmentFilter, browsertest.NewElement("department filter", ""))

	location := s.selection(pages.LocationFilter, "All", []string{"All", "Berlin, Germany", "Istanbul, Turkiye"},
		func(chosen string) { s.showJobs(chosen) })
	d.Add(pages.FilterSelection(pages.LocationFilter), location)

	department := s.selection(pages.DepartmentFilter, "All", []string{"All", "Quality Assurance", "Sales"}, nil)
	if s.AutoSelectDepartment {
		department.Attributes["title"] = pages.QADepartment
		department.Content = pages.QADepartment
		d.AppearAfter(pages.FilterSelection(pages.DepartmentFilter), s.DepartmentDelay)
	}
	d.Add(pages.FilterSelection(pages.DepartmentFilter), department)

	s.showJobs("")
}

// selection lays out a Select2 filter whose options open when the rendered value is clicked.
func (s *Site) selection(filter browser.Locator, initial string, options []string, onChange func(string)) *browsertest.Element {
	rendered := &browsertest.Element{
		Name:       filter.Value + " selection",
		Content:    initial,
		Attributes: map[string]string{"title": initial},
	}
	rendered.OnClick = func() error {
		var es []*browsertest.Element
		for _, text := range options {
			option := browsertest.NewElement(text, text)
			option.OnClick = func() error {
				rendered.Content = text
				rendered.Attributes["title"] = text
				s.Driver.Remove(pages.FilterOptions(filter))
				if onChange != nil {
					onChange(text)
				}
				return nil
			}
			es = append(es, option)
		}
		s.Driver.Add(pages.FilterOptions(filter), es...)
		return nil
	}
	return rendered
}

// showJobs re-renders the job listing for a location. Rows rendered before are left detached,
// as they are in the browser.
func (s *Site) showJobs(location string) {
	old, _ := s.Driver.FindElements(pages.JobListings.By, pages.JobListings.Value)
	for _, e := range old {
		e.(*browsertest.Element).StaleFor = 1000
	}

	var rows []*browsertest.Element
	for i, job := range s.Jobs {
		if location != "" && location != "All" && !pages.SameLocation(job.Location, location) {
			continue
		}
		rows = append(rows, s.jobRow(i, job))
	}
	s.Driver.Add(pages.JobListings, rows...)

	total := len(rows)
	if s.WrongResultCounter {
		total++
	}
	s.Driver.Add(pages.ResultCounter, browsertest.NewElement("result counter", strconv.Itoa(total)))
}

func (s *Site) jobRow(i int, job pages.Job) *browsertest.Element {
	viewRole := &browsertest.Element{Name: "view role", Content: "View Role"}
	viewRole.OnClick = func() error {
		if s.ViewRoleOpensWindow {
			s.Driver.OpenWindow(fmt.Sprintf("%s-%d", DetailsWindow, i))
		}
		return nil
	}
	return browsertest.NewElement(fmt.Sprintf("job %d", i), job.Title).
		Add(pages.JobTitle, browsertest.NewElement("title", job.Title)).
		Add(pages.JobDepartment, browsertest.NewElement("department", job.Department)).
		Add(pages.JobLocation, browsertest.NewElement("location", job.Location)).
		Add(pages.ViewRole, viewRole)
}

func allLocators() []browser.Locator {
	ls := []browser.Locator{
		pages.CookieBanner, pages.Popup,
		pages.Logo, pages.CompanyMenu, pages.CareersLink, pages.Hero,
		pages.CareersTitle, pages.LocationsSection, pages.LocationElements, pages.TeamsSection,
		pages.TeamElements, pages.LifeAtSection, pages.LifeAtElements,
		pages.SeeAllQAJobs, pages.LocationFilter, pages.DepartmentFilter,
		pages.FilterSelection(pages.LocationFilter), pages.FilterSelection(pages.DepartmentFilter),
		pages.FilterOptions(pages.LocationFilter), pages.FilterOptions(pages.DepartmentFilter),
		pages.JobListings, pages.ResultCounter,
	}
	ls = append(ls, pages.CookieAcceptButtons...)
	return append(ls, pages.PopupCloseButtons...)
}
