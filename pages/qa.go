package pages

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/qa-harness/e2e-harness/browser"

	"github.com/tebeka/selenium"
)

// QADepartment is the department the Quality Assurance job listing is filtered on.
const QADepartment = "Quality Assurance"

var (
	SeeAllQAJobs = browser.XPath("//a[contains(., 'See all QA jobs') or contains(@href, 'open-positions/?department=qualityassurance')]")

	LocationFilter   = browser.ID("filter-by-location")
	DepartmentFilter = browser.ID("filter-by-department")

	JobListings   = browser.CSS(".position-list-item, .job-item, [data-testid='job-item'], .position-list .position")
	JobTitle      = browser.CSS(".position-title, h3, .job-title")
	JobDepartment = browser.CSS(".position-department, .department, [data-department]")
	JobLocation   = browser.CSS(".position-location, .location, [data-location]")
	ViewRole      = browser.XPath(".//a[contains(text(), 'View Role')] | .//button[contains(text(), 'View Role')]")
	ResultCounter = browser.CSS("#resultCounter .totalResult")
)

// FilterSelection returns the locator of the rendered value of a Select2 filter.
func FilterSelection(filter browser.Locator) browser.Locator {
	return browser.ID("select2-" + filter.Value + "-container")
}

// FilterOptions returns the locator of the open options of a Select2 filter.
func FilterOptions(filter browser.Locator) browser.Locator {
	return browser.CSS("li.select2-results__option[id*='select2-" + filter.Value + "-result']")
}

// Job is one row of the job listing.
type Job struct {
	Title      string
	Department string
	Location   string
}

// Matches returns true if the job belongs to department, by title or department, and is in
// location.
func (j Job) Matches(location, department string) bool {
	d := strings.ToLower(department)
	inDepartment := strings.Contains(strings.ToLower(j.Title), d) || strings.Contains(strings.ToLower(j.Department), d)
	return inDepartment && SameLocation(j.Location, location)
}

// SameLocation compares two location names ignoring case, surrounding space, and the two
// spellings of Turkey. A location matches if it contains the wanted one.
func SameLocation(actual, wanted string) bool {
	normalize := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		return strings.ReplaceAll(s, "turkey", "turkiye")
	}
	return strings.Contains(normalize(actual), normalize(wanted))
}

type QualityAssurancePage struct {
	*BasePage
}

func NewQualityAssurancePage(base *BasePage) *QualityAssurancePage {
	return &QualityAssurancePage{BasePage: base}
}

// ClickSeeAllQAJobs follows the "See all QA jobs" link and waits for the job listing to be
// filtered on the QA department. It returns the URL of the listing.
func (p *QualityAssurancePage) ClickSeeAllQAJobs() (string, error) {
	p.AcceptCookies()
	p.ClosePopup()
	if err := p.Click(SeeAllQAJobs, "See all QA jobs"); err != nil {
		return "", err
	}
	u, err := p.Wait.UntilURLContains("department=qualityassurance")
	if err != nil {
		return "", err
	}
	p.Logger.Printf("Redirected to QA jobs: %s", u)
	if err := p.ApplyDepartmentFilter(QADepartment); err != nil {
		return u, err
	}
	return u, nil
}

// ApplyLocationFilter selects location in the location filter and waits for the selection to
// show.
func (p *QualityAssurancePage) ApplyLocationFilter(location string) error {
	return p.applyFilter(LocationFilter, location, SameLocation)
}

// ApplyDepartmentFilter makes sure that department is selected in the department filter. The
// page selects the department of the URL by itself once its scripts have run, so the filter is
// only changed if that does not happen in time.
func (p *QualityAssurancePage) ApplyDepartmentFilter(department string) error {
	contains := func(actual, wanted string) bool {
		return strings.Contains(strings.ToLower(actual), strings.ToLower(wanted))
	}
	err := p.Wait.Until("department filter to show "+department, func(browser.Driver) (bool, error) {
		text, err := p.selectedValue(DepartmentFilter)
		return contains(text, department), err
	})
	if err == nil {
		p.Logger.Printf("Department filter shows %s", department)
		return nil
	}
	p.Logger.Printf("Department filter not set, selecting %s: %s", department, err)
	return p.applyFilter(DepartmentFilter, department, contains)
}

func (p *QualityAssurancePage) applyFilter(filter browser.Locator, value string, matches func(actual, wanted string) bool) error {
	if _, err := p.Wait.UntilPresent(filter); err != nil {
		return fmt.Errorf("%s filter: %w", filter.Value, err)
	}
	if err := p.Click(FilterSelection(filter), filter.Value+" filter"); err != nil {
		return err
	}

	var chosen string
	err := p.Wait.Until(fmt.Sprintf("option %q in %s", value, filter.Value), func(d browser.Driver) (bool, error) {
		options, err := d.FindElements(FilterOptions(filter).By, FilterOptions(filter).Value)
		if err != nil {
			return false, err
		}
		for _, option := range options {
			text, err := option.Text()
			if err != nil {
				return false, err
			}
			if matches(text, value) {
				chosen = strings.TrimSpace(text)
				return true, p.ClickElement(option, "option "+chosen)
			}
		}
		return false, nil
	})
	if err != nil {
		return err
	}

	return p.Wait.Until(fmt.Sprintf("%s filter to show %q", filter.Value, chosen), func(browser.Driver) (bool, error) {
		text, err := p.selectedValue(filter)
		return matches(text, value), err
	})
}

func (p *QualityAssurancePage) selectedValue(filter browser.Locator) (string, error) {
	l := FilterSelection(filter)
	e, err := p.Driver.FindElement(l.By, l.Value)
	if err != nil {
		return "", err
	}
	if title, err := e.GetAttribute("title"); err == nil && title != "" {
		return title, nil
	}
	return e.Text()
}

// IsJobListPopulated waits for at least one job to be listed.
func (p *QualityAssurancePage) IsJobListPopulated() bool {
	jobs, err := p.Wait.UntilAllPresent(JobListings)
	if err != nil {
		p.Logger.Printf("No jobs listed: %s", err)
		return false
	}
	p.Logger.Printf("%d jobs listed", len(jobs))
	return true
}

// JobCount returns the number of jobs currently listed.
func (p *QualityAssurancePage) JobCount() (int, error) {
	jobs, err := p.Driver.FindElements(JobListings.By, JobListings.Value)
	if err != nil {
		return 0, err
	}
	return len(jobs), nil
}

// ValidateJobCountConsistency checks that jobs are listed and, when the page shows a total
// number of results, that it matches the number of listed jobs.
func (p *QualityAssurancePage) ValidateJobCountConsistency() (bool, error) {
	count, err := p.JobCount()
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	e, err := p.Driver.FindElement(ResultCounter.By, ResultCounter.Value)
	if err != nil {
		if browser.IsNoSuchElement(err) {
			p.Logger.Printf("No result counter shown, %d jobs listed", count)
			return true, nil
		}
		return false, err
	}
	text, err := e.Text()
	if err != nil {
		return false, err
	}
	total, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return false, fmt.Errorf("result counter %q is not a number", text)
	}
	p.Logger.Printf("Result counter: %d, jobs listed: %d", total, count)
	return total == count, nil
}

// Jobs reads the job listing. It reads it again if the listing is re-rendered while it is being
// read.
func (p *QualityAssurancePage) Jobs() ([]Job, error) {
	var jobs []Job
	err := p.Wait.Until("job listing to be readable", func(d browser.Driver) (bool, error) {
		rows, err := d.FindElements(JobListings.By, JobListings.Value)
		if err != nil {
			return false, err
		}
		jobs = make([]Job, 0, len(rows))
		for _, row := range rows {
			job, err := readJob(row)
			if err != nil {
				return false, err
			}
			jobs = append(jobs, job)
		}
		return true, nil
	})
	return jobs, err
}

func readJob(row selenium.WebElement) (Job, error) {
	var job Job
	for _, field := range []struct {
		locator browser.Locator
		target  *string
	}{
		{JobTitle, &job.Title},
		{JobDepartment, &job.Department},
		{JobLocation, &job.Location},
	} {
		e, err := row.FindElement(field.locator.By, field.locator.Value)
		if err != nil {
			if browser.IsNoSuchElement(err) {
				continue
			}
			return job, err
		}
		text, err := e.Text()
		if err != nil {
			return job, err
		}
		*field.target = strings.TrimSpace(text)
	}
	return job, nil
}

// VerifyAllJobsMatch returns the listed jobs that are not in department and location. An empty
// result means that every job matches.
func (p *QualityAssurancePage) VerifyAllJobsMatch(location, department string) ([]Job, error) {
	jobs, err := p.Jobs()
	if err != nil {
		return nil, err
	}
	var mismatches []Job
	for _, job := range jobs {
		if !job.Matches(location, department) {
			p.Logger.Printf("Job %q (%s, %s) does not match %s in %s", job.Title, job.Department, job.Location,
				department, location)
			mismatches = append(mismatches, job)
		}
	}
	return mismatches, nil
}

// ClickViewRoleForFirstJob clicks "View Role" on the first job, waits for the job details to open
// in a new window and switches to it. It returns the handle of the new window.
func (p *QualityAssurancePage) ClickViewRoleForFirstJob() (string, error) {
	before, err := p.Driver.WindowHandles()
	if err != nil {
		return "", err
	}
	jobs, err := p.Wait.UntilAllPresent(JobListings)
	if err != nil {
		return "", err
	}
	first := jobs[0]
	if err := browser.ScrollIntoView(p.Driver, first); err != nil {
		return "", err
	}
	if err := browser.Hover(first); err != nil {
		p.Logger.Printf("Could not hover over first job: %s", err)
	}
	button, err := first.FindElement(ViewRole.By, ViewRole.Value)
	if err != nil {
		return "", fmt.Errorf("view role button: %w", err)
	}
	if err := p.ClickElement(button, "View Role"); err != nil {
		return "", err
	}

	handles, err := p.Wait.UntilWindowCount(len(before) + 1)
	if err != nil {
		return "", err
	}
	for _, h := range handles {
		if !slices.Contains(before, h) {
			if err := p.Driver.SwitchWindow(h); err != nil {
				return "", err
			}
			p.Logger.Printf("Switched to job details window %s", h)
			return h, nil
		}
	}
	return "", fmt.Errorf("no new window among %v", handles)
}
