// Package pages contains page objects for the careers flow of the company website: the home page,
// the careers page and the Quality Assurance careers page with its job listings.
//
// Checks that a page looks right return a bool and log what they saw. Actions return an error.
package pages
